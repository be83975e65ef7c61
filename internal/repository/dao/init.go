package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Constituency{},
		&Voter{},
		&Admin{},
		&Election{},
		&Candidate{},
		&Vote{},
	)
}
