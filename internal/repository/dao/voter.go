package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

const voterNIDIndex = "uq_voter_nid"

type Constituency struct {
	ID   int64  `gorm:"column:constituency_id;primaryKey;autoIncrement"`
	Name string `gorm:"size:255;not null;uniqueIndex:uq_constituency_name"`
}

func (Constituency) TableName() string {
	return "constituency"
}

type Voter struct {
	ID             int64  `gorm:"column:voter_id;primaryKey;autoIncrement"`
	FullName       string `gorm:"size:255;not null"`
	NIDNumber      string `gorm:"column:nid_number;size:32;not null;uniqueIndex:uq_voter_nid"`
	DateOfBirth    string `gorm:"size:32"`
	Gender         string `gorm:"size:16"`
	ConstituencyID int64  `gorm:"not null;index"`
	Password       string `gorm:"not null"`
}

func (Voter) TableName() string {
	return "voter"
}

type Admin struct {
	ID       int64  `gorm:"column:admin_id;primaryKey;autoIncrement"`
	Username string `gorm:"size:64;not null;uniqueIndex:uq_admin_username"`
	FullName string `gorm:"size:255"`
	Password string `gorm:"not null"`
}

func (Admin) TableName() string {
	return "admin"
}

type VoterDAO struct {
	db *gorm.DB
}

func NewVoterDAO(db *gorm.DB) *VoterDAO {
	return &VoterDAO{
		db: db,
	}
}

func (d *VoterDAO) Insert(ctx context.Context, voter Voter) (Voter, error) {
	result := d.db.WithContext(ctx).Create(&voter)
	if result.Error != nil {
		if isUniqueViolation(result.Error, voterNIDIndex) {
			return Voter{}, ErrVoterNIDExists
		}

		return Voter{}, result.Error
	}

	return voter, nil
}

func (d *VoterDAO) FindByNID(ctx context.Context, nid string) (Voter, error) {
	voter := Voter{}
	result := d.db.WithContext(ctx).Where("nid_number = ?", nid).First(&voter)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Voter{}, ErrVoterNotFound
		}

		return Voter{}, result.Error
	}

	return voter, nil
}

func (d *VoterDAO) FindByID(ctx context.Context, id int64) (Voter, error) {
	voter := Voter{}
	result := d.db.WithContext(ctx).Where("voter_id = ?", id).First(&voter)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Voter{}, ErrVoterNotFound
		}

		return Voter{}, result.Error
	}

	return voter, nil
}

func (d *VoterDAO) FindAll(ctx context.Context) ([]Voter, error) {
	var voters []Voter
	result := d.db.WithContext(ctx).Order("voter_id ASC").Find(&voters)
	if result.Error != nil {
		return nil, result.Error
	}

	return voters, nil
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	admin := Admin{}
	result := d.db.WithContext(ctx).Where("username = ?", username).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

type ConstituencyDAO struct {
	db *gorm.DB
}

func NewConstituencyDAO(db *gorm.DB) *ConstituencyDAO {
	return &ConstituencyDAO{
		db: db,
	}
}

func (d *ConstituencyDAO) FindAll(ctx context.Context) ([]Constituency, error) {
	var constituencies []Constituency
	result := d.db.WithContext(ctx).Order("constituency_id ASC").Find(&constituencies)
	if result.Error != nil {
		return nil, result.Error
	}

	return constituencies, nil
}
