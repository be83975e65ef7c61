package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type SeedData struct {
	Constituencies []string
	Admins         []Admin
	Voters         []Voter
}

// Seed inserts the given rows unless a row with the same natural key is
// already present. Passwords must already be hashed.
func Seed(ctx context.Context, db *gorm.DB, data SeedData) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range data.Constituencies {
			c := Constituency{}
			if err := tx.Where(Constituency{Name: name}).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("seed constituency %q -> %w", name, err)
			}
		}

		for _, admin := range data.Admins {
			a := Admin{}
			if err := tx.Where(Admin{Username: admin.Username}).Attrs(admin).FirstOrCreate(&a).Error; err != nil {
				return fmt.Errorf("seed admin %q -> %w", admin.Username, err)
			}
		}

		for _, voter := range data.Voters {
			v := Voter{}
			if err := tx.Where(Voter{NIDNumber: voter.NIDNumber}).Attrs(voter).FirstOrCreate(&v).Error; err != nil {
				return fmt.Errorf("seed voter %q -> %w", voter.NIDNumber, err)
			}
		}

		return nil
	})
}
