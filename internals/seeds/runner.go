package seeds

import (
	"context"
	"log"

	"videoach_backend/internals/features/pricing/plans"
	"videoach_backend/internals/seeds/certifications"
	"videoach_backend/internals/seeds/users"

	"gorm.io/gorm"
)

// RunAllSeeds is idempotent: every seeder skips what already exists.
func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	//* Plans
	if err := plans.Seed(ctx, db); err != nil {
		return err
	}

	//* Users
	if err := users.SeedUsersFromJSON(ctx, db, "internals/seeds/users/data_users.json"); err != nil {
		return err
	}

	//* Certifications
	if err := certifications.SeedCertificationGroupsFromJSON(ctx, db, "internals/seeds/certifications/data_certification_groups.json"); err != nil {
		return err
	}

	log.Println("✅ seeding done")
	return nil
}
