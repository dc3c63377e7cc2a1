package seeder

import (
	"context"

	"mentorhub/internal/database"
)

type ChaptersSeeder struct{}

func (ChaptersSeeder) Name() string { return "chapters" }

func (ChaptersSeeder) Run(ctx context.Context, db database.DB) error {
	names := []string{
		"Lincoln HS",
		"Roosevelt Middle",
		"Washington Prep",
		"Jefferson Academy",
	}

	for _, name := range names {
		if _, err := db.Exec(ctx,
			`INSERT INTO chapters (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return err
		}
	}
	return nil
}
