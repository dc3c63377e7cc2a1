package seeder

import (
	"context"
	"os"
	"strings"

	"mentorhub/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoPeopleSeeder loads a small cohort of mentors and mentees for local
// development. Only runs when SEED_DEMO_DATA=true.
type DemoPeopleSeeder struct{}

func (DemoPeopleSeeder) Name() string { return "demo_people" }

type demoPerson struct {
	Name         string
	Email        string
	Chapter      string
	Capabilities []string
	Bio          string
	Interests    []string
}

func (DemoPeopleSeeder) Run(ctx context.Context, db database.DB) error {
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SEED_DEMO_DATA")), "true") {
		return nil
	}

	people := []demoPerson{
		{
			Name: "Maya Chen", Email: "maya.chen@example.org", Chapter: "Lincoln HS",
			Capabilities: []string{"MENTOR"},
			Bio:          "Ten years teaching music production and jazz ensemble.",
			Interests:    []string{"music", "production", "jazz"},
		},
		{
			Name: "Derek Okafor", Email: "derek.okafor@example.org", Chapter: "Roosevelt Middle",
			Capabilities: []string{"MENTOR"},
			Interests:    []string{"robotics", "coding"},
		},
		{
			Name: "Sofia Reyes", Email: "sofia.reyes@example.org", Chapter: "Lincoln HS",
			Capabilities: []string{"INSTRUCTOR"},
			Interests:    []string{"music", "dance"},
		},
		{
			Name: "Jamal Wright", Email: "jamal.wright@example.org", Chapter: "Washington Prep",
			Capabilities: []string{"STUDENT"},
			Interests:    []string{"coding", "games"},
		},
		{
			Name: "Emma Larsen", Email: "emma.larsen@example.org", Chapter: "Roosevelt Middle",
			Capabilities: []string{"STUDENT"},
			Interests:    []string{"robotics", "art"},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, p := range people {
		id := uuid.New()
		affected, err := db.Exec(ctx,
			`INSERT INTO users (id, name, email, password_hash, chapter_id)
			 VALUES ($1, $2, $3, $4, (SELECT id FROM chapters WHERE name = $5))
			 ON CONFLICT (email) DO NOTHING`,
			id, p.Name, p.Email, string(hash), p.Chapter,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			continue
		}

		for _, capability := range p.Capabilities {
			if _, err := db.Exec(ctx,
				`INSERT INTO user_capabilities (user_id, capability) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, capability,
			); err != nil {
				return err
			}
		}

		if _, err := db.Exec(ctx,
			`INSERT INTO profiles (id, user_id, bio, interests) VALUES (gen_random_uuid(), $1, $2, $3)
			 ON CONFLICT (user_id) DO NOTHING`,
			id, p.Bio, p.Interests,
		); err != nil {
			return err
		}
	}

	return nil
}
