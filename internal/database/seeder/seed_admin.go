package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mentorhub/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the initial administrator account. Credentials come
// from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; without them it is a no-op
// so production deploys don't grow a default login.
type AdminSeeder struct{}

func (AdminSeeder) Name() string { return "admin" }

func (AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id := uuid.New()
	affected, err := db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING`,
		id, "Program Admin", email, string(hash),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}

	_, err = db.Exec(ctx,
		`INSERT INTO user_capabilities (user_id, capability) VALUES ($1, 'ADMIN') ON CONFLICT DO NOTHING`,
		id,
	)
	return err
}
