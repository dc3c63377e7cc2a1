package repository

import (
	"context"
	"errors"

	"mentorhub/internal/database"
	"mentorhub/internal/domain/mentorship"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is the credential-bearing view of a user, used only by the auth
// path. Capabilities drive the admin gate.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Capabilities []mentorship.Capability
}

func (a Account) HasCapability(c mentorship.Capability) bool {
	for _, it := range a.Capabilities {
		if it == c {
			return true
		}
	}
	return false
}

type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
}

type PostgresAccountRepository struct {
	db database.DB
}

func NewPostgresAccountRepository(db database.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.password_hash,
		        COALESCE(array_agg(uc.capability) FILTER (WHERE uc.capability IS NOT NULL), '{}')
		 FROM users u
		 LEFT JOIN user_capabilities uc ON uc.user_id = u.id
		 WHERE u.email = $1
		 GROUP BY u.id`,
		email,
	)
	return scanAccount(row)
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.password_hash,
		        COALESCE(array_agg(uc.capability) FILTER (WHERE uc.capability IS NOT NULL), '{}')
		 FROM users u
		 LEFT JOIN user_capabilities uc ON uc.user_id = u.id
		 WHERE u.id = $1
		 GROUP BY u.id`,
		id,
	)
	return scanAccount(row)
}

func scanAccount(row database.Row) (Account, error) {
	var a Account
	var caps []string
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &caps); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	a.Capabilities = make([]mentorship.Capability, 0, len(caps))
	for _, c := range caps {
		a.Capabilities = append(a.Capabilities, mentorship.Capability(c))
	}
	return a, nil
}
