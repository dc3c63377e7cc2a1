package repository

import (
	"context"
	"errors"
	"time"

	"mentorhub/internal/database"
	"mentorhub/internal/domain/mentorship"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PairingRow is a listing view of a pairing with denormalized names for
// admin dashboards.
type PairingRow struct {
	mentorship.Pairing
	MentorName  string
	MentorEmail string
	MenteeName  string
	MenteeEmail string
}

type MentorshipRepository interface {
	FindActive(ctx context.Context, mentorID, menteeID uuid.UUID, t mentorship.Type) (mentorship.Pairing, error)
	InsertActive(ctx context.Context, p mentorship.Pairing) (mentorship.Pairing, error)
	ListByType(ctx context.Context, t mentorship.Type) ([]PairingRow, error)
}

type PostgresMentorshipRepository struct {
	db database.DB
}

func NewPostgresMentorshipRepository(db database.DB) *PostgresMentorshipRepository {
	return &PostgresMentorshipRepository{db: db}
}

func (r *PostgresMentorshipRepository) FindActive(ctx context.Context, mentorID, menteeID uuid.UUID, t mentorship.Type) (mentorship.Pairing, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, mentor_id, mentee_id, type, status, notes, created_at
		 FROM mentorships
		 WHERE mentor_id = $1 AND mentee_id = $2 AND type = $3 AND status = 'ACTIVE'`,
		mentorID, menteeID, string(t),
	)

	var p mentorship.Pairing
	if err := row.Scan(&p.ID, &p.MentorID, &p.MenteeID, &p.Type, &p.Status, &p.Notes, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mentorship.Pairing{}, mentorship.ErrNotFound
		}
		return mentorship.Pairing{}, err
	}
	return p, nil
}

// InsertActive inserts a new ACTIVE pairing. The partial unique index
// uq_mentorships_active makes the duplicate check and the insert a single
// atomic statement: a concurrent approval of the same triple conflicts and
// affects zero rows, which surfaces as ErrDuplicateActive.
func (r *PostgresMentorshipRepository) InsertActive(ctx context.Context, p mentorship.Pairing) (mentorship.Pairing, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Status = mentorship.StatusActive

	affected, err := r.db.Exec(ctx,
		`INSERT INTO mentorships (id, mentor_id, mentee_id, type, status, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (mentor_id, mentee_id, type) WHERE status = 'ACTIVE' DO NOTHING`,
		p.ID, p.MentorID, p.MenteeID, string(p.Type), string(p.Status), p.Notes, p.CreatedAt,
	)
	if err != nil {
		return mentorship.Pairing{}, err
	}
	if affected == 0 {
		return mentorship.Pairing{}, mentorship.ErrDuplicateActive
	}
	return p, nil
}

func (r *PostgresMentorshipRepository) ListByType(ctx context.Context, t mentorship.Type) ([]PairingRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.mentor_id, m.mentee_id, m.type, m.status, m.notes, m.created_at,
		        mu.name, mu.email, eu.name, eu.email
		 FROM mentorships m
		 JOIN users mu ON mu.id = m.mentor_id
		 JOIN users eu ON eu.id = m.mentee_id
		 WHERE m.type = $1
		 ORDER BY m.created_at DESC, m.id DESC`,
		string(t),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PairingRow, 0)
	for rows.Next() {
		var pr PairingRow
		if err := rows.Scan(
			&pr.ID, &pr.MentorID, &pr.MenteeID, &pr.Type, &pr.Status, &pr.Notes, &pr.CreatedAt,
			&pr.MentorName, &pr.MentorEmail, &pr.MenteeName, &pr.MenteeEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
