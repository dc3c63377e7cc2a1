package repository

import (
	"context"

	"mentorhub/internal/database"
	"mentorhub/internal/domain/mentorship"
)

// DirectoryRepository is the read side of the matcher: user snapshots with
// profile, chapter and current mentoring load.
type DirectoryRepository interface {
	FindMentors(ctx context.Context) ([]mentorship.Person, error)
	FindMentees(ctx context.Context, capability mentorship.Capability, excludeActiveType mentorship.Type) ([]mentorship.Person, error)
}

type PostgresDirectoryRepository struct {
	db database.DB
}

func NewPostgresDirectoryRepository(db database.DB) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{db: db}
}

// FindMentors returns every MENTOR-capability user, annotated with the count
// of ACTIVE pairings they mentor across both mentorship types. Ordered by
// user id so equal-score candidates resolve the same way on every run.
func (r *PostgresDirectoryRepository) FindMentors(ctx context.Context) ([]mentorship.Person, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email, u.chapter_id, COALESCE(c.name, ''),
		        COALESCE(p.bio, ''), COALESCE(p.interests, '{}'),
		        (SELECT COUNT(*) FROM mentorships m
		          WHERE m.mentor_id = u.id AND m.status = 'ACTIVE')
		 FROM users u
		 JOIN user_capabilities uc ON uc.user_id = u.id AND uc.capability = 'MENTOR'
		 LEFT JOIN chapters c ON c.id = u.chapter_id
		 LEFT JOIN profiles p ON p.user_id = u.id
		 ORDER BY u.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPersons(rows)
}

// FindMentees returns users holding the given capability who do not already
// have an ACTIVE pairing of excludeActiveType as mentee.
func (r *PostgresDirectoryRepository) FindMentees(ctx context.Context, capability mentorship.Capability, excludeActiveType mentorship.Type) ([]mentorship.Person, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email, u.chapter_id, COALESCE(c.name, ''),
		        COALESCE(p.bio, ''), COALESCE(p.interests, '{}'),
		        0
		 FROM users u
		 JOIN user_capabilities uc ON uc.user_id = u.id AND uc.capability = $1
		 LEFT JOIN chapters c ON c.id = u.chapter_id
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE NOT EXISTS (
		        SELECT 1 FROM mentorships m
		         WHERE m.mentee_id = u.id AND m.type = $2 AND m.status = 'ACTIVE')
		 ORDER BY u.id ASC`,
		string(capability), string(excludeActiveType),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPersons(rows)
}

func scanPersons(rows database.Rows) ([]mentorship.Person, error) {
	out := make([]mentorship.Person, 0)
	for rows.Next() {
		var p mentorship.Person
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.ChapterID, &p.ChapterName,
			&p.Bio, &p.Interests, &p.ActiveMenteeCount,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
