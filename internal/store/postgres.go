package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/standapp/standapp-backend/internal/models"
)

// PostgresProfiles stores profiles in the users table, one row per profile.
// Merge rewrites the single row inside a transaction, so writes are
// per-record instead of whole-store.
type PostgresProfiles struct {
	db *sql.DB
}

func NewPostgresProfiles(db *sql.DB) *PostgresProfiles {
	return &PostgresProfiles{db: db}
}

const profileColumns = `username, password_hash, created_at, updated_at, name, wellness_score,
	last_quiz_at, language, theme, email, birthday, sex, civil_status, city, avatar_url`

func scanProfile(row *sql.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	var lastQuiz sql.NullTime
	err := row.Scan(
		&p.Username, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt, &p.Name, &p.WellnessScore,
		&lastQuiz, &p.Language, &p.Theme, &p.Email, &p.Birthday, &p.Sex, &p.CivilStatus,
		&p.City, &p.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	if lastQuiz.Valid {
		t := lastQuiz.Time
		p.LastQuizAt = &t
	}
	return &p, nil
}

func (s *PostgresProfiles) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresProfiles) Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	exists, err := s.Exists(ctx, profile.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := profile.Clone()
	p.CreatedAt = now
	p.UpdatedAt = now

	var lastQuiz interface{}
	if p.LastQuizAt != nil {
		lastQuiz = p.LastQuizAt.UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at, updated_at, name, wellness_score,
			last_quiz_at, language, theme, email, birthday, sex, civil_status, city, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, p.Username, p.PasswordHash, p.CreatedAt, p.UpdatedAt, p.Name, p.WellnessScore,
		lastQuiz, p.Language, p.Theme, p.Email, p.Birthday, p.Sex, p.CivilStatus, p.City, p.AvatarURL)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresProfiles) Get(ctx context.Context, username string) (*models.UserProfile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Merge reads the row under a lock, applies the partial update, and writes
// the row back. Concurrent merges on the same username serialize on the row
// lock.
func (s *PostgresProfiles) Merge(ctx context.Context, username string, update models.ProfileUpdate) (*models.UserProfile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := scanProfile(tx.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE username = $1 FOR UPDATE`, username))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	update.Apply(p)
	p.UpdatedAt = time.Now().UTC()

	var lastQuiz interface{}
	if p.LastQuizAt != nil {
		lastQuiz = p.LastQuizAt.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET updated_at = $2, name = $3, wellness_score = $4, last_quiz_at = $5,
			language = $6, theme = $7, email = $8, birthday = $9, sex = $10,
			civil_status = $11, city = $12, avatar_url = $13
		WHERE username = $1
	`, p.Username, p.UpdatedAt, p.Name, p.WellnessScore, lastQuiz,
		p.Language, p.Theme, p.Email, p.Birthday, p.Sex, p.CivilStatus, p.City, p.AvatarURL)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}
