package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

// PostgresStore persists response records in PostgreSQL. Answers are stored
// as a JSONB document; the clear text is never present, only hashes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed response record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Find(ctx context.Context, identity domain.Identity) (*domain.ResponseInfo, error) {
	query := `
		SELECT answers, recorded_at
		FROM challenge_responses
		WHERE identity_dn = $1
	`
	var rawAnswers []byte
	record := domain.ResponseInfo{Identity: identity}
	err := s.db.QueryRowContext(ctx, query, identity.DN).Scan(&rawAnswers, &record.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find response record: %w", err)
	}
	if err := json.Unmarshal(rawAnswers, &record.Answers); err != nil {
		return nil, fmt.Errorf("decode response answers: %w", err)
	}
	return &record, nil
}

func (s *PostgresStore) Save(ctx context.Context, record domain.ResponseInfo) error {
	rawAnswers, err := json.Marshal(record.Answers)
	if err != nil {
		return fmt.Errorf("encode response answers: %w", err)
	}
	query := `
		INSERT INTO challenge_responses (identity_dn, answers, recorded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity_dn) DO UPDATE SET
			answers = EXCLUDED.answers,
			recorded_at = EXCLUDED.recorded_at
	`
	if _, err := s.db.ExecContext(ctx, query, record.Identity.DN, rawAnswers, record.RecordedAt); err != nil {
		return fmt.Errorf("save response record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, identity domain.Identity) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM challenge_responses WHERE identity_dn = $1`, identity.DN); err != nil {
		return fmt.Errorf("delete response record: %w", err)
	}
	return nil
}
