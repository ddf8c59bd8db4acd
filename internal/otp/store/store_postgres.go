package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

// PostgresStore persists OTP enrollments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed OTP record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Find(ctx context.Context, identity domain.Identity) (*domain.OTPRecord, error) {
	query := `
		SELECT secret, otp_type, recorded_at
		FROM otp_records
		WHERE identity_dn = $1
	`
	record := domain.OTPRecord{Identity: identity}
	err := s.db.QueryRowContext(ctx, query, identity.DN).Scan(&record.Secret, &record.Type, &record.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find otp record: %w", err)
	}
	return &record, nil
}

func (s *PostgresStore) Save(ctx context.Context, record domain.OTPRecord) error {
	query := `
		INSERT INTO otp_records (identity_dn, secret, otp_type, recorded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identity_dn) DO UPDATE SET
			secret = EXCLUDED.secret,
			otp_type = EXCLUDED.otp_type,
			recorded_at = EXCLUDED.recorded_at
	`
	if _, err := s.db.ExecContext(ctx, query, record.Identity.DN, record.Secret, record.Type, record.RecordedAt); err != nil {
		return fmt.Errorf("save otp record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, identity domain.Identity) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM otp_records WHERE identity_dn = $1`, identity.DN); err != nil {
		return fmt.Errorf("delete otp record: %w", err)
	}
	return nil
}
