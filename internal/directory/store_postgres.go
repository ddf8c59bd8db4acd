package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

// PostgresDirectory serves the Directory read contract from PostgreSQL
// tables. Attribute and timestamp absence maps to sentinel.ErrNotFound;
// query failures map to sentinel.ErrUnavailable since the evaluator treats
// them as a directory outage.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed directory.
func NewPostgres(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) ReadAttribute(ctx context.Context, identity domain.Identity, attribute string) (string, error) {
	query := `
		SELECT value
		FROM directory_attributes
		WHERE identity_dn = $1 AND name = $2
	`
	var value string
	err := d.pool.QueryRow(ctx, query, identity.DN, attribute).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", unavailable("read attribute", err)
	}
	if value == "" {
		return "", sentinel.ErrNotFound
	}
	return value, nil
}

func (d *PostgresDirectory) ReadAttributes(ctx context.Context, identity domain.Identity, attributes []string) (map[string]string, error) {
	query := `
		SELECT name, value
		FROM directory_attributes
		WHERE identity_dn = $1 AND name = ANY($2)
	`
	rows, err := d.pool.Query(ctx, query, identity.DN, attributes)
	if err != nil {
		return nil, unavailable("read attributes", err)
	}
	defer rows.Close()

	values := make(map[string]string, len(attributes))
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, unavailable("scan attribute", err)
		}
		if value != "" {
			values[name] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("read attributes", err)
	}
	return values, nil
}

func (d *PostgresDirectory) ReadTimestamp(ctx context.Context, identity domain.Identity, kind domain.TimestampKind) (time.Time, error) {
	query := `
		SELECT occurred_at
		FROM directory_timestamps
		WHERE identity_dn = $1 AND kind = $2
	`
	var t time.Time
	err := d.pool.QueryRow(ctx, query, identity.DN, string(kind)).Scan(&t)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, sentinel.ErrNotFound
	}
	if err != nil {
		return time.Time{}, unavailable("read timestamp", err)
	}
	return t, nil
}

func (d *PostgresDirectory) PasswordExpired(ctx context.Context, identity domain.Identity) (bool, error) {
	query := `
		SELECT password_expired
		FROM directory_entries
		WHERE dn = $1
	`
	var expired bool
	err := d.pool.QueryRow(ctx, query, identity.DN).Scan(&expired)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, unavailable("read expired flag", err)
	}
	return expired, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, sentinel.ErrUnavailable, err)
}
