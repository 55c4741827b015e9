package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS bookings (
    id                   UUID PRIMARY KEY,
    name                 TEXT NOT NULL,
    email                TEXT NOT NULL,
    phone                TEXT NOT NULL,
    package              TEXT NOT NULL CHECK (package IN ('platinum', 'gold', 'silver')),
    package_name         TEXT NOT NULL,
    persons              INTEGER NOT NULL CHECK (persons BETWEEN 1 AND 20),
    new_year_voucher     BOOLEAN NOT NULL DEFAULT FALSE,
    base_price           DOUBLE PRECISION NOT NULL,
    discount             DOUBLE PRECISION NOT NULL,
    discount_amount      DOUBLE PRECISION NOT NULL,
    price_after_discount DOUBLE PRECISION NOT NULL,
    voucher_discount     DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_price          DOUBLE PRECISION NOT NULL,
    booking_date         TEXT NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS bookings_created_at_idx ON bookings (created_at DESC);

CREATE TABLE IF NOT EXISTS enquiries (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    phone      TEXT NOT NULL,
    package    TEXT NOT NULL CHECK (package IN ('platinum', 'gold', 'silver')),
    message    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS enquiries_created_at_idx ON enquiries (created_at DESC);
`

// EnsurePGSchema creates the tables when they are missing.
func EnsurePGSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", pgErr(err))
	}
	return nil
}

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgNotNull         = "23502"
)

func pgErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrDuplicateKey, err)
		case pgCheckViolation, pgNotNull:
			ve := domain.NewValidationError()
			ve.Add(pgError.ColumnName, pgError.Message)
			return ve
		}
		return err
	}

	var netErr net.Error
	if pgconn.Timeout(err) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
