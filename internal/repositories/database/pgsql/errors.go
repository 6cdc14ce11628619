package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapError converts pgx/pgconn errors to application errors.
// notFound is the sentinel used for pgx.ErrNoRows, so callers can report ErrItemNotFound and the like.
// context.DeadlineExceeded and context.Canceled are NOT mapped, they pass through.
func mapError(err error, entity string, id string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, notFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrDuplicate)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w: %s", entity, id, apperrors.ErrNotFound, pgErr.ConstraintName)
		case "22P02": // invalid_text_representation, e.g. a malformed uuid key
			return fmt.Errorf("%s %s: %w", entity, id, notFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w: %s", entity, id, apperrors.ErrValidation, pgErr.ConstraintName)
		case "55P03", // lock_not_available
			"40P01", // deadlock_detected
			"40001", // serialization_failure
			"57014": // query_canceled (statement_timeout)
			return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrBusy)
		case "57P01", "57P02", "57P03": // admin_shutdown, crash_shutdown, cannot_connect_now
			return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrUnavailable)
		}
		if len(pgErr.Code) == 5 && pgErr.Code[:2] == "08" { // connection_exception class
			return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrUnavailable)
		}
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrUnavailable)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
