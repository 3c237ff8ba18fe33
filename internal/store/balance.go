package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sqlGetUserByID = `
SELECT id, email, balance, referrer_id, created_at, updated_at
FROM users
WHERE id = $1
`

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by id", err)
		return User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

const sqlLockUser = `
SELECT id, email, balance, referrer_id, created_at, updated_at
FROM users
WHERE id = $1
FOR UPDATE
`

// lockUser locks a user's balance row inside a transaction
func lockUser(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (User, error) {
	var user User
	err := tx.GetContext(ctx, &user, sqlLockUser, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to lock user: %w", err)
	}
	return user, nil
}

const sqlAdjustUserBalance = `
UPDATE users
SET balance = balance + $2, updated_at = NOW()
WHERE id = $1
`

const sqlInsertBalanceEvent = `
INSERT INTO balance_events (user_id, delta, balance_before, balance_after, source, meta)
VALUES ($1, $2, $3, $4, $5, $6)
`

// adjustBalance applies a delta to a locked user row and records the ledger
// event in the same transaction. before must come from the locked read.
func adjustBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, delta, before float64, source string, meta JSONB) error {
	if _, err := tx.ExecContext(ctx, sqlAdjustUserBalance, userID, delta); err != nil {
		return fmt.Errorf("failed to adjust user balance: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlInsertBalanceEvent, userID, delta, before, before+delta, source, meta); err != nil {
		return fmt.Errorf("failed to insert balance event: %w", err)
	}
	return nil
}

// CreditUserBalance credits a user's balance and records a ledger event,
// locking the balance row for the duration.
func (s *Store) CreditUserBalance(ctx context.Context, userID uuid.UUID, amount float64, source string, meta JSONB) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return err
	}

	if err := adjustBalance(ctx, tx, userID, amount, user.Balance, source, meta); err != nil {
		s.logger.Error(ctx, "failed to credit user balance", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
