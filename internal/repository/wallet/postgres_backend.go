package wallet

import (
	"database/sql"
	"errors"
	"strings"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS wallets (
  user_id TEXT PRIMARY KEY,
  pin TEXT NOT NULL DEFAULT '',
  balance_usd NUMERIC(12,2) NOT NULL DEFAULT 0
);
`)
	})
	return s.schemaErr
}

func (s *Store) authenticateDB(userID, pin string) bool {
	if err := s.ensureSchema(); err != nil {
		return false
	}
	var stored string
	err := s.db.QueryRow(`SELECT pin FROM wallets WHERE user_id = $1`, userID).Scan(&stored)
	if err != nil {
		return false
	}
	return stored == strings.TrimSpace(pin)
}

func (s *Store) balanceDB(userID string) (float64, error) {
	if err := s.ensureSchema(); err != nil {
		return 0, err
	}
	var balance float64
	err := s.db.QueryRow(`SELECT balance_usd FROM wallets WHERE user_id = $1`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return roundCents(balance), nil
}

func (s *Store) deductDB(userID string, amount float64) (float64, error) {
	if err := s.ensureSchema(); err != nil {
		return 0, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var balance float64
	err = tx.QueryRow(`SELECT balance_usd FROM wallets WHERE user_id = $1 FOR UPDATE`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	next := roundCents(balance - amount)
	if next < 0 {
		return roundCents(balance), ErrInsufficientFunds
	}
	if _, err := tx.Exec(`UPDATE wallets SET balance_usd = $2 WHERE user_id = $1`, userID, next); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}
