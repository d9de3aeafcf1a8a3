package wallet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

func (s *Store) ensureLoadedFile() error {
	s.loadOnce.Do(func() {
		f, err := os.Open(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			s.loadErr = fmt.Errorf("wallet: open %s: %w", s.path, err)
			return
		}
		defer f.Close()

		cr := csv.NewReader(f)
		header, err := cr.Read()
		if err != nil {
			s.loadErr = fmt.Errorf("wallet: read header: %w", err)
			return
		}
		col := make(map[string]int, len(header))
		for i, name := range header {
			col[strings.TrimSpace(strings.ToLower(name))] = i
		}
		for _, required := range []string{"user_id", "pin", "balance_usd"} {
			if _, ok := col[required]; !ok {
				s.loadErr = fmt.Errorf("wallet: missing column %q", required)
				return
			}
		}

		for {
			row, err := cr.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				s.loadErr = fmt.Errorf("wallet: read row: %w", err)
				return
			}
			balance, err := strconv.ParseFloat(strings.TrimSpace(row[col["balance_usd"]]), 64)
			if err != nil {
				s.loadErr = fmt.Errorf("wallet: bad balance_usd %q: %w", row[col["balance_usd"]], err)
				return
			}
			id := strings.TrimSpace(row[col["user_id"]])
			if id == "" {
				continue
			}
			s.byUser[id] = Account{
				UserID:     id,
				PIN:        strings.TrimSpace(row[col["pin"]]),
				BalanceUSD: roundCents(balance),
			}
		}
	})
	return s.loadErr
}

func (s *Store) saveFile() error {
	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("wallet: write %s: %w", tmp, err)
	}

	cw := csv.NewWriter(f)
	_ = cw.Write([]string{"user_id", "pin", "balance_usd"})

	ids := make([]string, 0, len(s.byUser))
	for id := range s.byUser {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		acct := s.byUser[id]
		_ = cw.Write([]string{acct.UserID, acct.PIN, strconv.FormatFloat(acct.BalanceUSD, 'f', 2, 64)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("wallet: write rows: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("wallet: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("wallet: replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) authenticateFile(userID, pin string) bool {
	if err := s.ensureLoadedFile(); err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.byUser[userID]
	return ok && acct.PIN == strings.TrimSpace(pin)
}

func (s *Store) balanceFile(userID string) (float64, error) {
	if err := s.ensureLoadedFile(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.byUser[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return acct.BalanceUSD, nil
}

func (s *Store) deductFile(userID string, amount float64) (float64, error) {
	if err := s.ensureLoadedFile(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.byUser[userID]
	if !ok {
		return 0, ErrNotFound
	}
	next := roundCents(acct.BalanceUSD - amount)
	if next < 0 {
		return acct.BalanceUSD, ErrInsufficientFunds
	}
	acct.BalanceUSD = next
	s.byUser[userID] = acct
	if err := s.saveFile(); err != nil {
		return next, err
	}
	return next, nil
}
