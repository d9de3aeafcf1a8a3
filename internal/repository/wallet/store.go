package wallet

import (
	"database/sql"
	"errors"
	"math"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrNotFound reports an unknown user id.
	ErrNotFound = errors.New("wallet: user not found")
	// ErrInsufficientFunds reports a deduction larger than the balance.
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")
)

// Account is one wallet row.
type Account struct {
	UserID     string
	PIN        string
	BalanceUSD float64
}

// Store keeps user wallet balances. The default backend is a CSV file
// (user_id,pin,balance_usd); when a Postgres DSN is configured the store
// reads and writes a wallets table instead.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	loadErr  error
	mu       sync.Mutex
	byUser   map[string]Account

	schemaOnce sync.Once
	schemaErr  error
}

func New(path string) *Store {
	return &Store{
		path:   path,
		byUser: make(map[string]Account),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewFromEnv picks the Postgres backend when WALLET_PG_DSN is set and
// reachable, otherwise falls back to the CSV file at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("WALLET_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

// Authenticate reports whether the user exists and the PIN matches.
func (s *Store) Authenticate(userID, pin string) bool {
	if s == nil {
		return false
	}
	id := strings.TrimSpace(userID)
	if id == "" {
		return false
	}
	if s.db != nil {
		return s.authenticateDB(id, pin)
	}
	return s.authenticateFile(id, pin)
}

// Balance returns the current balance for the user.
func (s *Store) Balance(userID string) (float64, error) {
	if s == nil {
		return 0, ErrNotFound
	}
	id := strings.TrimSpace(userID)
	if id == "" {
		return 0, ErrNotFound
	}
	if s.db != nil {
		return s.balanceDB(id)
	}
	return s.balanceFile(id)
}

// Deduct subtracts amount from the user's balance and returns the new
// balance. A deduction beyond the balance fails with ErrInsufficientFunds
// and leaves the balance unchanged.
func (s *Store) Deduct(userID string, amount float64) (float64, error) {
	if s == nil {
		return 0, ErrNotFound
	}
	id := strings.TrimSpace(userID)
	if id == "" {
		return 0, ErrNotFound
	}
	if amount < 0 {
		amount = 0
	}
	if s.db != nil {
		return s.deductDB(id, amount)
	}
	return s.deductFile(id, amount)
}

// roundCents keeps balances at cent precision after float arithmetic.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
