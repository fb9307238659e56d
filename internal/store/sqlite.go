package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"StockSeer/internal/model"
)

// SQLiteStore backs the Resolver with a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] subscription store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			stock_code TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS user_stocks (
			user_id  INTEGER NOT NULL REFERENCES users(id),
			stock_id INTEGER NOT NULL REFERENCES stocks(id),
			UNIQUE(user_id, stock_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_stocks_user ON user_stocks(user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// ListSymbols returns the full symbol universe for the fetch stage.
func (s *SQLiteStore) ListSymbols() ([]string, error) {
	rows, err := s.db.Query(`SELECT stock_code FROM stocks ORDER BY stock_code`)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, code)
	}
	return symbols, rows.Err()
}

// ListSubscribers returns every digest recipient.
func (s *SQLiteStore) ListSubscribers() ([]model.Subscriber, error) {
	rows, err := s.db.Query(`SELECT id, email FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscriber
	for rows.Next() {
		var sub model.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// FollowedSymbols returns the symbol codes one subscriber follows.
func (s *SQLiteStore) FollowedSymbols(subscriberID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT s.stock_code FROM user_stocks us
		JOIN stocks s ON us.stock_id = s.id
		WHERE us.user_id = ?`, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("followed symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan followed symbol: %w", err)
		}
		symbols = append(symbols, code)
	}
	return symbols, rows.Err()
}

// AddSymbol inserts a symbol into the universe if not already present.
func (s *SQLiteStore) AddSymbol(code string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO stocks (stock_code) VALUES (?)`, code)
	if err != nil {
		return fmt.Errorf("add symbol %s: %w", code, err)
	}
	return nil
}

// AddSubscriber inserts a subscriber and their followed symbols. Symbols
// must already exist in the universe.
func (s *SQLiteStore) AddSubscriber(email string, codes []string) (int64, error) {
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO users (email) VALUES (?)`, email); err != nil {
		return 0, fmt.Errorf("add subscriber %s: %w", email, err)
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM users WHERE email = ?`, email).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup subscriber %s: %w", email, err)
	}
	for _, code := range codes {
		_, err := s.db.Exec(`
			INSERT OR IGNORE INTO user_stocks (user_id, stock_id)
			SELECT ?, id FROM stocks WHERE stock_code = ?`, id, code)
		if err != nil {
			return 0, fmt.Errorf("follow %s for %s: %w", code, email, err)
		}
	}
	return id, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing subscription store")
	return s.db.Close()
}
