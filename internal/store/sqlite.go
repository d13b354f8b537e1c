package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	apperrors "options-strategist/internal/errors"
)

// SQLiteStore implements EvaluationStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based evaluation journal.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Journaled payoff evaluations
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		strategy TEXT NOT NULL,
		method TEXT NOT NULL,
		lots INTEGER NOT NULL,
		lot_size INTEGER NOT NULL,
		spot REAL,
		max_profit TEXT,
		max_loss TEXT,
		breakeven TEXT,
		risk_reward TEXT,
		params TEXT,
		result TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Journaled strike selections
	CREATE TABLE IF NOT EXISTS selections (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		spot REAL NOT NULL,
		expiry DATETIME,
		sell_put REAL,
		buy_put REAL,
		sell_call REAL,
		buy_call REAL,
		expected_move REAL,
		strike_interval REAL,
		crossed INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_evaluations_symbol ON evaluations(symbol);
	CREATE INDEX IF NOT EXISTS idx_evaluations_strategy ON evaluations(strategy);
	CREATE INDEX IF NOT EXISTS idx_evaluations_timestamp ON evaluations(timestamp);
	CREATE INDEX IF NOT EXISTS idx_selections_symbol ON selections(symbol);
	CREATE INDEX IF NOT EXISTS idx_selections_timestamp ON selections(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveEvaluation saves an evaluation to the journal. A missing ID or
// timestamp is filled in.
func (s *SQLiteStore) SaveEvaluation(ctx context.Context, rec *EvaluationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, timestamp, symbol, strategy, method, lots, lot_size, spot, max_profit, max_loss, breakeven, risk_reward, params, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Timestamp, rec.Symbol, rec.Strategy, rec.Method, rec.Lots, rec.LotSize, rec.Spot, rec.MaxProfit, rec.MaxLoss, rec.Breakeven, rec.RiskReward, rec.ParamsJSON, rec.ResultJSON)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// GetEvaluations retrieves evaluations from the journal.
func (s *SQLiteStore) GetEvaluations(ctx context.Context, filter EvaluationFilter) ([]EvaluationRecord, error) {
	query := "SELECT id, timestamp, symbol, strategy, method, lots, lot_size, spot, max_profit, max_loss, breakeven, risk_reward, params, result FROM evaluations WHERE 1=1"
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	if filter.Method != "" {
		query += " AND method = ?"
		args = append(args, filter.Method)
	}
	if !filter.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var recs []EvaluationRecord
	for rows.Next() {
		var r EvaluationRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Symbol, &r.Strategy, &r.Method, &r.Lots, &r.LotSize, &r.Spot, &r.MaxProfit, &r.MaxLoss, &r.Breakeven, &r.RiskReward, &r.ParamsJSON, &r.ResultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		recs = append(recs, r)
	}

	return recs, rows.Err()
}

// GetEvaluationByID retrieves a single evaluation by ID.
func (s *SQLiteStore) GetEvaluationByID(ctx context.Context, id string) (*EvaluationRecord, error) {
	var r EvaluationRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, symbol, strategy, method, lots, lot_size, spot, max_profit, max_loss, breakeven, risk_reward, params, result
		FROM evaluations WHERE id = ?
	`, id).Scan(&r.ID, &r.Timestamp, &r.Symbol, &r.Strategy, &r.Method, &r.Lots, &r.LotSize, &r.Spot, &r.MaxProfit, &r.MaxLoss, &r.Breakeven, &r.RiskReward, &r.ParamsJSON, &r.ResultJSON)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrDataNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &r, nil
}

// SaveSelection saves a strike selection to the journal.
func (s *SQLiteStore) SaveSelection(ctx context.Context, rec *SelectionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	crossed := 0
	if rec.Crossed {
		crossed = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selections (id, timestamp, symbol, spot, expiry, sell_put, buy_put, sell_call, buy_call, expected_move, strike_interval, crossed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Timestamp, rec.Symbol, rec.Spot, rec.Expiry, rec.SellPut, rec.BuyPut, rec.SellCall, rec.BuyCall, rec.ExpectedMove, rec.Interval, crossed)
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// GetSelections retrieves strike selections from the journal.
func (s *SQLiteStore) GetSelections(ctx context.Context, filter SelectionFilter) ([]SelectionRecord, error) {
	query := "SELECT id, timestamp, symbol, spot, expiry, sell_put, buy_put, sell_call, buy_call, expected_move, strike_interval, crossed FROM selections WHERE 1=1"
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if !filter.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}
	defer rows.Close()

	var recs []SelectionRecord
	for rows.Next() {
		var r SelectionRecord
		var crossed int
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Symbol, &r.Spot, &r.Expiry, &r.SellPut, &r.BuyPut, &r.SellCall, &r.BuyCall, &r.ExpectedMove, &r.Interval, &crossed); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		r.Crossed = crossed == 1
		recs = append(recs, r)
	}

	return recs, rows.Err()
}
