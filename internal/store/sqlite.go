// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

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
	-- Day records, one row per calendar date
	CREATE TABLE IF NOT EXISTS day_records (
		id TEXT PRIMARY KEY,
		total_pl REAL NOT NULL DEFAULT 0,
		number_of_trades INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		tags TEXT,
		falling_knives INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Per-day trades with their percentage returns
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		percent_return REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (record_id) REFERENCES day_records(id) ON DELETE CASCADE
	);

	-- Single-row user settings
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		net_worth REAL NOT NULL DEFAULT 0,
		starting_balance REAL NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_record ON trades(record_id);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Day Record Methods
// ============================================================================

// SaveRecord creates or wholesale-replaces a day record and its trades.
func (s *SQLiteStore) SaveRecord(ctx context.Context, record *models.DayRecord) error {
	if _, err := models.ParseDay(record.ID); err != nil {
		return apperrors.NewValidationError("id", record.ID, "expected YYYY-MM-DD")
	}

	tagsJSON, _ := json.Marshal(record.Tags)

	var knives interface{}
	if record.FallingKnives != nil {
		knives = *record.FallingKnives
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO day_records (id, total_pl, number_of_trades, notes, tags, falling_knives, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			total_pl = excluded.total_pl,
			number_of_trades = excluded.number_of_trades,
			notes = excluded.notes,
			tags = excluded.tags,
			falling_knives = excluded.falling_knives,
			updated_at = CURRENT_TIMESTAMP
	`, record.ID, record.TotalPL, record.NumberOfTrades, record.Notes, string(tagsJSON), knives)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE record_id = ?`, record.ID); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}

	if len(record.Trades) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO trades (record_id, position, symbol, percent_return)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, t := range record.Trades {
			if _, err := stmt.ExecContext(ctx, record.ID, i, t.Symbol, t.PercentReturn); err != nil {
				return fmt.Errorf("failed to insert trade: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRecord retrieves a single day record by its date key.
func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*models.DayRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, total_pl, number_of_trades, notes, tags, falling_knives
		FROM day_records WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.Wrapf(apperrors.ErrRecordNotFound, "record %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	trades, err := s.loadTrades(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	record.Trades = trades[id]

	return record, nil
}

// DeleteRecord removes a day record and its trades.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM day_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.Wrapf(apperrors.ErrRecordNotFound, "record %s", id)
	}
	return nil
}

// ListRecords retrieves day records matching the filter, sorted by date
// ascending, with their trades attached.
func (s *SQLiteStore) ListRecords(ctx context.Context, filter RecordFilter) ([]models.DayRecord, error) {
	query := "SELECT id, total_pl, number_of_trades, notes, tags, falling_knives FROM day_records WHERE 1=1"
	args := []interface{}{}

	if filter.Month != "" {
		query += " AND id LIKE ?"
		args = append(args, filter.Month+"%")
	}
	if filter.From != "" {
		query += " AND id >= ?"
		args = append(args, filter.From)
	}
	if filter.To != "" {
		query += " AND id <= ?"
		args = append(args, filter.To)
	}
	if filter.Tag != "" {
		// tags column is a JSON array of strings
		query += " AND tags LIKE ?"
		args = append(args, `%"`+filter.Tag+`"%`)
	}

	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.DayRecord
	var ids []string
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *record)
		ids = append(ids, record.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	if len(records) == 0 {
		return records, nil
	}

	trades, err := s.loadTrades(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Trades = trades[records[i].ID]
	}

	return records, nil
}

// loadTrades fetches the trades for the given record ids, keyed by
// record id in stored order.
func (s *SQLiteStore) loadTrades(ctx context.Context, ids []string) (map[string][]models.Trade, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT record_id, symbol, percent_return
		FROM trades WHERE record_id IN (%s)
		ORDER BY record_id, position
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make(map[string][]models.Trade)
	for rows.Next() {
		var recordID string
		var t models.Trade
		if err := rows.Scan(&recordID, &t.Symbol, &t.PercentReturn); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades[recordID] = append(trades[recordID], t)
	}

	return trades, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*models.DayRecord, error) {
	var r models.DayRecord
	var notes, tagsJSON sql.NullString
	var knives sql.NullInt64

	if err := row.Scan(&r.ID, &r.TotalPL, &r.NumberOfTrades, &notes, &tagsJSON, &knives); err != nil {
		return nil, err
	}

	r.Notes = notes.String
	if tagsJSON.Valid && tagsJSON.String != "" {
		json.Unmarshal([]byte(tagsJSON.String), &r.Tags)
	}
	if knives.Valid {
		n := int(knives.Int64)
		r.FallingKnives = &n
	}

	return &r, nil
}

// ============================================================================
// Settings Methods
// ============================================================================

// GetSettings retrieves the user settings, defaulting to zero values when
// none have been saved yet.
func (s *SQLiteStore) GetSettings(ctx context.Context) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.QueryRowContext(ctx, `
		SELECT net_worth, starting_balance FROM settings WHERE id = 1
	`).Scan(&settings.NetWorth, &settings.StartingBalance)
	if err == sql.ErrNoRows {
		return &models.UserSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings replaces the user settings wholesale.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings *models.UserSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, net_worth, starting_balance, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			net_worth = excluded.net_worth,
			starting_balance = excluded.starting_balance,
			updated_at = CURRENT_TIMESTAMP
	`, settings.NetWorth, settings.StartingBalance)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
