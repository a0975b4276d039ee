package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fairjack/fairjack-be/internal/game"
	"github.com/fairjack/fairjack-be/internal/provablyfair"
)

// Config selects the SQL driver and connection string. Both supported
// drivers ride on database/sql: "postgres" (lib/pq) for shared deployments
// and "sqlite3" for single-node or local runs.
type Config struct {
	Driver string
	DSN    string
}

// ConfigFromEnv reads DB_DRIVER and DB_DSN. An empty driver means the
// server runs without round-history persistence at all.
func ConfigFromEnv() Config {
	return Config{
		Driver: os.Getenv("DB_DRIVER"),
		DSN:    os.Getenv("DB_DSN"),
	}
}

type Database struct {
	db     *sql.DB
	driver string
}

// RoundRecord is one settled round as persisted: the wager, the outcome
// and the full fairness transcript needed to re-verify the shuffle.
type RoundRecord struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"sessionId"`
	GameID           string    `json:"gameId"`
	Bet              int       `json:"bet"`
	Outcome          string    `json:"outcome"`
	Payout           int       `json:"payout"`
	ServerSeed       string    `json:"serverSeed"`
	HashedServerSeed string    `json:"hashedServerSeed"`
	ClientSeed       string    `json:"clientSeed"`
	Nonce            uint64    `json:"nonce"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SessionStats aggregates a session's round history.
type SessionStats struct {
	SessionID    string `json:"sessionId"`
	RoundsPlayed int    `json:"roundsPlayed"`
	RoundsWon    int    `json:"roundsWon"`
	TotalBet     int    `json:"totalBet"`
	TotalPayout  int    `json:"totalPayout"`
}

// New opens the configured database, verifies the connection and creates
// the schema if needed.
func New(cfg Config) (*Database, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	d := &Database{db: db, driver: cfg.Driver}
	if err := d.initTables(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) initTables() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			snapshot TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating sessions table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			bet INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			payout INTEGER NOT NULL,
			server_seed TEXT NOT NULL,
			hashed_server_seed TEXT NOT NULL,
			client_seed TEXT NOT NULL,
			nonce INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating rounds table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// bind rewrites "?" placeholders to "$n" when running on postgres. Queries
// are written once in sqlite style.
func (d *Database) bind(query string) string {
	if d.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveSession upserts the session's JSON snapshot.
func (d *Database) SaveSession(sess *game.Session) error {
	snapshot, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(d.bind(`
		INSERT INTO sessions (id, state, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET state = excluded.state, snapshot = excluded.snapshot, updated_at = excluded.updated_at
	`), sess.ID, string(sess.State), string(snapshot), sess.CreatedAt, sess.UpdatedAt)
	return err
}

// GetSession loads a session snapshot. A missing session returns (nil, nil).
func (d *Database) GetSession(id string) (*game.Session, error) {
	var snapshot []byte
	err := d.db.QueryRow(d.bind(`SELECT snapshot FROM sessions WHERE id = ?`), id).Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess game.Session
	if err := json.Unmarshal(snapshot, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteSession removes a session snapshot. Its round history is kept; the
// transcript stays verifiable after the session is gone.
func (d *Database) DeleteSession(id string) error {
	_, err := d.db.Exec(d.bind(`DELETE FROM sessions WHERE id = ?`), id)
	return err
}

// SaveRound records a settled round together with its revealed seeds.
func (d *Database) SaveRound(sessionID string, fair *provablyfair.Record, bet int, outcome game.Outcome, payout int) error {
	_, err := d.db.Exec(d.bind(`
		INSERT INTO rounds (id, session_id, game_id, bet, outcome, payout,
			server_seed, hashed_server_seed, client_seed, nonce, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), uuid.New().String(), sessionID, fair.GameID, bet, string(outcome), payout,
		fair.ServerSeed, fair.HashedServerSeed, fair.ClientSeed, int64(fair.Nonce), time.Now())
	return err
}

// RoundHistory returns a session's settled rounds, newest first.
func (d *Database) RoundHistory(sessionID string) ([]RoundRecord, error) {
	rows, err := d.db.Query(d.bind(`
		SELECT id, session_id, game_id, bet, outcome, payout,
			server_seed, hashed_server_seed, client_seed, nonce, created_at
		FROM rounds WHERE session_id = ? ORDER BY created_at DESC
	`), sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var nonce int64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.GameID, &r.Bet, &r.Outcome, &r.Payout,
			&r.ServerSeed, &r.HashedServerSeed, &r.ClientSeed, &nonce, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Nonce = uint64(nonce)
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// GetSessionStats aggregates the round history for a session.
func (d *Database) GetSessionStats(sessionID string) (*SessionStats, error) {
	stats := &SessionStats{SessionID: sessionID}

	err := d.db.QueryRow(d.bind(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome IN (?, ?, ?) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(bet), 0),
			COALESCE(SUM(payout), 0)
		FROM rounds WHERE session_id = ?
	`), string(game.OutcomePlayerWin), string(game.OutcomeDealerBust), string(game.OutcomeBlackjack),
		sessionID).Scan(&stats.RoundsPlayed, &stats.RoundsWon, &stats.TotalBet, &stats.TotalPayout)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
