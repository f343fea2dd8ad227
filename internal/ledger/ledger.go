package ledger

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"blackjack/internal/game"
)

// Ledger keeps the round history of the sessions played by this process.
type Ledger struct {
	conn *sql.DB
}

// New opens the ledger database and creates the schema.
func New(dsn string) (*Ledger, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping ledger: %w", err)
	}

	l := &Ledger{conn: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate ledger: %w", err)
	}

	log.Printf("Ledger opened: %s", dsn)
	return l, nil
}

func (l *Ledger) migrate() error {
	_, err := l.conn.Exec(`
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		starting_chips INTEGER NOT NULL,
		restarts INTEGER NOT NULL DEFAULT 0
	);`)
	if err != nil {
		return err
	}

	_, err = l.conn.Exec(`
	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		seq INTEGER NOT NULL,
		bet INTEGER NOT NULL,
		doubled BOOLEAN NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		delta INTEGER NOT NULL,
		player_hand TEXT NOT NULL,
		dealer_hand TEXT NOT NULL,
		player_total INTEGER NOT NULL,
		dealer_total INTEGER NOT NULL,
		chips_after INTEGER NOT NULL,
		played_at TEXT NOT NULL
	);`)
	return err
}

func (l *Ledger) Close() error {
	log.Println("Ledger closing.")
	return l.conn.Close()
}

// StartSession registers a new session.
func (l *Ledger) StartSession(s *game.Session) error {
	_, err := l.conn.Exec("INSERT INTO sessions (id, started_at, starting_chips) VALUES (?, ?, ?)",
		s.ID, time.Now().UTC().Format(time.RFC3339), s.StartingChips)
	return err
}

// RecordRound appends a settled round to the session history.
func (l *Ledger) RecordRound(s *game.Session, res game.Result) error {
	_, err := l.conn.Exec(`
		INSERT INTO rounds (id, session_id, seq, bet, doubled, outcome, delta, player_hand, dealer_hand, player_total, dealer_total, chips_after, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), s.ID, s.Rounds, res.Bet, res.Doubled, string(res.Outcome), res.Delta,
		game.FormatHand(res.Player, false), game.FormatHand(res.Dealer, false),
		res.PlayerTotal, res.DealerTotal, s.Chips, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record round: %w", err)
	}
	return nil
}

// RecordRestart counts a bankruptcy refill.
func (l *Ledger) RecordRestart(s *game.Session) error {
	_, err := l.conn.Exec("UPDATE sessions SET restarts = restarts + 1 WHERE id = ?", s.ID)
	if err != nil {
		return fmt.Errorf("record restart: %w", err)
	}
	return nil
}

// Summary aggregates the results of one session.
type Summary struct {
	Rounds     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Doubles    int
	Net        int
	BiggestWin int
	Restarts   int
}

func (l *Ledger) Summary(sessionID string) (*Summary, error) {
	sum := &Summary{}
	err := l.conn.QueryRow("SELECT restarts FROM sessions WHERE id = ?", sessionID).Scan(&sum.Restarts)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unknown session %s", sessionID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := l.conn.Query("SELECT outcome, doubled, delta FROM rounds WHERE session_id = ? ORDER BY seq", sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var doubled bool
		var delta int
		if err := rows.Scan(&outcome, &doubled, &delta); err != nil {
			return nil, err
		}

		o := game.Outcome(outcome)
		sum.Rounds++
		sum.Net += delta
		switch {
		case o.Won():
			sum.Wins++
		case o.Lost():
			sum.Losses++
		default:
			sum.Pushes++
		}
		if o == game.OutcomeBlackjack {
			sum.Blackjacks++
		}
		if doubled {
			sum.Doubles++
		}
		if delta > sum.BiggestWin {
			sum.BiggestWin = delta
		}
	}
	return sum, rows.Err()
}
