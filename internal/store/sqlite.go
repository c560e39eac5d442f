// internal/store/sqlite.go
//
// SQLite-backed Store. Keeps the live session of each player in a single
// row so a restarted server picks up games in progress. A Save replaces the
// row, so nothing outlives the next reset.
//
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Upserting and reading session rows; read-modify-write in one transaction.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/assets"
	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if missing) the database at path and
// applies migrations.
func NewSQLiteStore(ctx context.Context, path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB opens a SQLite database file, creating its parent directory for
// relative paths such as ./data/hangman.db.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// A single writer avoids SQLITE_BUSY on concurrent upserts.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from migrations in lexical order, each in its
// own transaction, skipping those already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB, migrations fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *sqliteStore) Save(ctx context.Context, playerID string, g game.Session) error {
	return saveSession(ctx, s.db, playerID, g)
}

func (s *sqliteStore) Get(ctx context.Context, playerID string) (game.Session, error) {
	return getSession(ctx, s.db, playerID)
}

// Update reads and writes inside one transaction. The pool holds a single
// connection, so a second Update waits until the first commits.
func (s *sqliteStore) Update(ctx context.Context, playerID string, fn UpdateFunc) (game.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return game.Session{}, fmt.Errorf("update session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := getSession(ctx, tx, playerID)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return game.Session{}, err
	}
	next, err := fn(cur, found)
	if err != nil {
		return game.Session{}, err
	}
	if !found || next != cur {
		if err := saveSession(ctx, tx, playerID, next); err != nil {
			return game.Session{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return game.Session{}, fmt.Errorf("update session: %w", err)
	}
	return next, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func saveSession(ctx context.Context, db execQuerier, playerID string, g game.Session) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO sessions (player_id, session_id, secret, revealed, guessed, remaining, stage, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            session_id=excluded.session_id,
            secret=excluded.secret,
            revealed=excluded.revealed,
            guessed=excluded.guessed,
            remaining=excluded.remaining,
            stage=excluded.stage,
            updated_at=excluded.updated_at`,
		playerID, g.ID, g.Secret, g.Revealed, g.Guessed, g.Remaining, g.Stage,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func getSession(ctx context.Context, db execQuerier, playerID string) (game.Session, error) {
	var g game.Session
	err := db.QueryRowContext(ctx, `
        SELECT session_id, secret, revealed, guessed, remaining, stage
        FROM sessions WHERE player_id=?`, playerID,
	).Scan(&g.ID, &g.Secret, &g.Revealed, &g.Guessed, &g.Remaining, &g.Stage)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Session{}, ErrNotFound
	}
	if err != nil {
		return game.Session{}, fmt.Errorf("get session: %w", err)
	}
	if len(g.Revealed) != len(g.Secret) || strings.TrimSpace(g.Secret) == "" {
		return game.Session{}, fmt.Errorf("get session %s: corrupt row", g.ID)
	}
	return g, nil
}
