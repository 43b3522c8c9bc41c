package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nguyentantai21042004/deckcast/internal/logger"
)

const dbName = "narrations.db"

type sqliteStore struct {
	dir    string
	db     *sql.DB
	logger logger.Logger
}

// New opens (creating if needed) the narration cache in dir
func New(dir string, log logger.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+filepath.Join(dir, dbName))
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
	PRAGMA busy_timeout = 10000;
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous  = NORMAL;

	create table if not exists narrations (
		key_hash text primary key not null,
		backend text not null,
		voice text not null,
		file_name text not null,
		duration text not null,
		created_at timestamp default current_timestamp
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &sqliteStore{
		dir:    dir,
		db:     db,
		logger: log,
	}, nil
}
