package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func (s *sqliteStore) Restore(ctx context.Context, key Key, dest string) (decimal.Decimal, bool, error) {
	hash := key.Hash()

	var fileName, duration string
	err := s.db.
		QueryRowContext(ctx, "select file_name, duration from narrations where key_hash = $1", hash).
		Scan(&fileName, &duration)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("lookup narration: %w", err)
	}

	d, err := decimal.NewFromString(duration)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("cached duration %q: %w", duration, err)
	}

	src := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(src); err != nil {
		// audio removed behind our back
		s.logger.Warn(ctx, "Cached narration %s missing, dropping entry", fileName)
		if _, err := s.db.ExecContext(ctx, "delete from narrations where key_hash = $1", hash); err != nil {
			return decimal.Zero, false, fmt.Errorf("drop stale entry: %w", err)
		}
		return decimal.Zero, false, nil
	}

	if err := copyFile(src, dest); err != nil {
		return decimal.Zero, false, fmt.Errorf("restore narration: %w", err)
	}

	return d, true, nil
}

func (s *sqliteStore) Save(ctx context.Context, key Key, audioPath string, duration decimal.Decimal) error {
	hash := key.Hash()
	fileName := hash + filepath.Ext(audioPath)

	if err := copyFile(audioPath, filepath.Join(s.dir, fileName)); err != nil {
		return fmt.Errorf("store narration: %w", err)
	}

	_, err := s.db.ExecContext(
		ctx,
		`insert into narrations (key_hash, backend, voice, file_name, duration) values ($1, $2, $3, $4, $5)
		on conflict (key_hash) do update set file_name = excluded.file_name, duration = excluded.duration`,
		hash,
		key.Backend,
		key.Voice,
		fileName,
		duration.String(),
	)
	if err != nil {
		return fmt.Errorf("persist narration: %w", err)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// copyFile writes src to a temp file next to dst and renames it into place
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".partial-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dst)
}
