package cache

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store keeps synthesized narrations keyed by backend, voice and text so a
// re-run of an unchanged slide skips the speech backend.
type Store interface {
	// Restore copies a cached narration to dest. ok is false on a miss.
	Restore(ctx context.Context, key Key, dest string) (duration decimal.Decimal, ok bool, err error)
	// Save records audioPath as the narration for key
	Save(ctx context.Context, key Key, audioPath string, duration decimal.Decimal) error
	Close() error
}
