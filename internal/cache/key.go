package cache

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Key identifies a narration
type Key struct {
	Backend string
	Voice   string
	Text    string
}

// Hash is the hex blake3 digest of the key fields
func (k Key) Hash() string {
	h := blake3.New(32, nil)
	for _, field := range []string{k.Backend, k.Voice, k.Text} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
