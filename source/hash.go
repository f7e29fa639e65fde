package source

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// ContentHash computes the BLAKE3 hash of a document's bytes. Used for
// document identity and change detection.
func ContentHash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}
