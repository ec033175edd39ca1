package api

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// ChunkID derives a stable identifier for chunk i of a source, so
// re-ingesting the same guide overwrites its previous chunks instead of
// duplicating them. BLAKE3 over "source:index" with a delimiter byte
// between the parts.
func ChunkID(sourceID string, i int) string {
	h := blake3.New()
	h.Write([]byte(sourceID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(i)))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
