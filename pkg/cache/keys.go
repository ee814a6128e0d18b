package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// resultPrefix tags every enumeration-result key. Backends may rely on
// the "result:<graph>:<opts>" shape - the file backend groups entries
// for the same graph under one directory.
const resultPrefix = "result"

// GraphHash fingerprints a canonical graph encoding (see graph.Marshal).
// Returns the full 64-character SHA-256 hex string. The same graph
// always fingerprints identically regardless of the file format it was
// loaded from, so repeated runs share cache entries.
func GraphHash(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// ResultKeyOpts are the run options that shape an enumeration result.
// Two runs with the same graph but different options must not share a
// cache entry. Options that cannot change the solution set (workers,
// output format) must not appear here.
type ResultKeyOpts struct {
	Problem  string `json:"problem"`
	MaxDepth int    `json:"max_depth,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// ResultKey builds the cache key for an enumeration result:
// result:<graph fingerprint>:<options digest>.
func ResultKey(graphHash string, opts ResultKeyOpts) string {
	data, _ := json.Marshal(opts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%s", resultPrefix, graphHash, hex.EncodeToString(sum[:8]))
}
