package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netdraw/pkg/errors"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashFile computes the SHA-256 hash of a file's contents without loading it
// into memory.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found -- '%s'", path)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GraphKeyOpts are the import options that change the imported graph.
type GraphKeyOpts struct {
	AnalysisPeriod float64 `json:"period"`
	VertexIDColumn string  `json:"id_column"`
	// SnapshotVersion invalidates entries written in an older format.
	SnapshotVersion int `json:"snapshot_version"`
}

// GraphKey returns the key of the graph imported from tables with the given
// content digests.
func GraphKey(vertexDigest, edgeDigest string, opts GraphKeyOpts) string {
	return hashKey("graph", vertexDigest, edgeDigest, opts)
}
