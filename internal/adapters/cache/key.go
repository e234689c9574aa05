package cache

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/scout/internal/core/domain"
)

// Key derives the 16 hex character key hash for a cache type and its key parts.
// Parts are sorted by name, and type, names and values are each terminated by
// a zero byte so that distinct inputs cannot produce the same byte stream.
func Key(cacheType domain.CacheType, parts domain.KeyParts) string {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	slices.Sort(names)

	d := xxhash.New()
	writeField(d, string(cacheType))
	for _, name := range names {
		writeField(d, name)
		writeField(d, parts[name])
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

func writeField(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0})
}

func fileName(cacheType domain.CacheType, key string) string {
	return string(cacheType) + "_" + key + ".json"
}

// isKeyHash reports whether s has the shape Key produces.
func isKeyHash(s string) bool {
	if len(s) != 16 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
