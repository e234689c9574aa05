package domain

import (
	"math"
	"strings"
	"time"
)

// CacheType partitions cache entries and selects their TTL.
type CacheType string

const (
	// CacheDiscovery holds candidate lists discovered per region.
	CacheDiscovery CacheType = "discovery"
	// CacheResearch holds detailed metrics per candidate.
	CacheResearch CacheType = "research"
)

// Cache lookup outcomes reported to metrics.
const (
	LookupHit     = "hit"
	LookupMiss    = "miss"
	LookupExpired = "expired"
	LookupCorrupt = "corrupt"
)

// DefaultPriceBucket is the granularity used to bucket prices in cache keys.
const DefaultPriceBucket = 50_000

// CacheTypes lists every cache type.
func CacheTypes() []CacheType {
	return []CacheType{CacheDiscovery, CacheResearch}
}

// Valid reports whether t is a known cache type.
func (t CacheType) Valid() bool {
	return t == CacheDiscovery || t == CacheResearch
}

// ParseCacheType validates s as a cache type.
func ParseCacheType(s string) (CacheType, error) {
	t := CacheType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", NewValidationError("cache_type", "unknown cache type '"+s+"', expected discovery or research")
	}
	return t, nil
}

// KeyParts are the named request parameters a cache key is derived from.
type KeyParts map[string]string

// CacheEntry is the index metadata for one cached payload.
type CacheEntry struct {
	KeyHash      string    `json:"key_hash"`
	FilePath     string    `json:"filepath"`
	CreatedAt    time.Time `json:"created_at"`
	TTLSeconds   int64     `json:"ttl_seconds"`
	CacheType    CacheType `json:"cache_type"`
	KeyParts     KeyParts  `json:"key_parts"`
	SizeBytes    int64     `json:"size_bytes"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Expired reports whether the entry outlived its TTL at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > time.Duration(e.TTLSeconds)*time.Second
}

// CacheStats summarizes the cache contents.
type CacheStats struct {
	DiscoveryCount            int        `json:"discovery_count"`
	ResearchCount             int        `json:"research_count"`
	TotalEntries              int        `json:"total_entries"`
	ExpiredCount              int        `json:"expired_count"`
	TotalSizeBytes            int64      `json:"total_size_bytes"`
	OldestTimestamp           *time.Time `json:"oldest_timestamp,omitempty"`
	NewestTimestamp           *time.Time `json:"newest_timestamp,omitempty"`
	Enabled                   bool       `json:"enabled"`
	MaxSizeBytes              int64      `json:"max_size_bytes"`
	OrphansCleanedLastStartup int        `json:"orphans_cleaned_last_startup"`
}

// BucketPrice rounds price to the nearest multiple of bucket so that nearby
// prices share a cache key. A non-positive bucket uses DefaultPriceBucket.
func BucketPrice(price float64, bucket int) int64 {
	if bucket <= 0 {
		bucket = DefaultPriceBucket
	}
	return int64(math.RoundToEven(price/float64(bucket))) * int64(bucket)
}
