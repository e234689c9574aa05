package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/scout/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultCachePath",
			got:      domain.DefaultCachePath(),
			expected: filepath.Join(".scout", "cache"),
		},
		{
			name:     "DefaultCheckpointPath",
			got:      domain.DefaultCheckpointPath(),
			expected: filepath.Join(".scout", "checkpoints"),
		},
		{
			name:     "IndexBackupName",
			got:      domain.IndexBackupName(),
			expected: "cache_index.json.backup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}
