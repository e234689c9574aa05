package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/scout/internal/adapters/logger"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "standard error",
			err:  errors.New("simple error"),
			want: []logger.ErrorEntry{{Message: "simple error"}},
		},
		{
			name: "zerr chain ends at standard error",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			want: []logger.ErrorEntry{
				{Message: "outer layer", Metadata: map[string]any{}},
				{Message: "middle layer", Metadata: map[string]any{}},
				{Message: "root cause"},
			},
		},
		{
			name: "metadata stays with its level",
			err: func() error {
				inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
				return zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")
			}(),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{"outer_key": "outer_val"}},
				{Message: "inner", Metadata: map[string]any{"inner_key": "inner_val"}},
			},
		},
		{
			name: "empty wrapper folds into taxonomy error",
			err:  zerr.With(domain.NewCacheIOError("write", "failed to write file"), "path", "/tmp/x"),
			want: []logger.ErrorEntry{
				{Message: "failed to write file", Metadata: map[string]any{"path": "/tmp/x"}},
			},
		},
		{
			name: "taxonomy error with cause",
			err:  domain.NewNetworkError("acme", "connection reset").WithCause(errors.New("read tcp: EOF")),
			want: []logger.ErrorEntry{
				{Message: "connection reset"},
				{Message: "read tcp: EOF"},
			},
		},
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name: "causes",
			entries: []logger.ErrorEntry{
				{Message: "checkpoint write failed"},
				{Message: "disk full"},
				{Message: "no space left on device"},
			},
			want: "Error: checkpoint write failed\n\n  Caused by:\n    → disk full\n    → no space left on device",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{
				{Message: "cache read failed", Metadata: map[string]any{"path": "/c", "key": "ab"}},
			},
			want: "Error: cache read failed [key=ab path=/c]",
		},
		{
			name: "multiline messages are indented",
			entries: []logger.ErrorEntry{
				{Message: "first\nsecond"},
				{Message: "cause\nmore"},
			},
			want: "Error: first\n       second\n\n  Caused by:\n    → cause\n      more",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
