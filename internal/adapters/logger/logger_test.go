package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scout/internal/adapters/logger"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a pretty logger writing to a buffer without colors.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("cache opened")
	lg.Warn("ignoring checkpoint research_0003: digest_mismatch")
	lg.Error(errors.New("boom"))

	assert.Equal(t,
		"cache opened\n! ignoring checkpoint research_0003: digest_mismatch\n✗ Error: boom\n",
		buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.Wrap(domain.NewRateLimitError("acme", "quota exhausted", 0), "research task 3 hit an account limit")
	lg.Error(err)

	assert.Equal(t,
		"✗ Error: research task 3 hit an account limit\n\n  Caused by:\n    → quota exhausted\n",
		buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	err := zerr.With(domain.NewAuthenticationError("acme", "invalid api key"), "region", "Perth")
	lg.Error(err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "operation failed", rec["msg"])
	assert.Equal(t, "invalid api key", rec["error"])
	assert.Equal(t, "AUTH_ERROR", rec["code"])
	assert.Equal(t, "acme", rec["provider"])
	assert.Equal(t, "Perth", rec["region"])
}

func TestLogger_SetFormat(t *testing.T) {
	lg, buf := newTestLogger(t)

	require.NoError(t, lg.SetFormat(domain.LogFormatJSON))
	lg.Info("json line")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	buf.Reset()
	require.NoError(t, lg.SetFormat(domain.LogFormatPretty))
	lg.Info("pretty line")
	assert.Equal(t, "pretty line\n", buf.String())

	// A buffer is never a terminal, so auto means JSON.
	buf.Reset()
	require.NoError(t, lg.SetFormat(domain.LogFormatAuto))
	lg.Info("auto line")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	err := lg.SetFormat("xml")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfiguration))
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Warn("still json")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, buf := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			lg.Info(fmt.Sprintf("worker %d", i))
		})
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "\n"))
}
