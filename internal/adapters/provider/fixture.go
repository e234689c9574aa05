package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	"unicode"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
)

// fixtureError is the content of an error_*.json fixture.
type fixtureError struct {
	Kind              string `json:"kind"`
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
	StatusCode        int    `json:"status,omitempty"`
}

// FixtureClient implements ports.ResearchProvider from canned JSON files:
//
//	discover_<region>.json        []Candidate
//	research_<name>_<state>.json  Metrics
//	error_<name>_<state>.json     {"kind": "...", "message": "..."}
//	error_discover_<region>.json  same, for a region
//
// Name parts are lower-cased with every run of other characters replaced by
// a single underscore.
type FixtureClient struct {
	name string
	fsys fs.FS
}

var _ ports.ResearchProvider = (*FixtureClient)(nil)

// NewFixtureClient serves fixtures from fsys.
func NewFixtureClient(name string, fsys fs.FS) *FixtureClient {
	return &FixtureClient{name: name, fsys: fsys}
}

// Name returns the configured provider name.
func (c *FixtureClient) Name() string {
	return c.name
}

// Discover returns the candidates recorded for region.
func (c *FixtureClient) Discover(
	ctx context.Context,
	_ domain.ResearchRequest,
	region string,
) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.injectedError("error_discover_" + Slug(region) + ".json"); err != nil {
		return nil, zerr.With(err, "region", region)
	}

	var candidates []domain.Candidate
	if err := c.read("discover_"+Slug(region)+".json", &candidates); err != nil {
		return nil, zerr.With(err, "region", region)
	}
	for i := range candidates {
		if candidates[i].Region == "" {
			candidates[i].Region = region
		}
	}
	return candidates, nil
}

// Research returns the metrics recorded for candidate.
func (c *FixtureClient) Research(
	ctx context.Context,
	_ domain.ResearchRequest,
	candidate domain.Candidate,
) (domain.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return domain.Metrics{}, err
	}
	stem := Slug(candidate.Name) + "_" + Slug(candidate.State)
	if err := c.injectedError("error_" + stem + ".json"); err != nil {
		return domain.Metrics{}, zerr.With(err, "candidate", candidate.Name)
	}

	var m domain.Metrics
	if err := c.read("research_"+stem+".json", &m); err != nil {
		return domain.Metrics{}, zerr.With(err, "candidate", candidate.Name)
	}
	if m.Identity.Name == "" {
		m.Identity = domain.Identity{
			Name:   candidate.Name,
			State:  candidate.State,
			LGA:    candidate.LGA,
			Region: candidate.Region,
		}
	}
	m.Fallback = false
	return m, nil
}

// read decodes a fixture. A missing fixture behaves like a 404 from a real API.
func (c *FixtureClient) read(name string, dst any) error {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewAPIError(c.name, fmt.Sprintf("no fixture %s", name), 404)
		}
		return domain.NewCacheIOError("read", domain.ErrFixtureReadFailed.Error()).WithCause(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewAPIError(c.name, domain.ErrProviderDecodeFailed.Error(), 200).WithCause(err)
	}
	return nil
}

// injectedError returns the taxonomy error described by fixture name, or nil
// when it does not exist.
func (c *FixtureClient) injectedError(name string) error {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return domain.NewCacheIOError("read", domain.ErrFixtureReadFailed.Error()).WithCause(err)
	}

	var fe fixtureError
	if err := json.Unmarshal(data, &fe); err != nil {
		return domain.NewConfigurationError(fmt.Sprintf("invalid error fixture %s", name)).WithCause(err)
	}
	kind, ok := domain.ParseKind(fe.Kind)
	if !ok {
		return domain.NewConfigurationError(fmt.Sprintf("unknown error kind '%s' in fixture %s", fe.Kind, name))
	}

	switch kind {
	case domain.KindValidation:
		e := domain.NewValidationError("request", fe.Message)
		e.Provider = c.name
		return e
	case domain.KindAuthentication:
		return domain.NewAuthenticationError(c.name, fe.Message)
	case domain.KindConfiguration:
		return domain.NewConfigurationError(fe.Message)
	case domain.KindRateLimit:
		return domain.NewRateLimitError(c.name, fe.Message, time.Duration(fe.RetryAfterSeconds)*time.Second)
	case domain.KindTimeout:
		return domain.NewTimeoutError(c.name, fe.Message, 0)
	case domain.KindNetwork:
		return domain.NewNetworkError(c.name, fe.Message)
	case domain.KindCacheIO:
		return domain.NewCacheIOError("read", fe.Message)
	default:
		return domain.NewAPIError(c.name, fe.Message, fe.StatusCode)
	}
}

// Slug lower-cases s and collapses every run of non-alphanumerics into "_".
func Slug(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
