// Package checkpoint persists verified pipeline progress so interrupted runs
// can resume.
package checkpoint

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.trai.ch/scout/internal/adapters/atomicfs"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reasons a checkpoint file is not trusted.
const (
	RejectMissingDigest  = "missing_digest"
	RejectDigestMismatch = "digest_mismatch"
	RejectInvalidJSON    = "invalid_json"
	RejectRunIDMismatch  = "run_id_mismatch"
)

// DefaultMaxRetained is the number of research checkpoints kept per run.
const DefaultMaxRetained = 3

// Manager implements ports.CheckpointStore for one run directory.
type Manager struct {
	runID       string
	dir         string
	maxRetained int
	logger      ports.Logger
	store       *atomicfs.Store
	metrics     ports.MetricsRecorder
	now         func() time.Time
}

var _ ports.CheckpointStore = (*Manager)(nil)

// NewManager validates runID and returns the manager for root/runID.
// The run directory is created on the first Save.
func NewManager(root, runID string, maxRetained int, log ports.Logger, opts ...Option) (*Manager, error) {
	if err := domain.ValidateRunID(runID); err != nil {
		return nil, err
	}
	if maxRetained < 1 {
		maxRetained = DefaultMaxRetained
	}

	m := &Manager{
		runID:       runID,
		dir:         filepath.Join(root, runID),
		maxRetained: maxRetained,
		logger:      log,
		store:       atomicfs.New(log),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// RunID returns the run this manager belongs to.
func (m *Manager) RunID() string {
	return m.runID
}

// Dir returns the run directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Save writes state as a checkpoint envelope plus its SHA-256 digest.
// Discovery is saved with sequence 0, research with sequences from 1.
func (m *Manager) Save(phase domain.Phase, state any, sequence int) error {
	if !phase.Valid() {
		return domain.NewValidationError("phase", fmt.Sprintf("unknown phase '%s'", phase))
	}
	// Only these names are ever considered by LoadLatest.
	switch {
	case phase == domain.PhaseDiscovery && sequence != 0:
		return domain.NewValidationError("sequence", fmt.Sprintf("discovery checkpoint sequence must be 0, got %d", sequence))
	case phase == domain.PhaseResearch && sequence < 1:
		return domain.NewValidationError("sequence", fmt.Sprintf("research checkpoint sequence must be at least 1, got %d", sequence))
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointMarshalFailed.Error())
	}

	record := domain.CheckpointRecord{
		RunID:     m.runID,
		Phase:     phase,
		Sequence:  sequence,
		Timestamp: m.now().UTC(),
		State:     raw,
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointMarshalFailed.Error())
	}

	if err := os.MkdirAll(m.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCheckpointCreateFailed.Error()), "dir", m.dir)
	}

	name := domain.CheckpointName(phase, sequence)
	path := m.path(name)
	if err := m.store.WriteDurable(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error()), "checkpoint", name)
	}

	//nolint:gosec // digest sits next to the checkpoint inside the run dir
	if err := os.WriteFile(path+domain.DigestSuffix, []byte(digest(data)), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error()), "checkpoint", name+domain.DigestSuffix)
	}

	if m.metrics != nil {
		m.metrics.CheckpointSaved(phase)
	}

	if phase == domain.PhaseResearch && sequence > 0 {
		if err := m.prune(); err != nil {
			m.logger.Warn(fmt.Sprintf("failed to prune old checkpoints: %v", err))
		}
	}
	return nil
}

// LoadLatest returns the newest trusted checkpoint usable for phase. Research
// falls back to the discovery checkpoint. It returns nil when none is trusted.
func (m *Manager) LoadLatest(phase domain.Phase) (*domain.CheckpointRecord, error) {
	candidates, err := m.candidates(phase)
	if err != nil {
		return nil, err
	}

	for _, name := range candidates {
		record, reason, err := m.verify(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if reason != "" {
			m.logger.Warn(fmt.Sprintf("ignoring checkpoint %s: %s", name, reason))
			if m.metrics != nil {
				m.metrics.CheckpointRejected(phase, reason)
			}
			continue
		}
		return record, nil
	}
	return nil, nil
}

// Has reports whether any candidate checkpoint file exists for phase.
func (m *Manager) Has(phase domain.Phase) bool {
	candidates, err := m.candidates(phase)
	if err != nil {
		return false
	}
	for _, name := range candidates {
		if _, err := os.Stat(m.path(name)); err == nil {
			return true
		}
	}
	return false
}

// List describes every checkpoint file of the run, discovery first.
func (m *Manager) List() ([]domain.CheckpointInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCheckpointListFailed.Error()), "dir", m.dir)
	}

	var infos []domain.CheckpointInfo
	for _, e := range entries {
		stem, ok := checkpointStem(e.Name())
		if !ok {
			continue
		}
		phase, seq, ok := parseStem(stem)
		if !ok {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		_, reason, verr := m.verify(stem)
		infos = append(infos, domain.CheckpointInfo{
			Name:      stem,
			Phase:     phase,
			Sequence:  seq,
			SizeBytes: fi.Size(),
			ModTime:   fi.ModTime(),
			Verified:  verr == nil && reason == "",
		})
	}

	slices.SortFunc(infos, func(a, b domain.CheckpointInfo) int {
		if a.Phase != b.Phase {
			if a.Phase == domain.PhaseDiscovery {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	return infos, nil
}

// verify reads a checkpoint and its digest. A non-empty reason means the
// file exists but must not be trusted.
func (m *Manager) verify(name string) (*domain.CheckpointRecord, string, error) {
	path := m.path(name)
	//nolint:gosec // path is inside the run dir
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	//nolint:gosec // path is inside the run dir
	want, err := os.ReadFile(path + domain.DigestSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, RejectMissingDigest, nil
		}
		return nil, "", err
	}
	if strings.TrimSpace(string(want)) != digest(data) {
		return nil, RejectDigestMismatch, nil
	}

	var record domain.CheckpointRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, RejectInvalidJSON, nil
	}
	if record.RunID != m.runID {
		return nil, RejectRunIDMismatch, nil
	}
	return &record, "", nil
}

// candidates lists checkpoint stems for phase, newest first.
func (m *Manager) candidates(phase domain.Phase) ([]string, error) {
	discovery := domain.CheckpointName(domain.PhaseDiscovery, 0)
	switch phase {
	case domain.PhaseDiscovery:
		return []string{discovery}, nil
	case domain.PhaseResearch:
		research, err := m.researchStems()
		if err != nil {
			return nil, err
		}
		slices.SortFunc(research, func(a, b stemSeq) int {
			if n := cmp.Compare(b.seq, a.seq); n != 0 {
				return n
			}
			return strings.Compare(b.stem, a.stem)
		})
		names := make([]string, 0, len(research)+1)
		for _, r := range research {
			names = append(names, r.stem)
		}
		return append(names, discovery), nil
	default:
		return nil, domain.NewValidationError("phase", fmt.Sprintf("unknown phase '%s'", phase))
	}
}

type stemSeq struct {
	stem string
	seq  int
}

func (m *Manager) researchStems() ([]stemSeq, error) {
	matches, err := filepath.Glob(filepath.Join(m.dir, string(domain.PhaseResearch)+"_*.json"))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCheckpointListFailed.Error())
	}
	stems := make([]stemSeq, 0, len(matches))
	for _, match := range matches {
		stem, ok := checkpointStem(filepath.Base(match))
		if !ok {
			continue
		}
		if phase, seq, ok := parseStem(stem); ok && phase == domain.PhaseResearch {
			stems = append(stems, stemSeq{stem: stem, seq: seq})
		}
	}
	return stems, nil
}

// prune removes the oldest research checkpoints beyond maxRetained, ordered by
// modification time. Discovery checkpoints are never pruned.
func (m *Manager) prune() error {
	stems, err := m.researchStems()
	if err != nil {
		return err
	}
	if len(stems) <= m.maxRetained {
		return nil
	}

	type aged struct {
		stem    string
		modTime time.Time
	}
	files := make([]aged, 0, len(stems))
	for _, s := range stems {
		fi, err := os.Stat(m.path(s.stem))
		if err != nil {
			continue
		}
		files = append(files, aged{stem: s.stem, modTime: fi.ModTime()})
	}
	slices.SortFunc(files, func(a, b aged) int {
		if n := b.modTime.Compare(a.modTime); n != 0 {
			return n
		}
		return strings.Compare(b.stem, a.stem)
	})

	var errs *multierror.Error
	for _, f := range files[min(m.maxRetained, len(files)):] {
		for _, p := range []string{m.path(f.stem), m.path(f.stem) + domain.DigestSuffix} {
			if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}

func (m *Manager) path(stem string) string {
	return filepath.Join(m.dir, stem+".json")
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func checkpointStem(fileName string) (string, bool) {
	if strings.HasPrefix(fileName, domain.TempPrefix) || !strings.HasSuffix(fileName, ".json") {
		return "", false
	}
	return strings.TrimSuffix(fileName, ".json"), true
}

func parseStem(stem string) (domain.Phase, int, bool) {
	if p := domain.Phase(stem); p.Valid() {
		return p, 0, true
	}
	prefix, suffix, ok := strings.Cut(stem, "_")
	if !ok {
		return "", 0, false
	}
	p := domain.Phase(prefix)
	seq, err := strconv.Atoi(suffix)
	if !p.Valid() || err != nil || seq < 0 {
		return "", 0, false
	}
	return p, seq, true
}
