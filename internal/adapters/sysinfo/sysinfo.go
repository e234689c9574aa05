// Package sysinfo sizes worker pools from container CPU limits and available
// memory.
package sysinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
)

// Worker caps and the memory budget per worker.
const (
	MaxDiscoveryWorkers = 8
	MaxResearchWorkers  = 6

	reservedMemory  = 2 << 30
	memoryPerWorker = 512 << 20
)

// Probe reads resource limits from the cgroup and proc filesystems.
type Probe struct {
	cgroupRoot string
	procRoot   string
	numCPU     func() int
	logger     ports.Logger
}

var _ ports.WorkerScaler = (*Probe)(nil)

// Option configures a Probe.
type Option func(*Probe)

// WithCgroupRoot overrides /sys/fs/cgroup.
func WithCgroupRoot(dir string) Option {
	return func(p *Probe) {
		p.cgroupRoot = dir
	}
}

// WithProcRoot overrides /proc.
func WithProcRoot(dir string) Option {
	return func(p *Probe) {
		p.procRoot = dir
	}
}

// WithNumCPU overrides runtime.NumCPU.
func WithNumCPU(fn func() int) Option {
	return func(p *Probe) {
		p.numCPU = fn
	}
}

// New creates a Probe for the host.
func New(log ports.Logger, opts ...Option) *Probe {
	p := &Probe{
		cgroupRoot: "/sys/fs/cgroup",
		procRoot:   procfs.DefaultMountPoint,
		numCPU:     runtime.NumCPU,
		logger:     log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DetectCPULimit returns the CPUs available to this process: the cgroup v2
// quota, then the cgroup v1 quota, then the host CPU count. It is at least 1.
func (p *Probe) DetectCPULimit() int {
	if n, ok := p.cgroupV2CPU(); ok {
		return n
	}
	if n, ok := p.cgroupV1CPU(); ok {
		return n
	}
	return max(1, p.numCPU())
}

// cpu.max holds "$MAX $PERIOD" or "max $PERIOD".
func (p *Probe) cgroupV2CPU() (int, bool) {
	data, err := os.ReadFile(filepath.Join(p.cgroupRoot, "cpu.max"))
	if err != nil {
		return 0, false
	}
	fields := strings.Fields(string(data))
	if len(fields) != 2 || fields[0] == "max" {
		return 0, false
	}
	quota, err1 := strconv.ParseInt(fields[0], 10, 64)
	period, err2 := strconv.ParseInt(fields[1], 10, 64)
	if err1 != nil || err2 != nil || quota <= 0 || period <= 0 {
		return 0, false
	}
	return max(1, int(quota/period)), true
}

func (p *Probe) cgroupV1CPU() (int, bool) {
	quota, err := readInt(filepath.Join(p.cgroupRoot, "cpu", "cpu.cfs_quota_us"))
	if err != nil || quota <= 0 {
		return 0, false
	}
	period, err := readInt(filepath.Join(p.cgroupRoot, "cpu", "cpu.cfs_period_us"))
	if err != nil || period <= 0 {
		return 0, false
	}
	return max(1, int(quota/period)), true
}

func readInt(path string) (int64, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixed cgroup paths
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}

// AvailableMemory returns MemAvailable in bytes. It reports false when the
// proc filesystem is missing or does not expose the field.
func (p *Probe) AvailableMemory() (uint64, bool) {
	pfs, err := procfs.NewFS(p.procRoot)
	if err != nil {
		return 0, false
	}
	mi, err := pfs.Meminfo()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && p.logger != nil {
			p.logger.Warn(fmt.Sprintf("failed to read meminfo: %v", err))
		}
		return 0, false
	}
	if mi.MemAvailable == nil {
		return 0, false
	}
	return *mi.MemAvailable * 1024, true
}

// WorkerCounts probes the host and computes pool sizes.
func (p *Probe) WorkerCounts(overrides domain.WorkerSettings) domain.WorkerCounts {
	cpus := p.DetectCPULimit()
	mem, ok := p.AvailableMemory()
	counts := ComputeWorkerCounts(cpus, mem, ok, overrides)

	if p.logger != nil {
		memText := "unknown"
		if ok {
			memText = fmt.Sprintf("%.1fGB", float64(mem)/(1<<30))
		}
		p.logger.Info(fmt.Sprintf("worker scaling: cpu=%d memory=%s discovery=%d research=%d",
			cpus, memText, counts.Discovery, counts.Research))
	}
	return counts
}

// ComputeWorkerCounts applies the scaling rules: discovery gets 3 workers per
// CPU up to 8, research 2 per CPU up to 6, both limited to one worker per
// 512MB above a 2GB reserve when memory is known. Positive overrides replace
// the computed values. Every count is at least 1.
func ComputeWorkerCounts(cpus int, availableBytes uint64, memoryKnown bool, overrides domain.WorkerSettings) domain.WorkerCounts {
	cpus = max(1, cpus)
	discovery := min(cpus*3, MaxDiscoveryWorkers)
	research := min(cpus*2, MaxResearchWorkers)

	if memoryKnown {
		byMemory := 1
		if availableBytes > reservedMemory {
			byMemory = max(1, int((availableBytes-reservedMemory)/memoryPerWorker))
		}
		discovery = min(discovery, byMemory)
		research = min(research, byMemory)
	}

	if overrides.Discovery > 0 {
		discovery = overrides.Discovery
	}
	if overrides.Research > 0 {
		research = overrides.Research
	}

	return domain.WorkerCounts{
		Discovery: max(1, discovery),
		Research:  max(1, research),
	}
}
