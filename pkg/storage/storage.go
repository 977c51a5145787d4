package storage

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kamer1337/quantum-storage-system/pkg/types"
)

// Multiplier model coefficients.
const (
	multiplierBase = 2.0
	multiplierCap  = 10.0
)

// System is the in-memory accounting model: a ledger of virtual files,
// an oscillator state and the running space totals. All state dies with
// the process. Not safe for concurrent use.
type System struct {
	cfg *Config

	files   map[string]*TrackedFile
	state   StateVector
	weights map[string]float64

	usedVirtual  types.Bytes
	usedPhysical types.Bytes
}

// New creates a System with the given config.
// Notes:
//   - PhysicalLimitGB must be > 0 to override the default.
//   - A nil Rand gets a wall-clock seeded source; pass NewSource(seed)
//     for replayable runs.
//   - A nil Now defaults to time.Now.
func New(cfg *Config) *System {
	base := _defaultConfig()

	if cfg != nil {
		if cfg.PhysicalLimitGB > 0 {
			base.PhysicalLimitGB = cfg.PhysicalLimitGB
		}
		if cfg.Rand != nil {
			base.Rand = cfg.Rand
		}
		if cfg.Now != nil {
			base.Now = cfg.Now
		}
	}

	return &System{
		cfg:   base,
		files: make(map[string]*TrackedFile),
		state: initialState(),
		weights: map[string]float64{
			"size":      0.3,
			"frequency": 0.4,
			"entropy":   0.3,
		},
	}
}

// Register books a virtual file of sizeMB megabytes into the ledger and
// returns its entry with the estimated physical footprint. Registering a
// name that already exists replaces its entry; the running totals always
// equal the sum over current entries. A failed registration changes
// nothing.
func (s *System) Register(name string, sizeMB int64) (TrackedFile, error) {
	if strings.TrimSpace(name) == "" {
		return TrackedFile{}, ErrEmptyName
	}
	if sizeMB <= 0 {
		return TrackedFile{}, ErrInvalidSize
	}

	virtual := types.MebiBytes(sizeMB)
	ratio := estimateCompression(name, virtual, s.cfg.Rand)
	physical := types.Bytes(float64(virtual) * (1 - ratio))

	// Entanglement shrink applies once other files are tracked.
	if len(s.files) >= 1 {
		physical = types.Bytes(float64(physical) * s.cfg.Rand.Uniform(0.9, 0.95))
	}

	now := s.cfg.Now()
	f := TrackedFile{
		Name:             name,
		VirtualSize:      virtual,
		PhysicalSize:     physical,
		CompressionRatio: ratio,
		CreatedAt:        now,
		LastAccess:       now,
	}

	if prev, ok := s.files[name]; ok {
		s.usedVirtual -= prev.VirtualSize
		s.usedPhysical -= prev.PhysicalSize
	}
	s.files[name] = &f
	s.usedVirtual += f.VirtualSize
	s.usedPhysical += f.PhysicalSize

	s.state = nextState(len(s.files), s.cfg.Rand)

	return f, nil
}

// Remove drops a tracked file and releases its accounted space.
func (s *System) Remove(name string) error {
	f, ok := s.files[name]
	if !ok {
		return ErrNotFound
	}
	s.usedVirtual -= f.VirtualSize
	s.usedPhysical -= f.PhysicalSize
	delete(s.files, name)
	return nil
}

// RecordAccess notes one read of a tracked file: the access counter and
// the tier clock move, sizes and totals do not.
func (s *System) RecordAccess(name string) error {
	f, ok := s.files[name]
	if !ok {
		return ErrNotFound
	}
	f.AccessCount++
	f.LastAccess = s.cfg.Now()
	return nil
}

// Multiplier returns the current capacity multiplier. It is a pure
// function of the oscillator state and the ledger size; calling it
// mutates nothing.
func (s *System) Multiplier() float64 {
	m := multiplierBase + s.state.MeanAmplitude()
	m += s.weightSum() * 0.5

	if len(s.files) > 3 {
		m += 0.3
	} else {
		m += 0.1
	}

	m += math.Sin(float64(len(s.files))*0.1) * 0.5

	return math.Min(m, multiplierCap)
}

func (s *System) weightSum() float64 {
	var sum float64
	for _, w := range s.weights {
		sum += w
	}
	return sum
}

// Status reports the capacity accounting at this instant.
func (s *System) Status() Status {
	m := s.Multiplier()
	st := Status{
		PhysicalLimitGB:   s.cfg.PhysicalLimitGB,
		VirtualCapacityGB: s.cfg.PhysicalLimitGB * m,
		Multiplier:        m,
		UsedVirtualGB:     s.usedVirtual.GB(),
		UsedPhysicalGB:    s.usedPhysical.GB(),
		Efficiency:        1.0,
		FileCount:         len(s.files),
	}
	if s.usedPhysical > 0 {
		st.Efficiency = float64(s.usedVirtual) / float64(s.usedPhysical)
	}
	return st
}

// Analytics summarizes per-file compression and the model's forward
// predictions. It returns ErrNoData while the ledger is empty.
func (s *System) Analytics() (Analytics, error) {
	if len(s.files) == 0 {
		return Analytics{}, ErrNoData
	}

	perFile := make(map[string]float64, len(s.files))
	var sum float64
	for name, f := range s.files {
		perFile[name] = f.CompressionRatio * 100
		sum += f.CompressionRatio
	}
	avg := sum / float64(len(s.files))

	return Analytics{
		FileCompressionPct:      perFile,
		AvgCompressionPct:       avg * 100,
		PredictedNextMultiplier: s.Multiplier() * 1.1,
		PredictedEfficiencyPct:  (1 + avg) * 100,
	}, nil
}

// Optimizations lists the optimization features the simulation claims to
// run, with extra entries when the model is in a favorable regime. The
// features themselves exist only as these strings.
func (s *System) Optimizations() []string {
	opts := []string{
		"Machine learning file optimization",
		"Quantum space multiplication",
		"Advanced compression algorithms",
		"Intelligent file tiering",
		"Real-time analytics and monitoring",
		"Deduplication and sparse files",
		"Predictive usage analysis",
	}
	if s.Multiplier() > 3.0 {
		opts = append(opts, "High quantum efficiency achieved")
	}
	if a, err := s.Analytics(); err == nil && a.AvgCompressionPct > 70 {
		opts = append(opts, "Excellent prediction performance")
	}
	return opts
}

// Files returns the ledger entries sorted by name.
func (s *System) Files() []TrackedFile {
	out := make([]TrackedFile, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// File looks up a single ledger entry by name.
func (s *System) File(name string) (TrackedFile, bool) {
	f, ok := s.files[name]
	if !ok {
		return TrackedFile{}, false
	}
	return *f, true
}

// FileCount returns the number of tracked files.
func (s *System) FileCount() int { return len(s.files) }

// State returns a copy of the oscillator vector.
func (s *System) State() StateVector { return s.state }

// PhysicalLimitGB returns the immutable physical capacity limit.
func (s *System) PhysicalLimitGB() float64 { return s.cfg.PhysicalLimitGB }

// UsedVirtual returns the booked virtual bytes.
func (s *System) UsedVirtual() types.Bytes { return s.usedVirtual }

// UsedPhysical returns the estimated physical bytes in use.
func (s *System) UsedPhysical() types.Bytes { return s.usedPhysical }

// Now returns the system clock reading, using the configured clock.
func (s *System) Now() time.Time { return s.cfg.Now() }
