// Package health grades capacity snapshots against operational thresholds.
package health

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

// Grade classifies a single check or a whole report.
type Grade string

const (
	GradeHealthy  Grade = "HEALTHY"
	GradeWarning  Grade = "WARNING"
	GradeCritical Grade = "CRITICAL"
	GradeUnknown  Grade = "UNKNOWN" // nothing to grade against yet
)

// Severity labels an alert raised by a tripped check.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Check is one graded measurement.
type Check struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Grade Grade   `json:"grade" yaml:"grade"`
}

// Alert records a check that crossed a threshold.
type Alert struct {
	ID        string    `json:"id" yaml:"id"`
	Severity  Severity  `json:"severity" yaml:"severity"`
	Component string    `json:"component" yaml:"component"`
	Message   string    `json:"message" yaml:"message"`
	RaisedAt  time.Time `json:"raised_at" yaml:"raised_at"`
}

// Report is the outcome of one evaluation pass.
type Report struct {
	Overall Grade     `json:"overall" yaml:"overall"`
	Checks  []Check   `json:"checks" yaml:"checks"`
	Alerts  []Alert   `json:"alerts" yaml:"alerts"`
	At      time.Time `json:"at" yaml:"at"`
}

// Healthy reports whether every graded check passed.
func (r Report) Healthy() bool { return r.Overall == GradeHealthy }

// Thresholds are the trip points Evaluate grades against.
// Units:
//   - EfficiencyWarn/EfficiencyCritical: virtual/physical ratio floors
//   - PhysicalUsage*/VirtualUsage*: percent of the respective capacity
//   - MultiplierWarn: capacity multiplier floor
type Thresholds struct {
	EfficiencyWarn     float64
	EfficiencyCritical float64
	PhysicalUsageWarn  float64
	PhysicalUsageCrit  float64
	VirtualUsageWarn   float64
	VirtualUsageCrit   float64
	MultiplierWarn     float64
}

// _defaultThresholds returns the stock trip points.
func _defaultThresholds() *Thresholds {
	return &Thresholds{
		EfficiencyWarn:     1.5,
		EfficiencyCritical: 1.1,
		PhysicalUsageWarn:  85,
		PhysicalUsageCrit:  95,
		VirtualUsageWarn:   90,
		VirtualUsageCrit:   98,
		MultiplierWarn:     1.5,
	}
}

// Monitor grades Status snapshots against a fixed set of thresholds.
type Monitor struct {
	th  *Thresholds
	now func() time.Time
}

// NewMonitor creates a monitor with the given thresholds.
// Fields must be > 0 in th to override defaults.
func NewMonitor(th *Thresholds) *Monitor {
	base := _defaultThresholds()

	if th != nil {
		if th.EfficiencyWarn > 0 {
			base.EfficiencyWarn = th.EfficiencyWarn
		}
		if th.EfficiencyCritical > 0 {
			base.EfficiencyCritical = th.EfficiencyCritical
		}
		if th.PhysicalUsageWarn > 0 {
			base.PhysicalUsageWarn = th.PhysicalUsageWarn
		}
		if th.PhysicalUsageCrit > 0 {
			base.PhysicalUsageCrit = th.PhysicalUsageCrit
		}
		if th.VirtualUsageWarn > 0 {
			base.VirtualUsageWarn = th.VirtualUsageWarn
		}
		if th.VirtualUsageCrit > 0 {
			base.VirtualUsageCrit = th.VirtualUsageCrit
		}
		if th.MultiplierWarn > 0 {
			base.MultiplierWarn = th.MultiplierWarn
		}
	}

	return &Monitor{th: base, now: time.Now}
}

// Evaluate grades one capacity snapshot. Checks with nothing to measure
// come back UNKNOWN and do not count against the overall grade.
func (m *Monitor) Evaluate(st storage.Status) Report {
	rep := Report{Overall: GradeHealthy, At: m.now()}

	// Efficiency is undefined until something is tracked.
	effGrade := GradeUnknown
	if st.FileCount > 0 && st.UsedPhysicalGB > 0 {
		effGrade = gradeLow(st.Efficiency, m.th.EfficiencyWarn, m.th.EfficiencyCritical)
	}
	m.record(&rep, "efficiency", st.Efficiency, effGrade,
		fmt.Sprintf("space efficiency %.2f under the %.2f floor", st.Efficiency, m.th.EfficiencyWarn))

	var physPct float64
	if st.PhysicalLimitGB > 0 {
		physPct = st.UsedPhysicalGB / st.PhysicalLimitGB * 100
	}
	m.record(&rep, "physical_usage", physPct,
		gradeHigh(physPct, m.th.PhysicalUsageWarn, m.th.PhysicalUsageCrit),
		fmt.Sprintf("physical usage at %.1f%% of the %.1f GB limit", physPct, st.PhysicalLimitGB))

	var virtPct float64
	if st.VirtualCapacityGB > 0 {
		virtPct = st.UsedVirtualGB / st.VirtualCapacityGB * 100
	}
	m.record(&rep, "virtual_usage", virtPct,
		gradeHigh(virtPct, m.th.VirtualUsageWarn, m.th.VirtualUsageCrit),
		fmt.Sprintf("virtual usage at %.1f%% of advertised capacity", virtPct))

	multGrade := GradeHealthy
	if st.Multiplier < m.th.MultiplierWarn {
		multGrade = GradeWarning
	}
	m.record(&rep, "multiplier", st.Multiplier, multGrade,
		fmt.Sprintf("capacity multiplier x%.2f under the x%.2f floor", st.Multiplier, m.th.MultiplierWarn))

	return rep
}

// record appends a check, raises an alert when it tripped and keeps the
// overall grade at the worst seen so far.
func (m *Monitor) record(rep *Report, name string, value float64, g Grade, msg string) {
	rep.Checks = append(rep.Checks, Check{Name: name, Value: value, Grade: g})

	switch g {
	case GradeWarning:
		rep.Alerts = append(rep.Alerts, Alert{
			ID:        uuid.New().String(),
			Severity:  SeverityWarning,
			Component: name,
			Message:   msg,
			RaisedAt:  rep.At,
		})
	case GradeCritical:
		rep.Alerts = append(rep.Alerts, Alert{
			ID:        uuid.New().String(),
			Severity:  SeverityCritical,
			Component: name,
			Message:   msg,
			RaisedAt:  rep.At,
		})
	}

	if rank(g) > rank(rep.Overall) {
		rep.Overall = g
	}
}

// gradeHigh grades a measurement where higher is worse.
func gradeHigh(v, warn, crit float64) Grade {
	switch {
	case v >= crit:
		return GradeCritical
	case v >= warn:
		return GradeWarning
	default:
		return GradeHealthy
	}
}

// gradeLow grades a measurement where lower is worse.
func gradeLow(v, warn, crit float64) Grade {
	switch {
	case v < crit:
		return GradeCritical
	case v < warn:
		return GradeWarning
	default:
		return GradeHealthy
	}
}

// rank orders grades by badness. UNKNOWN never outranks a real grade.
func rank(g Grade) int {
	switch g {
	case GradeCritical:
		return 2
	case GradeWarning:
		return 1
	default:
		return 0
	}
}
