package storage

import (
	"time"

	"github.com/kamer1337/quantum-storage-system/pkg/types"
)

// Config holds the accounting parameters of a System.
// Units:
//   - PhysicalLimitGB: gigabytes (1024 base) of simulated physical space
//   - Rand: source of the uniform draws the estimators consume
//   - Now: clock used for creation and access timestamps
type Config struct {
	PhysicalLimitGB float64
	Rand            Source
	Now             func() time.Time
}

// _defaultConfig returns a Config pre-filled with the stock parameters.
func _defaultConfig() *Config {
	return &Config{
		PhysicalLimitGB: 5.0, // GB of simulated backing space
		Rand:            NewTimeSource(),
		Now:             time.Now,
	}
}

// TrackedFile is one ledger entry of the accounting model. Sizes are
// bookkeeping values only; no bytes exist anywhere.
type TrackedFile struct {
	Name             string      `json:"name" yaml:"name"`
	VirtualSize      types.Bytes `json:"virtual_size_bytes" yaml:"virtual_size_bytes"`
	PhysicalSize     types.Bytes `json:"physical_size_bytes" yaml:"physical_size_bytes"`
	CompressionRatio float64     `json:"compression_ratio" yaml:"compression_ratio"`
	CreatedAt        time.Time   `json:"created_at" yaml:"created_at"`
	LastAccess       time.Time   `json:"last_access" yaml:"last_access"`
	AccessCount      int         `json:"access_count" yaml:"access_count"`
}

// Status is a point-in-time capacity snapshot.
type Status struct {
	PhysicalLimitGB   float64 `json:"physical_limit_gb" yaml:"physical_limit_gb"`
	VirtualCapacityGB float64 `json:"virtual_capacity_gb" yaml:"virtual_capacity_gb"`
	Multiplier        float64 `json:"multiplier" yaml:"multiplier"`
	UsedVirtualGB     float64 `json:"used_virtual_gb" yaml:"used_virtual_gb"`
	UsedPhysicalGB    float64 `json:"used_physical_gb" yaml:"used_physical_gb"`
	Efficiency        float64 `json:"efficiency" yaml:"efficiency"`
	FileCount         int     `json:"file_count" yaml:"file_count"`
}

// Analytics is the prediction summary over the current ledger.
type Analytics struct {
	FileCompressionPct      map[string]float64 `json:"file_compression_pct" yaml:"file_compression_pct"`
	AvgCompressionPct       float64            `json:"avg_compression_pct" yaml:"avg_compression_pct"`
	PredictedNextMultiplier float64            `json:"predicted_next_multiplier" yaml:"predicted_next_multiplier"`
	PredictedEfficiencyPct  float64            `json:"predicted_efficiency_pct" yaml:"predicted_efficiency_pct"`
}

// Tier labels a file by how recently it was accessed.
type Tier string

const (
	TierHot    Tier = "HOT"    // accessed within the hour
	TierWarm   Tier = "WARM"   // accessed within a day
	TierCold   Tier = "COLD"   // accessed within a week
	TierFrozen Tier = "FROZEN" // older than a week
)

// TierFor classifies a file by the time elapsed since its last access.
func TierFor(lastAccess, now time.Time) Tier {
	switch h := now.Sub(lastAccess).Hours(); {
	case h < 1:
		return TierHot
	case h < 24:
		return TierWarm
	case h < 168:
		return TierCold
	default:
		return TierFrozen
	}
}
