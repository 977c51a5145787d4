package types

import "fmt"

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// Binary size units (1024 base).
const (
	KiB Bytes = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
)

// MebiBytes converts a whole number of megabytes into Bytes.
// Negative counts collapse to zero.
func MebiBytes(mb int64) Bytes {
	if mb < 0 {
		return 0
	}
	return Bytes(mb) * MiB
}

// Humanized returns a human-readable string with automatic unit (B, KB, MB, GB, TB).
func (b Bytes) Humanized() string {
	v := float64(b)
	switch {
	case b >= TiB:
		return fmt.Sprintf("%.2f TB", v/float64(TiB))
	case b >= GiB:
		return fmt.Sprintf("%.2f GB", v/float64(GiB))
	case b >= MiB:
		return fmt.Sprintf("%.2f MB", v/float64(MiB))
	case b >= KiB:
		return fmt.Sprintf("%.2f KB", v/float64(KiB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// KB returns the number of kilobytes (1024 base).
func (b Bytes) KB() float64 { return float64(b) / float64(KiB) }

// MB returns the number of megabytes (1024 base).
func (b Bytes) MB() float64 { return float64(b) / float64(MiB) }

// GB returns the number of gigabytes (1024 base).
func (b Bytes) GB() float64 { return float64(b) / float64(GiB) }
