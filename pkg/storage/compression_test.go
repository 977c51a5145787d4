package storage

import (
	"testing"

	"github.com/kamer1337/quantum-storage-system/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeBoost(t *testing.T) {
	cases := []struct {
		name string
		want float64
	}{
		{"notes.txt", 0.4},
		{"server.log", 0.4},
		{"payload.json", 0.4},
		{"photo.jpg", 0.1},
		{"clip.mp4", 0.1},
		{"bundle.zip", 0.1},
		{"blob.dat", 0.2},
		{"noextension", 0.2},
		{"archive.tar.gz", 0.2},
		{"UPPER.TXT", 0.2}, // extension match is case-sensitive
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, typeBoost(c.name), 1e-12, "boost for %q", c.name)
	}
}

func TestSizeFactor(t *testing.T) {
	assert.Zero(t, sizeFactor(0))

	// Below ~64 bytes the log has not saturated yet.
	small := sizeFactor(16)
	assert.Greater(t, small, 0.0)
	assert.Less(t, small, 0.3)

	// Anything file-sized sits at the cap.
	assert.InDelta(t, 0.3, sizeFactor(types.MiB), 1e-12)
	assert.InDelta(t, 0.3, sizeFactor(800*types.MiB), 1e-12)
}

func TestEstimateCompression_Midpoint(t *testing.T) {
	cases := []struct {
		name string
		size types.Bytes
		want float64
	}{
		// 0.3 base + type boost + 0.3 size factor + 0.1 midpoint noise
		{"dataset_1.txt", 800 * types.MiB, 0.85}, // 1.1 hits the cap
		{"backup_archive.zip", 1200 * types.MiB, 0.8},
		{"media_collection.dat", 2000 * types.MiB, 0.85}, // 0.9 hits the cap
		{"empty", 0, 0.6},                                // no size factor
	}
	for _, c := range cases {
		got := estimateCompression(c.name, c.size, stubSource{})
		assert.InDelta(t, c.want, got, 1e-12, "ratio for %q", c.name)
	}
}

func TestEstimateCompression_Bounds(t *testing.T) {
	rng := NewSource(7)
	names := []string{"a.txt", "b.zip", "c.dat", "d.log", "e.mp4", "f"}

	for i := 0; i < 200; i++ {
		name := names[i%len(names)]
		size := types.MebiBytes(int64(1 + i*13))
		got := estimateCompression(name, size, rng)
		require.GreaterOrEqual(t, got, 0.45, "%q run %d", name, i)
		require.LessOrEqual(t, got, 0.85, "%q run %d", name, i)
	}
}
