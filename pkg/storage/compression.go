package storage

import (
	"math"
	"path/filepath"

	"github.com/kamer1337/quantum-storage-system/pkg/types"
)

// Compression model coefficients.
const (
	compressionBase = 0.3
	compressionCap  = 0.85

	boostText    = 0.4 // .txt, .log, .json compress well
	boostPacked  = 0.1 // .jpg, .mp4, .zip are already compressed
	boostDefault = 0.2

	sizeFactorCap = 0.3
)

// estimateCompression predicts the compressible fraction of a file in
// [0, compressionCap]: a base rate, a boost by file type, a logarithmic
// size factor and one uniform draw in [0.05, 0.15].
func estimateCompression(name string, size types.Bytes, rng Source) float64 {
	ratio := compressionBase + typeBoost(name) + sizeFactor(size)
	ratio += rng.Uniform(0.05, 0.15)
	return math.Min(ratio, compressionCap)
}

// typeBoost classifies the file extension. Names without an extension
// count as the default class, same as .dat.
func typeBoost(name string) float64 {
	switch filepath.Ext(name) {
	case ".txt", ".log", ".json":
		return boostText
	case ".jpg", ".mp4", ".zip":
		return boostPacked
	default:
		return boostDefault
	}
}

// sizeFactor grows logarithmically with the virtual size and saturates
// at sizeFactorCap.
func sizeFactor(size types.Bytes) float64 {
	f := math.Log(float64(size)+1) / math.Log(float64(types.MiB))
	return math.Min(f, sizeFactorCap)
}
