package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

// WriteLedgerCSV streams the ledger as CSV rows under a fixed header.
func WriteLedgerCSV(w io.Writer, files []storage.TrackedFile) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"name", "virtual_bytes", "physical_bytes", "compression_ratio",
		"created_at", "last_access", "access_count",
	}); err != nil {
		return err
	}

	for _, f := range files {
		if err := cw.Write([]string{
			f.Name,
			strconv.FormatUint(uint64(f.VirtualSize), 10),
			strconv.FormatUint(uint64(f.PhysicalSize), 10),
			strconv.FormatFloat(f.CompressionRatio, 'f', 6, 64),
			f.CreatedAt.Format(time.RFC3339),
			f.LastAccess.Format(time.RFC3339),
			strconv.Itoa(f.AccessCount),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
