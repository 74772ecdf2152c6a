package ops

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/config"
	"github.com/hpungsan/refdeck/internal/errors"
)

// ExportSchemaVersion is written in the header line of every export.
const ExportSchemaVersion = "1.0"

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional; empty writes to the supplied writer
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path,omitempty"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader represents the header line in a JSONL export.
type ExportHeader struct {
	RefdeckExport bool   `json:"_refdeck_export"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    int64  `json:"exported_at"`
	Count         int    `json:"count"`
}

// Export writes the catalog as JSONL: a header line, then one entry per line
// in catalog order. With input.Path set, the path is checked by
// ValidateExportPath and the file is written via a temp file renamed into
// place, so an existing file survives a failed export.
func Export(entries []catalog.Entry, cfg *config.Config, w io.Writer, input ExportInput, now time.Time) (*ExportOutput, error) {
	exportedAt := now.Unix()

	if input.Path == "" {
		if err := writeJSONL(w, entries, exportedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		return &ExportOutput{Count: len(entries), ExportedAt: exportedAt}, nil
	}

	// The default exports dir may not exist yet.
	if defaultDir, err := DefaultExportsDir(); err == nil {
		if abs, err := filepath.Abs(input.Path); err == nil && filepath.Dir(abs) == defaultDir {
			if err := os.MkdirAll(defaultDir, 0700); err != nil {
				return nil, errors.NewInternal(fmt.Errorf("failed to create exports directory: %w", err))
			}
		}
	}

	if err := ValidateExportPath(input.Path, cfg); err != nil {
		return nil, err
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := input.Path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidRequest) {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if !success {
			os.Remove(tempPath)
		}
	}()

	if err := writeJSONL(file, entries, exportedAt); err != nil {
		file.Close()
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := os.Rename(tempPath, input.Path); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}
	success = true

	return &ExportOutput{
		Path:       input.Path,
		Count:      len(entries),
		ExportedAt: exportedAt,
	}, nil
}

func writeJSONL(w io.Writer, entries []catalog.Entry, exportedAt int64) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := ExportHeader{
		RefdeckExport: true,
		SchemaVersion: ExportSchemaVersion,
		ExportedAt:    exportedAt,
		Count:         len(entries),
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("write entry %q: %w", e.Name, err)
		}
	}
	return nil
}
