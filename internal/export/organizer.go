package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/processor"
	"github.com/papertrail/classifier/internal/telemetry"
)

// Organizer moves classified source files into per-category folders under
// a destination root. Low-confidence results land in "unsorted" instead of
// a category folder so misfiles stay reviewable.
type Organizer struct {
	minConfidence float64
	logger        logger.Logger
	telemetry     *telemetry.Provider
}

const unsortedFolder = "unsorted"

// NewOrganizer creates an Organizer with the given confidence gate.
func NewOrganizer(minConfidence float64, log logger.Logger, tp *telemetry.Provider) *Organizer {
	return &Organizer{
		minConfidence: minConfidence,
		logger:        log,
		telemetry:     tp,
	}
}

// Organize moves every item's source file into destRoot/<category>/. Items
// without a source path are skipped. A failed move is logged and does not
// stop the rest of the batch; the count of moved files is returned.
func (o *Organizer) Organize(destRoot string, items []processor.Item) (int, error) {
	if err := os.MkdirAll(destRoot, 0o750); err != nil {
		return 0, fmt.Errorf("create destination %s: %w", destRoot, err)
	}

	moved := 0
	for _, item := range items {
		if item.Doc.Source == "" {
			continue
		}

		folder := o.folderFor(item.Result)
		destDir := filepath.Join(destRoot, folder)
		if err := os.MkdirAll(destDir, 0o750); err != nil {
			return moved, fmt.Errorf("create category folder %s: %w", destDir, err)
		}

		dest := filepath.Join(destDir, item.Doc.Filename)
		if err := os.Rename(item.Doc.Source, dest); err != nil {
			if o.logger != nil {
				o.logger.Warn("failed to move file",
					logger.String("file", item.Doc.Filename),
					logger.String("category", folder),
					logger.Error(err))
			}
			continue
		}

		moved++
		if o.telemetry != nil {
			o.telemetry.RecordFileOrganized(folder)
		}
	}

	if o.logger != nil {
		o.logger.Info("files organized",
			logger.String("destination", destRoot),
			logger.Int("moved", moved),
			logger.Int("total", len(items)))
	}
	return moved, nil
}

func (o *Organizer) folderFor(result *domain.ClassificationResult) string {
	if result.Confidence < o.minConfidence {
		return unsortedFolder
	}
	return string(result.Category)
}
