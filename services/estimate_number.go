package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatEstimateNumber constructs the estimate number string from its
// components. "-" keeps the number safe inside URLs and filenames.
func formatEstimateNumber(blockCode string, year int, sequence int) string {
	return fmt.Sprintf("EST-%s-%02d-%03d", blockCode, year%100, sequence)
}

// GenerateEstimateNumber creates the next estimate number for a block.
// Format: EST-{block_code}-{YY}-{sequence}, sequence per block per
// calendar year. The block id is used when the block has no code.
func GenerateEstimateNumber(app *pocketbase.PocketBase, blockID string, now time.Time) (string, error) {
	block, err := app.FindRecordById("blocks", blockID)
	if err != nil {
		return "", fmt.Errorf("block not found: %w", err)
	}

	blockCode := block.GetString("code")
	if blockCode == "" {
		blockCode = blockID
	}

	prefix := fmt.Sprintf("EST-%s-%02d-", blockCode, now.Year()%100)

	existing, err := app.FindRecordsByFilter(
		"material_estimates",
		"block = {:blockId} && number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"blockId": blockID,
			"prefix":  prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	// Scan for the highest issued suffix so deleted estimates never free
	// up their number for reuse.
	maxSeq := 0
	for _, rec := range existing {
		suffix := strings.TrimPrefix(rec.GetString("number"), prefix)
		if seq, err := strconv.Atoi(suffix); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}

	return formatEstimateNumber(blockCode, now.Year(), maxSeq+1), nil
}
