// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/food-poll/models"
)

// ReportFilename is the export file name for a day
func ReportFilename(day string) string {
	return "food-orders-" + day + ".txt"
}

// ExportDailyReport builds today's order report from the current state
func (s *Store) ExportDailyReport() models.DailyReport {
	s.mu.Lock()
	snap := s.snapshotLocked()
	today := s.Today()
	s.mu.Unlock()

	return models.DailyReport{
		Date:     today,
		Filename: ReportFilename(today),
		Body:     BuildReport(snap, today),
	}
}

// BuildReport renders one block per food available today, in food order:
//
//	[Delivery] Food (N orders):
//	  - Additional requests: <text or None>
//
// Blocks are separated by a blank line. Unavailable foods are skipped even
// if they have votes; available foods without votes still get a block.
func BuildReport(snap models.Snapshot, day string) string {
	deliveryNames := make(map[string]string, len(snap.Deliveries))
	for _, d := range snap.Deliveries {
		deliveryNames[d.ID] = d.Name
	}

	votesByFood := make(map[string][]models.Vote)
	for _, v := range snap.Votes {
		if v.Date == day {
			votesByFood[v.FoodID] = append(votesByFood[v.FoodID], v)
		}
	}

	var blocks []string
	for _, f := range snap.Foods {
		if !f.IsAvailableToday {
			continue
		}

		votes := votesByFood[f.ID]
		lines := make([]string, 0, len(votes))
		for _, v := range votes {
			req := v.AdditionalRequests
			if req == "" {
				req = "None"
			}
			lines = append(lines, "  - Additional requests: "+req)
		}

		header := fmt.Sprintf("[%s] %s (%d orders):", deliveryNames[f.DeliveryID], f.Name, len(votes))
		blocks = append(blocks, header+"\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// WriteReport writes the report into dir and returns the file path
func WriteReport(dir string, report models.DailyReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(dir, report.Filename)
	if err := os.WriteFile(path, []byte(report.Body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info("report exported", "path", path, "size", humanize.Bytes(uint64(len(report.Body))))
	return path, nil
}
