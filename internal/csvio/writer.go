package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

var header = []string{"client", "available", "held", "total", "locked"}

// Writer encodes account snapshots as CSV with fixed four-digit amounts.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteSnapshots writes a header and one row per snapshot. Nothing at all is
// written when there are no snapshots.
func (w *Writer) WriteSnapshots(_ context.Context, snapshots []models.AccountSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	cw := csv.NewWriter(w.w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	for _, s := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(models.DisplayPlaces),
			s.Held.StringFixed(models.DisplayPlaces),
			s.Total.StringFixed(models.DisplayPlaces),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write client %d: %w", s.ClientID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var _ interfaces.SnapshotWriter = (*Writer)(nil)
