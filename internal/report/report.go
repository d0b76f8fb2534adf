// Package report serializes final account summaries.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/bozkayasalihx/roinstxs/internal/models"
)

// Write emits one CSV row per account under a
// `client,available,held,total,locked` header. Amounts render with
// exactly 4 decimal digits. Rows come out in the order given; the batch
// pipeline passes them pre-sorted by client for deterministic output.
func Write(w io.Writer, snaps []models.AccountSnapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range snaps {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(4),
			s.Held.StringFixed(4),
			s.Total.StringFixed(4),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
