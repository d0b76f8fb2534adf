// Package decode turns a line-delimited byte stream into transaction
// records, one at a time. Memory use is bounded by a single line in
// flight, never the size of the input.
package decode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bozkayasalihx/roinstxs/internal/models"
	"github.com/shopspring/decimal"
)

// LineError describes one malformed input line. The caller is expected
// to count it and move on to the next line; it never terminates the
// stream.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Decoder reads `type, client, tx, amount` lines separated by ',' or
// ';', tolerating surrounding whitespace, blank lines and a leading
// header row.
type Decoder struct {
	r          *bufio.Reader
	line       int
	requireEOL bool
}

// New decodes a finite batch input. A final line missing its newline is
// still decoded.
func New(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// NewStream decodes a connection-fed stream. A final line cut off
// before its terminator, as happens when the peer drops mid-record, is
// discarded rather than decoded.
func NewStream(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r), requireEOL: true}
}

// Next returns the next well-formed record. It returns io.EOF once the
// stream ends, a *LineError for a malformed line, or the underlying read
// error if the source itself fails.
func (d *Decoder) Next() (models.Record, error) {
	for {
		raw, err := d.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return models.Record{}, err
		}
		atEOF := err == io.EOF
		if atEOF && (raw == "" || d.requireEOL) {
			return models.Record{}, io.EOF
		}
		d.line++

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if atEOF {
				return models.Record{}, io.EOF
			}
			continue
		}

		rec, perr := parseLine(trimmed)
		if perr != nil {
			// The header row names the columns instead of a record kind.
			if d.line == 1 && strings.HasPrefix(trimmed, "type") {
				if atEOF {
					return models.Record{}, io.EOF
				}
				continue
			}
			return models.Record{}, &LineError{Line: d.line, Err: perr}
		}
		return rec, nil
	}
}

func parseLine(raw string) (models.Record, error) {
	fields := strings.SplitN(strings.ReplaceAll(raw, ";", ","), ",", 4)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return models.Record{}, fmt.Errorf("want at least type, client, tx; got %d fields", len(fields))
	}

	kind := models.KindFromString(fields[0])
	if kind == models.KindUnknown {
		return models.Record{}, fmt.Errorf("unknown record type %q", fields[0])
	}

	client, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return models.Record{}, fmt.Errorf("client %q: %v", fields[1], err)
	}
	tx, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return models.Record{}, fmt.Errorf("tx %q: %v", fields[2], err)
	}

	rec := models.Record{
		Kind:     kind,
		TxID:     uint32(tx),
		ClientID: uint16(client),
		Amount:   decimal.Zero,
	}

	// Dispute-family records reference an earlier transaction; any
	// trailing amount field on them is ignored.
	if kind.HasAmount() {
		if len(fields) < 4 || fields[3] == "" {
			return models.Record{}, fmt.Errorf("%s requires an amount", kind)
		}
		amt, err := decimal.NewFromString(fields[3])
		if err != nil {
			return models.Record{}, fmt.Errorf("amount %q: %v", fields[3], err)
		}
		if amt.Exponent() < -4 {
			return models.Record{}, fmt.Errorf("amount %q: more than 4 fractional digits", fields[3])
		}
		rec.Amount = amt
	}
	return rec, nil
}
