// Package batch runs the single-producer pipeline: a finite record
// stream in, one account summary out.
package batch

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/bozkayasalihx/roinstxs/internal/decode"
	"github.com/bozkayasalihx/roinstxs/internal/engine"
	"github.com/bozkayasalihx/roinstxs/internal/report"
)

// Result counts what happened to each input unit of a run.
type Result struct {
	Applied   int // records the engine accepted
	Rejected  int // records the engine refused
	Malformed int // lines the decoder could not parse
}

// Run streams records from r through the engine in order, then writes
// the account summary to w. Malformed lines and rejected records are
// logged, counted and skipped; only a failure of the input source itself
// aborts the run.
func Run(eng *engine.Engine, r io.Reader, w io.Writer) (Result, error) {
	dec := decode.New(r)
	var res Result

	for {
		rec, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var lineErr *decode.LineError
		if errors.As(err, &lineErr) {
			log.Printf("batch: skipping malformed %v", lineErr)
			res.Malformed++
			continue
		}
		if err != nil {
			return res, err
		}

		if err := eng.Apply(rec); err != nil {
			log.Printf("batch: rejected %v", err)
			res.Rejected++
			continue
		}
		res.Applied++
	}

	return res, report.Write(w, eng.Snapshot())
}

// RunFile is Run over a file on disk.
func RunFile(eng *engine.Engine, path string, w io.Writer) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return Run(eng, f, w)
}
