package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bozkayasalihx/roinstxs/internal/engine"
)

func TestRunProducesSortedSummary(t *testing.T) {
	in := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 2, 1, 2.0",
		"deposit, 1, 2, 10.0",
		"deposit, 1, 3, 5.0",
		"dispute, 1, 2",
		"withdrawal, 2, 4, 1.5",
		"",
		"not a record at all",
		"withdrawal, 3, 5, 50.0", // unknown account, rejected
		"chargeback, 1, 2",
	}, "\n")

	eng := engine.New()
	var out bytes.Buffer
	res, err := Run(eng, strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Applied != 6 {
		t.Errorf("applied = %d, want 6", res.Applied)
	}
	if res.Rejected != 1 {
		t.Errorf("rejected = %d, want 1", res.Rejected)
	}
	if res.Malformed != 1 {
		t.Errorf("malformed = %d, want 1", res.Malformed)
	}

	want := "client,available,held,total,locked\n" +
		"1,5.0000,0.0000,5.0000,true\n" +
		"2,0.5000,0.0000,0.5000,false\n"
	if got := out.String(); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestRunFileMissingInput(t *testing.T) {
	eng := engine.New()
	var out bytes.Buffer
	if _, err := RunFile(eng, "testdata/does-not-exist.csv", &out); err == nil {
		t.Fatal("want error for missing input file")
	}
	if out.Len() != 0 {
		t.Errorf("summary written despite failed run: %q", out.String())
	}
}
