//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pierrec/lz4"

	qt "github.com/frankban/quicktest"

	"git.sr.ht/~vejnar/TxAbacus/lib/transcript"

	"gopkg.in/fatih/set.v0"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runMap(t *testing.T, input string, resolve ResolveFunc, nWorker int) ([]string, Counts) {
	t.Helper()
	pathIn := writeFile(t, "input.tsv", input)
	pathOut := filepath.Join(t.TempDir(), "output.tsv")
	out, err := OpenOutput(pathOut, "tsv")
	if err != nil {
		t.Fatal(err)
	}
	counts, err := MapQueries(pathIn, out, resolve, nWorker, time.Time{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(pathOut)
	if err != nil {
		t.Fatal(err)
	}
	var rows []string
	if len(raw) > 0 {
		rows = strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	}
	return rows, counts
}

func TestMapQueriesRecords(t *testing.T) {
	c := qt.New(t)

	input := "CHR1\t100\t10M\t5\n" +
		"CHR1\t100\t10M5I10M\t12\n" +
		"CHR1\t100\t10M5D10M\t12\n" +
		"CHR2\t100\t5M\t5\n" +
		"CHR3\t100\t10M\n" +
		"CHR4\t100\t\t5\n"
	rows, counts := runMap(t, input, ResolveRecords(), 1)
	c.Assert(rows, qt.DeepEquals, []string{
		"CHR1\t105",
		"CHR1\tna",
		"CHR1\t117",
		"CHR2\t-1",
	})
	c.Assert(counts.Total, qt.Equals, uint64(6))
	c.Assert(counts.Mapped, qt.Equals, uint64(2))
	c.Assert(counts.Insertion, qt.Equals, uint64(1))
	c.Assert(counts.OutOfRange, qt.Equals, uint64(1))
	c.Assert(counts.Invalid, qt.Equals, uint64(2))
}

func TestMapQueriesOrder(t *testing.T) {
	c := qt.New(t)

	// Enough records to span many batches; workers must not reorder rows.
	var in strings.Builder
	var want []string
	for i := 0; i < 4*batchLength+17; i++ {
		fmt.Fprintf(&in, "CHR1\t%d\t10M\t5\n", i)
		want = append(want, fmt.Sprintf("CHR1\t%d", i+5))
	}
	rows, counts := runMap(t, in.String(), ResolveRecords(), 4)
	c.Assert(counts.Mapped, qt.Equals, uint64(len(want)))
	c.Assert(rows, qt.DeepEquals, want)
}

func TestMapQueriesTx(t *testing.T) {
	c := qt.New(t)

	pathTx := writeFile(t, "transcripts.tsv", "TR1\tCHR1\t100\t10M5D10M\nTR2\tCHR2\t0\t4I6M\n")
	transcripts, err := transcript.OpenTAB(pathTx)
	c.Assert(err, qt.IsNil)

	names := set.New(set.ThreadSafe)
	input := "TR1\t12\n" +
		"TR2\t2\n" +
		"TR2\t4\n" +
		"TR9\t1\n" +
		"TR1\t20\n"
	rows, counts := runMap(t, input, ResolveTx(transcript.ByName(transcripts), names), 1)
	c.Assert(rows, qt.DeepEquals, []string{
		"TR1\t12\tCHR1\t117",
		"TR2\t2\tCHR2\tna",
		"TR2\t4\tCHR2\t0",
		"TR1\t20\tCHR1\t-1",
	})
	c.Assert(counts.Total, qt.Equals, uint64(5))
	c.Assert(counts.Invalid, qt.Equals, uint64(1))
	c.Assert(names.Size(), qt.Equals, 2)
}

func TestMapQueriesGenome(t *testing.T) {
	c := qt.New(t)

	pathTx := writeFile(t, "transcripts.tsv", "TR1\tCHR1\t100\t10M5D10M\nTR2\tCHR1\t110\t20M\n")
	transcripts, err := transcript.OpenTAB(pathTx)
	c.Assert(err, qt.IsNil)
	trees, err := transcript.BuildTxTrees(transcripts)
	c.Assert(err, qt.IsNil)

	input := "CHR1\t105\n" +
		"CHR1\t112\n" +
		"CHR1\t200\n" +
		"CHR2\t105\n"
	rows, counts := runMap(t, input, ResolveGenome(trees), 1)
	c.Assert(rows, qt.DeepEquals, []string{
		"CHR1\t105\tTR1\t5",
		"CHR1\t112\tTR1\tna",
		"CHR1\t112\tTR2\t2",
		"CHR1\t200\t.\t-1",
		"CHR2\t105\t.\t-1",
	})
	c.Assert(counts.Total, qt.Equals, uint64(4))
	c.Assert(counts.Mapped, qt.Equals, uint64(2))
	c.Assert(counts.OutOfRange, qt.Equals, uint64(2))
}

func TestOutputLZ4(t *testing.T) {
	c := qt.New(t)

	pathOut := filepath.Join(t.TempDir(), "output.tsv.lz4")
	out, err := OpenOutput(pathOut, "tsv+lz4")
	c.Assert(err, qt.IsNil)
	c.Assert(out.WriteRow("CHR1\t105"), qt.IsNil)
	c.Assert(out.WriteRow("CHR1\tna"), qt.IsNil)
	c.Assert(out.Close(), qt.IsNil)

	f, err := os.Open(pathOut)
	c.Assert(err, qt.IsNil)
	defer f.Close()
	raw, err := io.ReadAll(lz4.NewReader(f))
	c.Assert(err, qt.IsNil)
	c.Assert(string(raw), qt.Equals, "CHR1\t105\nCHR1\tna\n")
}
