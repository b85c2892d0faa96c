//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/biogo/store/interval"

	"golang.org/x/sync/errgroup"

	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/TxAbacus/lib/transcript"
	"git.sr.ht/~vejnar/TxAbacus/lib/txcoord"
)

const batchLength = 256

// Line is one input line with its 1-based line number.
type Line struct {
	N    int
	Text string
}

// Batch groups consecutive input lines. Ordinal preserves input order
// through the worker pool.
type Batch struct {
	Ordinal int
	Lines   []Line
}

// Packet carries the resolved rows of one batch back to the writer.
type Packet struct {
	Ordinal int
	Rows    []string
	Counts  Counts
}

// Counts aggregates per-query outcomes.
type Counts struct {
	Total      uint64
	Mapped     uint64
	Insertion  uint64
	Deletion   uint64
	OutOfRange uint64
	Invalid    uint64
}

func (c *Counts) Tally(status txcoord.Status) {
	c.Total++
	switch status {
	case txcoord.StatusMapped:
		c.Mapped++
	case txcoord.StatusInsertion:
		c.Insertion++
	case txcoord.StatusDeletion:
		c.Deletion++
	case txcoord.StatusOutOfRange:
		c.OutOfRange++
	}
}

func (c *Counts) Merge(o Counts) {
	c.Total += o.Total
	c.Mapped += o.Mapped
	c.Insertion += o.Insertion
	c.Deletion += o.Deletion
	c.OutOfRange += o.OutOfRange
	c.Invalid += o.Invalid
}

// ResolveFunc translates one input line to output rows. A returned error
// marks the record invalid: the line is skipped and reported, the batch
// continues.
type ResolveFunc func(line string) ([]string, txcoord.Status, error)

// formatPos renders a genomic or transcript coordinate with the markers
// for unresolvable queries: "na" for a coordinate falling inside an
// insertion or deletion, "-1" for a coordinate beyond the covered span.
func formatPos(pos int, status txcoord.Status) string {
	switch status {
	case txcoord.StatusMapped:
		return strconv.Itoa(pos)
	case txcoord.StatusInsertion, txcoord.StatusDeletion:
		return "na"
	}
	return "-1"
}

// ResolveRecords resolves standalone records: chromosome, genomic start,
// CIGAR and transcript coordinate per line.
func ResolveRecords() ResolveFunc {
	return func(line string) ([]string, txcoord.Status, error) {
		rec, err := transcript.ParseRecord(line)
		if err != nil {
			return nil, 0, err
		}
		pos, status := txcoord.ToGenome(rec.Start, rec.Cigar, rec.Coord)
		return []string{rec.Chrom + "\t" + formatPos(pos, status)}, status, nil
	}
}

// ResolveTx resolves transcript queries (name, coordinate) against loaded
// transcripts. Queried names are collected into names for the report.
func ResolveTx(txs map[string]*transcript.Transcript, names set.Interface) ResolveFunc {
	return func(line string) ([]string, txcoord.Status, error) {
		name, coord, err := transcript.ParseQuery(line)
		if err != nil {
			return nil, 0, err
		}
		tr, ok := txs[name]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", transcript.ErrUnknownTranscript, name)
		}
		names.Add(name)
		pos, status := txcoord.ToGenome(tr.Start, tr.Cigar, coord)
		row := name + "\t" + strconv.Itoa(coord) + "\t" + tr.Chrom + "\t" + formatPos(pos, status)
		return []string{row}, status, nil
	}
}

// ResolveGenome resolves genomic queries (chromosome, position) to
// transcript coordinates, one output row per covering transcript. A
// position covered by no transcript yields a single unmatched row.
func ResolveGenome(trees map[string]*interval.IntTree) ResolveFunc {
	return func(line string) ([]string, txcoord.Status, error) {
		chrom, pos, err := transcript.ParseGenomeQuery(line)
		if err != nil {
			return nil, 0, err
		}
		covering := transcript.Covering(trees, chrom, pos)
		if len(covering) == 0 {
			return []string{chrom + "\t" + strconv.Itoa(pos) + "\t.\t-1"}, txcoord.StatusOutOfRange, nil
		}
		rows := make([]string, 0, len(covering))
		best := txcoord.StatusOutOfRange
		for _, tr := range covering {
			coord, status := txcoord.ToTranscript(tr.Start, tr.Cigar, pos)
			rows = append(rows, chrom+"\t"+strconv.Itoa(pos)+"\t"+tr.Name+"\t"+formatPos(coord, status))
			// Query outcome is the best over covering transcripts.
			if status < best {
				best = status
			}
		}
		return rows, best, nil
	}
}

// MapQueries streams pathIn through nWorker resolving workers and writes
// rows to out in input order.
func MapQueries(pathIn string, out *Output, resolve ResolveFunc, nWorker int, timeStart time.Time, verboseLevel int) (counts Counts, err error) {
	// Init context
	ctx := context.Background()
	// Start sync errgroup
	g, gctx := errgroup.WithContext(ctx)

	chBatch := make(chan Batch, nWorker*10)
	chFinal := make(chan Packet, nWorker*10)

	// Reader
	g.Go(func() error {
		defer close(chBatch)
		f, r, err := transcript.OpenInput(pathIn)
		if err != nil {
			return err
		}
		defer f.Close()
		if verboseLevel > 0 {
			timeNow := time.Now()
			fmt.Printf("%.1fmin - Opening %s\n", timeNow.Sub(timeStart).Minutes(), pathIn)
		}
		var ordinal, nLine int
		var batch Batch
		qscanner := bufio.NewScanner(r)
		for qscanner.Scan() {
			nLine++
			line := qscanner.Text()
			if line == "" {
				continue
			}
			batch.Lines = append(batch.Lines, Line{N: nLine, Text: line})
			if len(batch.Lines) == batchLength {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case chBatch <- batch:
				}
				ordinal++
				batch = Batch{Ordinal: ordinal}
			}
		}
		if err := qscanner.Err(); err != nil {
			return err
		}
		// Send last batch
		if len(batch.Lines) > 0 {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chBatch <- batch:
			}
		}
		return nil
	})

	// Spawn worker goroutine(s)
	g.Go(func() error {
		defer close(chFinal)
		wg, wgctx := errgroup.WithContext(gctx)
		for i := 0; i < nWorker; i++ {
			wg.Go(func() error {
				for batch := range chBatch {
					p := Packet{Ordinal: batch.Ordinal}
					for _, line := range batch.Lines {
						rows, status, err := resolve(line.Text)
						if err != nil {
							log.Printf("Warning: %s:%d: %v", pathIn, line.N, err)
							p.Counts.Total++
							p.Counts.Invalid++
							continue
						}
						p.Rows = append(p.Rows, rows...)
						p.Counts.Tally(status)
					}
					select {
					case <-wgctx.Done():
						return wgctx.Err()
					case chFinal <- p:
					}
				}
				return nil
			})
		}
		return wg.Wait()
	})

	// Write rows in input order
	pending := make(map[int]Packet)
	next := 0
	for p := range chFinal {
		pending[p.Ordinal] = p
		for {
			q, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			for _, row := range q.Rows {
				if err := out.WriteRow(row); err != nil {
					return counts, err
				}
			}
			counts.Merge(q.Counts)
			next++
		}
	}

	if err = g.Wait(); err != nil {
		return counts, err
	}
	return counts, nil
}
