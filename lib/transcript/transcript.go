//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/sam"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/TxAbacus/lib/cigar"
)

var (
	ErrFieldCount = errors.New("unexpected field count")
	ErrEmptyField = errors.New("empty field")
	ErrBadInteger = errors.New("invalid integer field")
	ErrDuplicate  = errors.New("duplicate transcript")

	ErrUnknownTranscript = errors.New("unknown transcript")
)

// Transcript is a named transcript anchored on the genome: its alignment
// starts at the 0-based Start on Chrom and follows Cigar 5'->3'.
type Transcript struct {
	Name  string
	Chrom string
	Start int
	Cigar sam.Cigar
}

// Length returns the transcript length.
func (tr Transcript) Length() int {
	return cigar.TranscriptLength(tr.Cigar)
}

// GenomeEnd returns the 0-based exclusive end of the genomic span.
func (tr Transcript) GenomeEnd() int {
	return tr.Start + cigar.GenomeLength(tr.Cigar)
}

// OpenInput opens path for reading, transparently decompressing gzipped
// input. The caller closes f.
func OpenInput(path string) (f *os.File, r io.Reader, err error) {
	f, err = os.Open(path)
	if err != nil {
		return
	}
	r = f
	if strings.HasSuffix(path, ".gz") {
		r, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return
		}
	}
	return
}

// OpenTAB parses a four column tabulated file with name, chromosome,
// genomic start and CIGAR of each transcript. Any malformed line or
// duplicated transcript name is an error: the transcript table is trusted
// input, unlike query streams which fail per record.
func OpenTAB(tpath string) (transcripts []Transcript, err error) {
	f, r, err := OpenInput(tpath)
	if err != nil {
		return
	}
	defer f.Close()

	names := set.New(set.NonThreadSafe)
	var nLine int
	tscanner := bufio.NewScanner(r)
	for tscanner.Scan() {
		nLine++
		line := tscanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return transcripts, fmt.Errorf("%s:%d: %w: expected 4 fields, got %d", tpath, nLine, ErrFieldCount, len(fields))
		}
		tr := Transcript{Name: fields[0], Chrom: fields[1]}
		if tr.Name == "" || tr.Chrom == "" {
			return transcripts, fmt.Errorf("%s:%d: %w", tpath, nLine, ErrEmptyField)
		}
		if names.Has(tr.Name) {
			return transcripts, fmt.Errorf("%s:%d: %w: %s", tpath, nLine, ErrDuplicate, tr.Name)
		}
		names.Add(tr.Name)
		tr.Start, err = parseCoord(fields[2])
		if err != nil {
			return transcripts, fmt.Errorf("%s:%d: %w", tpath, nLine, err)
		}
		tr.Cigar, err = cigar.Parse(fields[3])
		if err != nil {
			return transcripts, fmt.Errorf("%s:%d: %w", tpath, nLine, err)
		}
		transcripts = append(transcripts, tr)
	}
	if err = tscanner.Err(); err != nil {
		return
	}
	return
}

// ByName indexes transcripts by name.
func ByName(transcripts []Transcript) map[string]*Transcript {
	m := make(map[string]*Transcript, len(transcripts))
	for i := range transcripts {
		m[transcripts[i].Name] = &transcripts[i]
	}
	return m
}
