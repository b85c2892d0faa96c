//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package transcript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/hts/sam"

	"git.sr.ht/~vejnar/TxAbacus/lib/cigar"
)

// Record is a standalone mapping query carrying its own alignment:
// chromosome, genomic start, CIGAR and the transcript coordinate to
// translate.
type Record struct {
	Chrom string
	Start int
	Cigar sam.Cigar
	Coord int
}

func parseCoord(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadInteger, raw)
	}
	return n, nil
}

// ParseRecord validates one tab-separated standalone record with fields
// chromosome, genomic start, CIGAR and transcript coordinate. Validation
// happens before any mapping: a malformed record never produces a partial
// coordinate.
func ParseRecord(line string) (rec Record, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 {
		return rec, fmt.Errorf("%w: expected 4 fields, got %d", ErrFieldCount, len(fields))
	}
	rec.Chrom = fields[0]
	if rec.Chrom == "" {
		return rec, fmt.Errorf("%w: chromosome", ErrEmptyField)
	}
	if rec.Start, err = parseCoord(fields[1]); err != nil {
		return rec, err
	}
	if rec.Cigar, err = cigar.Parse(fields[2]); err != nil {
		return rec, err
	}
	if rec.Coord, err = parseCoord(fields[3]); err != nil {
		return rec, err
	}
	return rec, nil
}

// ParseQuery validates one tab-separated query with fields transcript name
// and transcript coordinate.
func ParseQuery(line string) (name string, coord int, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return name, coord, fmt.Errorf("%w: expected 2 fields, got %d", ErrFieldCount, len(fields))
	}
	name = fields[0]
	if name == "" {
		return name, coord, fmt.Errorf("%w: transcript name", ErrEmptyField)
	}
	coord, err = parseCoord(fields[1])
	return
}

// ParseGenomeQuery validates one tab-separated query with fields
// chromosome and genomic position.
func ParseGenomeQuery(line string) (chrom string, pos int, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return chrom, pos, fmt.Errorf("%w: expected 2 fields, got %d", ErrFieldCount, len(fields))
	}
	chrom = fields[0]
	if chrom == "" {
		return chrom, pos, fmt.Errorf("%w: chromosome", ErrEmptyField)
	}
	pos, err = parseCoord(fields[1])
	return
}
