//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package txcoord

import (
	"github.com/biogo/hts/sam"
)

// Status reports how a coordinate translation resolved.
type Status int

const (
	// StatusMapped: the coordinate has a base in the target system.
	StatusMapped Status = iota
	// StatusInsertion: the transcript coordinate falls inside an insertion
	// and has no genomic counterpart.
	StatusInsertion
	// StatusDeletion: the genomic coordinate falls inside a deletion and
	// has no transcript counterpart.
	StatusDeletion
	// StatusOutOfRange: the coordinate is beyond the span covered by the
	// alignment.
	StatusOutOfRange
)

func (s Status) String() string {
	switch s {
	case StatusMapped:
		return "mapped"
	case StatusInsertion:
		return "insertion"
	case StatusDeletion:
		return "deletion"
	case StatusOutOfRange:
		return "out-of-range"
	}
	return "unknown"
}

// ToGenome translates a 0-based transcript coordinate to its 0-based
// genomic coordinate, for a transcript anchored at genomeStart and aligned
// by cigar. The walk stops at the first operation containing coord: the
// cost is bounded by the number of operations up to the resolving one, not
// by the full CIGAR length.
func ToGenome(genomeStart int, cigar sam.Cigar, coord int) (int, Status) {
	gpos := genomeStart
	toff := 0
	for _, co := range cigar {
		con := co.Type().Consumes()
		lt := co.Len() * con.Query
		// Operations consuming transcript bases cover [toff, toff+lt).
		if lt > 0 && coord < toff+lt {
			if con.Reference == 0 {
				return 0, StatusInsertion
			}
			return gpos + (coord - toff), StatusMapped
		}
		toff += lt
		gpos += co.Len() * con.Reference
	}
	return 0, StatusOutOfRange
}

// ToTranscript translates a 0-based genomic coordinate to its 0-based
// transcript coordinate, the inverse walk of ToGenome.
func ToTranscript(genomeStart int, cigar sam.Cigar, pos int) (int, Status) {
	if pos < genomeStart {
		return 0, StatusOutOfRange
	}
	gpos := genomeStart
	toff := 0
	for _, co := range cigar {
		con := co.Type().Consumes()
		lr := co.Len() * con.Reference
		if lr > 0 && pos < gpos+lr {
			if con.Query == 0 {
				return 0, StatusDeletion
			}
			return toff + (pos - gpos), StatusMapped
		}
		gpos += lr
		toff += co.Len() * con.Query
	}
	return 0, StatusOutOfRange
}
