//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package cigar

import (
	"errors"
	"fmt"

	"github.com/biogo/hts/sam"
)

var (
	ErrEmpty  = errors.New("empty CIGAR")
	ErrSyntax = errors.New("malformed CIGAR")
	ErrOp     = errors.New("unsupported CIGAR operation")
)

// Parse scans a CIGAR string into operations. The grammar is one or more
// (digit-run, operation-letter) pairs with no remainder. Only M, I and D
// operations are accepted: transcripts are expected to be mapped 5'->3'
// without clipping or skips. Adjacent operations of the same type are kept
// as-is, not coalesced.
func Parse(raw string) (cigar sam.Cigar, err error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	i := 0
	for i < len(raw) {
		var length, nDigit int
		for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
			length = length*10 + int(raw[i]-'0')
			nDigit++
			i++
		}
		if nDigit == 0 {
			return nil, fmt.Errorf("%w: missing length at offset %d in %q", ErrSyntax, i, raw)
		}
		if length == 0 {
			return nil, fmt.Errorf("%w: zero-length operation in %q", ErrSyntax, raw)
		}
		if i == len(raw) {
			return nil, fmt.Errorf("%w: truncated operation at end of %q", ErrSyntax, raw)
		}
		var op sam.CigarOpType
		switch raw[i] {
		case 'M':
			op = sam.CigarMatch
		case 'I':
			op = sam.CigarInsertion
		case 'D':
			op = sam.CigarDeletion
		default:
			return nil, fmt.Errorf("%w: %q in %q", ErrOp, raw[i], raw)
		}
		cigar = append(cigar, sam.NewCigarOp(op, length))
		i++
	}
	return cigar, nil
}

// TranscriptLength returns the transcript length covered by the CIGAR,
// i.e. the sum of operations consuming query bases (M and I).
func TranscriptLength(cigar sam.Cigar) (length int) {
	for _, co := range cigar {
		length += co.Len() * co.Type().Consumes().Query
	}
	return
}

// GenomeLength returns the genomic span of the CIGAR, i.e. the sum of
// operations consuming reference bases (M and D).
func GenomeLength(cigar sam.Cigar) (length int) {
	for _, co := range cigar {
		length += co.Len() * co.Type().Consumes().Reference
	}
	return
}
