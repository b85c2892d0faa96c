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

	"github.com/biogo/store/interval"
)

// TxInterval is the genomic span of a transcript as an interval tree
// entry.
type TxInterval struct {
	Start, End int
	UID        uintptr
	Tx         *Transcript
}

func (i TxInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.End > b.Start && i.Start < b.End
}

func (i TxInterval) ID() uintptr {
	return i.UID
}

func (i TxInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

func (i TxInterval) String() string {
	if i.Tx == nil {
		return fmt.Sprintf("[%d,%d)#%d", i.Start, i.End, i.UID)
	}
	return fmt.Sprintf("[%d,%d)#%d-%s", i.Start, i.End, i.UID, i.Tx.Name)
}
