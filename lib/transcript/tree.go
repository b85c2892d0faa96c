//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package transcript

import (
	"sort"

	"github.com/biogo/store/interval"
)

// BuildTxTrees builds one interval tree per chromosome from the genomic
// span of each transcript.
func BuildTxTrees(transcripts []Transcript) (trees map[string]*interval.IntTree, err error) {
	trees = make(map[string]*interval.IntTree)
	for it := range transcripts {
		tr := &transcripts[it]
		// New tree for unseen chromosome
		if _, ok := trees[tr.Chrom]; !ok {
			trees[tr.Chrom] = &interval.IntTree{}
		}
		iv := TxInterval{Start: tr.Start, End: tr.GenomeEnd(), UID: uintptr(it), Tx: tr}
		if err = trees[tr.Chrom].Insert(iv, false); err != nil {
			return
		}
	}
	for k := range trees {
		trees[k].AdjustRanges()
	}
	return
}

// Covering returns the transcripts whose genomic span contains pos on
// chrom, in transcript name order.
func Covering(trees map[string]*interval.IntTree, chrom string, pos int) (txs []*Transcript) {
	tree, ok := trees[chrom]
	if !ok {
		return
	}
	for _, iv := range tree.Get(TxInterval{Start: pos, End: pos + 1}) {
		txs = append(txs, iv.(TxInterval).Tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].Name < txs[j].Name })
	return
}
