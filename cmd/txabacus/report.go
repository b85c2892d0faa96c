//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/fatih/set.v0"
)

func WriteReport(pathReport string, counts Counts, nTranscript int, queriedNames set.Interface) error {
	countReport := map[string]uint64{
		"queries_total":        counts.Total,
		"queries_mapped":       counts.Mapped,
		"queries_insertion":    counts.Insertion,
		"queries_deletion":     counts.Deletion,
		"queries_out_of_range": counts.OutOfRange,
		"queries_invalid":      counts.Invalid,
	}
	if nTranscript > 0 {
		countReport["transcripts_total"] = uint64(nTranscript)
	}
	if queriedNames != nil {
		countReport["transcripts_queried"] = uint64(queriedNames.Size())
	}
	report, _ := json.MarshalIndent(countReport, "", "  ")
	if pathReport != "-" {
		f, err := os.Create(pathReport)
		if err != nil {
			return err
		}
		f.Write(report)
		f.Close()
	} else {
		fmt.Println(string(report))
	}
	return nil
}
