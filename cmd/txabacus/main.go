//
// Copyright (C) 2015-2023 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/TxAbacus/lib/transcript"
)

var version = "DEV"

func main() {
	// Arguments: General
	var pathReport string
	var nWorker, verboseLevel int
	var verbose, printVersion bool
	flag.StringVar(&pathReport, "path_report", "", "Write report to path (stdout with -)")
	flag.IntVar(&nWorker, "num_worker", 1, "Number of worker(s)")
	flag.IntVar(&verboseLevel, "verbose_level", 0, "Verbose level")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Input
	var pathTranscripts, pathQueries, pathGenomeQueries, pathRecords string
	flag.StringVar(&pathTranscripts, "path_transcripts", "", "Path to transcript file (tab-separated: name, chromosome, genomic start, CIGAR)")
	flag.StringVar(&pathQueries, "path_queries", "", "Path to query file (tab-separated: transcript name, transcript coordinate)")
	flag.StringVar(&pathGenomeQueries, "path_genome_queries", "", "Path to genomic query file (tab-separated: chromosome, genomic position)")
	flag.StringVar(&pathRecords, "path_records", "", "Path to standalone records (tab-separated: chromosome, genomic start, CIGAR, transcript coordinate)")
	// Arguments: Output
	var pathOutput, outputFormat string
	flag.StringVar(&pathOutput, "path_output", "-", "Path to output (stdout with -)")
	flag.StringVar(&outputFormat, "output_format", "tsv", "Output format: 'tsv', 'tsv+lz4' or 'tsv+lz4hc'")
	// Arguments: Parse
	flag.Parse()

	// Version
	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Verbose
	if verbose && verboseLevel == 0 {
		verboseLevel = 1
	}

	// Time start
	var timeStart time.Time
	if verboseLevel > 0 {
		timeStart = time.Now()
	}

	// Check arguments
	if pathRecords == "" && pathTranscripts == "" {
		log.Fatal("No input: set path_records or path_transcripts")
	}
	if pathRecords != "" && (pathTranscripts != "" || pathQueries != "" || pathGenomeQueries != "") {
		log.Fatal("path_records is a standalone mode")
	}
	if pathTranscripts != "" && pathQueries == "" && pathGenomeQueries == "" {
		log.Fatal("No query input: set path_queries or path_genome_queries")
	}
	if pathQueries != "" && pathGenomeQueries != "" {
		log.Fatal("Set either path_queries or path_genome_queries, not both")
	}
	for _, p := range []string{pathTranscripts, pathQueries, pathGenomeQueries, pathRecords} {
		if p != "" {
			if _, err := os.Stat(p); os.IsNotExist(err) {
				log.Fatalln(p, "not found")
			}
		}
	}
	if nWorker < 1 {
		nWorker = 1
	}

	// Select input and resolver
	var err error
	var pathIn string
	var resolve ResolveFunc
	var queriedNames set.Interface
	var nTranscript int
	if pathRecords != "" {
		pathIn = pathRecords
		resolve = ResolveRecords()
	} else {
		var transcripts []transcript.Transcript
		transcripts, err = transcript.OpenTAB(pathTranscripts)
		if err != nil {
			log.Fatal(err)
		}
		nTranscript = len(transcripts)
		if verboseLevel > 0 {
			timeNow := time.Now()
			fmt.Printf("%.1fmin - Loaded %d transcript(s) from %s\n", timeNow.Sub(timeStart).Minutes(), nTranscript, pathTranscripts)
		}
		if pathQueries != "" {
			pathIn = pathQueries
			queriedNames = set.New(set.ThreadSafe)
			resolve = ResolveTx(transcript.ByName(transcripts), queriedNames)
		} else {
			pathIn = pathGenomeQueries
			trees, err := transcript.BuildTxTrees(transcripts)
			if err != nil {
				log.Fatal(err)
			}
			resolve = ResolveGenome(trees)
		}
	}

	// Map queries
	out, err := OpenOutput(pathOutput, outputFormat)
	if err != nil {
		log.Fatal(err)
	}
	counts, err := MapQueries(pathIn, out, resolve, nWorker, timeStart, verboseLevel)
	if err != nil {
		log.Fatal(err)
	}
	if err = out.Close(); err != nil {
		log.Fatal(err)
	}

	// Report
	if pathReport != "" {
		if err = WriteReport(pathReport, counts, nTranscript, queriedNames); err != nil {
			log.Fatal(err)
		}
	}

	// Verbose
	if verboseLevel > 0 {
		timeEnd := time.Now()
		fmt.Printf("%.1fmin - Done %d quer(ies).\n", timeEnd.Sub(timeStart).Minutes(), counts.Total)
	}
}
