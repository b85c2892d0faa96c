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
	"os"
	"strings"

	"github.com/pierrec/lz4"
)

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

// Output writes result rows to pathOutput ("-" for stdout), optionally
// compressed when the format carries a "+lz4" or "+lz4hc" suffix.
type Output struct {
	f      *os.File
	writer GenericWriter
	buf    *bufio.Writer
}

func OpenOutput(pathOutput, format string) (*Output, error) {
	o := &Output{}
	if pathOutput == "-" {
		o.f = os.Stdout
	} else {
		f, err := os.Create(pathOutput)
		if err != nil {
			return nil, err
		}
		o.f = f
	}
	var outputZip string
	if strings.Contains(format, "+") {
		doubleFormat := strings.Split(format, "+")
		outputZip = doubleFormat[1]
	}
	switch outputZip {
	case "lz4":
		o.writer = lz4.NewWriter(o.f)
	case "lz4hc":
		lzWriter := lz4.NewWriter(o.f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		o.writer = lzWriter
	default:
		o.writer = o.f
	}
	o.buf = bufio.NewWriter(o.writer)
	return o, nil
}

func (o *Output) WriteRow(row string) error {
	if _, err := o.buf.WriteString(row); err != nil {
		return err
	}
	return o.buf.WriteByte('\n')
}

func (o *Output) Close() error {
	if err := o.buf.Flush(); err != nil {
		return err
	}
	if w, ok := o.writer.(*lz4.Writer); ok {
		if err := w.Close(); err != nil {
			return err
		}
	}
	if o.f != os.Stdout {
		return o.f.Close()
	}
	return nil
}
