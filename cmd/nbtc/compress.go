package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// compression names how a binary document is wrapped on disk.
type compression string

const (
	compressAuto compression = "auto"
	compressNone compression = "none"
	compressGzip compression = "gzip"
	compressZlib compression = "zlib"
)

func parseCompression(s string) (compression, error) {
	switch c := compression(s); c {
	case compressAuto, compressNone, compressGzip, compressZlib:
		return c, nil
	}
	return "", fmt.Errorf("unknown compression %q (want auto, none, gzip or zlib)", s)
}

// sniff recognizes the gzip magic and a valid zlib header.
func sniff(b []byte) compression {
	if len(b) < 2 {
		return compressNone
	}
	if b[0] == 0x1f && b[1] == 0x8b {
		return compressGzip
	}
	if b[0]&0x0f == 8 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0 {
		return compressZlib
	}
	return compressNone
}

func decompress(b []byte, c compression) ([]byte, compression, error) {
	if c == compressAuto {
		c = sniff(b)
	}
	var (
		r   io.ReadCloser
		err error
	)
	switch c {
	case compressNone:
		return b, c, nil
	case compressGzip:
		r, err = gzip.NewReader(bytes.NewReader(b))
	case compressZlib:
		r, err = zlib.NewReader(bytes.NewReader(b))
	}
	if err != nil {
		return nil, c, fmt.Errorf("%s: %w", c, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, c, fmt.Errorf("%s: %w", c, err)
	}
	return out, c, nil
}

func compress(b []byte, c compression) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   io.WriteCloser
	)
	switch c {
	case compressAuto, compressNone:
		return b, nil
	case compressGzip:
		w = gzip.NewWriter(&buf)
	case compressZlib:
		w = zlib.NewWriter(&buf)
	}
	if _, err := w.Write(b); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
