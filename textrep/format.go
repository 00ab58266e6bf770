package textrep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format selects the document syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a format name ("json", "jsonc", "yaml", "yml",
// "cbor") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "jsonc":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("unknown text format %q", s)
	}
}

// FormatFromExt picks a format from a file name's extension.
func FormatFromExt(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// codec reads and writes the node tree in one syntax.
type codec struct {
	encode func(w io.Writer, root *node, o *options) error
	decode func(data []byte, root *node) error
}

var codecs = map[Format]codec{
	FormatJSON: {encode: encodeJSON, decode: decodeJSON},
	FormatYAML: {encode: encodeYAML, decode: decodeYAML},
	FormatCBOR: {encode: encodeCBOR, decode: decodeCBOR},
}

func encodeJSON(w io.Writer, root *node, o *options) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if o.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", o.indent))
	}
	return enc.Encode(root)
}

func decodeJSON(data []byte, root *node) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(root); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("data after document")
	}
	return nil
}

func encodeYAML(w io.Writer, root *node, o *options) error {
	enc := yaml.NewEncoder(w)
	if o.indent > 0 {
		enc.SetIndent(o.indent)
	}
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func decodeYAML(data []byte, root *node) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(root); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty document")
		}
		return err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("more than one document")
	}
	return nil
}

// cborEnc uses Core Deterministic Encoding so equal trees give equal
// bytes; cborDec rejects fields the document model does not define.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("textrep: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("textrep: CBOR decoder initialization failed: " + err.Error())
	}
}

func encodeCBOR(w io.Writer, root *node, _ *options) error {
	return cborEnc.NewEncoder(w).Encode(root)
}

func decodeCBOR(data []byte, root *node) error {
	return cborDec.Unmarshal(data, root)
}
