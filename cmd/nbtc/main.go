// nbtc converts NBT documents between the binary wire format and the
// text document formats (JSON/JSONC, YAML, CBOR).
//
// Binary input may be gzip or zlib compressed; the wrapper is detected
// from the leading bytes unless --compression forces one. Formats are
// taken from --from/--to, falling back to the file extensions of
// --in/--out, and finally to binary in and JSON out.
//
//	nbtc --in level.dat --out level.yaml
//	nbtc --in level.json --out level.dat --compression gzip
//	nbtc --in level.dat --info
//	nbtc --in level.dat --search Player
//	nbtc --in level.json --validate
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/dadrian/nbt"
	"github.com/dadrian/nbt/textrep"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	in, out     string
	from, to    string
	compression string
	search      string
	info        bool
	validate    bool
	hex         bool
	debug       bool
}

// format is either the binary wire format or one of the text formats.
type format struct {
	binary bool
	text   textrep.Format
}

func (f format) String() string {
	if f.binary {
		return "nbt"
	}
	return f.text.String()
}

func parseFormat(s string) (format, error) {
	if strings.EqualFold(s, "nbt") {
		return format{binary: true}, nil
	}
	t, err := textrep.ParseFormat(s)
	if err != nil {
		return format{}, err
	}
	return format{text: t}, nil
}

// resolveFormat prefers the explicit flag, then the path's extension.
func resolveFormat(flag, path string, fallback format) (format, error) {
	if flag != "" {
		return parseFormat(flag)
	}
	if path != "-" {
		if t, ok := textrep.FormatFromExt(path); ok {
			return format{text: t}, nil
		}
	}
	return fallback, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if debug {
		return slog.New(devslog.NewHandler(w, &devslog.Options{HandlerOptions: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config
	flagSet := pflag.NewFlagSet("nbtc", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&cfg.in, "in", "-", "input file (or - for stdin)")
	flagSet.StringVar(&cfg.out, "out", "-", "output file (or - for stdout)")
	flagSet.StringVar(&cfg.from, "from", "", "input format: nbt, json, yaml or cbor (default: by extension, else nbt)")
	flagSet.StringVar(&cfg.to, "to", "", "output format: nbt, json, yaml or cbor (default: by extension, else json for binary input and nbt for text input)")
	flagSet.StringVar(&cfg.compression, "compression", string(compressAuto), "binary compression: auto, none, gzip or zlib")
	flagSet.BoolVar(&cfg.info, "info", false, "print a summary of the root compound instead of converting")
	flagSet.StringVar(&cfg.search, "search", "", "print every nested compound with this name")
	flagSet.BoolVar(&cfg.validate, "validate", false, "decode and re-encode without writing output")
	flagSet.BoolVar(&cfg.hex, "hex", false, "write binary output hex-encoded")
	flagSet.BoolVar(&cfg.debug, "debug", false, "verbose logging to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	logger := newLogger(stderr, cfg.debug)

	comp, err := parseCompression(cfg.compression)
	if err != nil {
		return err
	}
	from, err := resolveFormat(cfg.from, cfg.in, format{binary: true})
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	defaultTo := format{binary: true}
	if from.binary {
		defaultTo = format{text: textrep.FormatJSON}
	}
	to, err := resolveFormat(cfg.to, cfg.out, defaultTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	if cfg.hex && !to.binary {
		return fmt.Errorf("--hex needs nbt output, not %v", to)
	}

	input, err := readInput(cfg.in, stdin)
	if err != nil {
		return err
	}
	root, inComp, err := decode(input, from, comp)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.in, err)
	}
	logger.Debug("decoded input",
		slog.String("path", cfg.in),
		slog.String("format", from.String()),
		slog.String("compression", string(inComp)),
		slog.Int("bytes", len(input)),
		slog.Int("entries", root.Len()))

	var out []byte
	switch {
	case cfg.info:
		out, err = info(root)
	case cfg.search != "":
		out, err = search(root, cfg.search, to, logger)
	default:
		outComp := comp
		if comp == compressAuto {
			outComp = inComp
		}
		out, err = encode(root, to, outComp)
		logger.Debug("encoded output",
			slog.String("format", to.String()),
			slog.String("compression", string(outComp)),
			slog.Int("bytes", len(out)))
		if err == nil && cfg.hex {
			out = []byte(hex.EncodeToString(out) + "\n")
		}
	}
	if err != nil {
		return err
	}
	if cfg.validate {
		return nil
	}
	return writeOutput(cfg.out, stdout, out)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

func writeOutput(path string, stdout io.Writer, b []byte) error {
	if path == "-" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// decode returns the root compound and the compression found on binary input.
func decode(b []byte, f format, c compression) (*nbt.Compound, compression, error) {
	if !f.binary {
		root, err := textrep.Unmarshal(b, textrep.WithFormat(f.text))
		return root, compressNone, err
	}
	raw, found, err := decompress(b, c)
	if err != nil {
		return nil, found, err
	}
	root, err := nbt.Unmarshal(raw)
	return root, found, err
}

func encode(root *nbt.Compound, f format, c compression) ([]byte, error) {
	if !f.binary {
		return textrep.Marshal(root, textrep.WithFormat(f.text))
	}
	b, err := nbt.Marshal(root)
	if err != nil {
		return nil, err
	}
	return compress(b, c)
}

// info summarizes root. The size and digest are of the uncompressed
// binary encoding, so they do not depend on the input format.
func info(root *nbt.Compound) ([]byte, error) {
	b, err := nbt.Marshal(root)
	if err != nil {
		return nil, err
	}
	sum := blake3.Sum256(b)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Root: %q\n", root.Name)
	fmt.Fprintf(&sb, "Entries: %d\n", root.Len())
	for _, k := range root.Keys() {
		fmt.Fprintf(&sb, "  %s %q\n", root.Get(k).MustGet().Kind(), k)
	}
	fmt.Fprintf(&sb, "Size: %d\n", len(b))
	fmt.Fprintf(&sb, "BLAKE3: %s\n", hex.EncodeToString(sum[:]))
	return []byte(sb.String()), nil
}

// search renders every compound named name. Binary output has no way
// to hold several roots, so matches are printed as JSON then.
func search(root *nbt.Compound, name string, f format, logger *slog.Logger) ([]byte, error) {
	if f.binary {
		f = format{text: textrep.FormatJSON}
	}
	matches := root.Search(name, false)
	logger.Debug("search", slog.String("name", name), slog.Int("matches", len(matches)))

	var out []byte
	for _, m := range matches {
		doc, err := textrep.Marshal(m, textrep.WithFormat(f.text))
		if err != nil {
			return nil, err
		}
		if f.text == textrep.FormatYAML && len(out) > 0 {
			out = append(out, "---\n"...)
		}
		out = append(out, doc...)
	}
	return out, nil
}
