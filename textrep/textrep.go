package textrep

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dadrian/nbt"
)

type options struct {
	format Format
	indent int
}

// Option configures ToText and FromText.
type Option func(*options)

// WithFormat selects the document syntax. The default is FormatJSON.
func WithFormat(f Format) Option { return func(o *options) { o.format = f } }

// WithIndent sets the indentation width used when writing JSON or YAML.
// Zero writes compact JSON. The default is 2.
func WithIndent(n int) Option { return func(o *options) { o.indent = n } }

func newOptions(opts []Option) (*options, error) {
	o := &options{format: FormatJSON, indent: 2}
	for _, opt := range opts {
		opt(o)
	}
	if _, ok := codecs[o.format]; !ok {
		return nil, fmt.Errorf("textrep: unsupported format %v", o.format)
	}
	return o, nil
}

// ToText writes c to w as a text document.
func ToText(c *nbt.Compound, w io.Writer, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	if c == nil {
		return &nbt.Error{Kind: nbt.ErrInvalidTree, Detail: "nil root compound"}
	}
	root, err := fromCompound(c, c.Name, "$")
	if err != nil {
		return err
	}
	if err := codecs[o.format].encode(w, root, o); err != nil {
		return &nbt.Error{Kind: nbt.ErrIO, Detail: "writing " + o.format.String() + " document", Err: err}
	}
	return nil
}

// FromText reads a text document from r and rebuilds the compound.
func FromText(r io.Reader, opts ...Option) (*nbt.Compound, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &nbt.Error{Kind: nbt.ErrIO, Detail: "reading document", Err: err}
	}
	var root node
	if err := codecs[o.format].decode(data, &root); err != nil {
		return nil, &nbt.Error{Kind: nbt.ErrTextSyntax, Detail: o.format.String(), Err: err}
	}
	k, err := kindOf(&root, "$")
	if err != nil {
		return nil, err
	}
	if k != nbt.KindCompound {
		return nil, syntaxErr("$", "root is %v, want Compound", k)
	}
	return toCompound(&root, "$")
}

// Marshal renders c as a text document.
func Marshal(c *nbt.Compound, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := ToText(c, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a text document.
func Unmarshal(data []byte, opts ...Option) (*nbt.Compound, error) {
	return FromText(bytes.NewReader(data), opts...)
}

func syntaxErr(path, format string, args ...any) error {
	return &nbt.Error{Kind: nbt.ErrTextSyntax, Detail: path + ": " + fmt.Sprintf(format, args...)}
}

func unrepresentable(path, format string, args ...any) error {
	return &nbt.Error{Kind: nbt.ErrUnrepresentable, Detail: path + ": " + fmt.Sprintf(format, args...)}
}

// Tree -> document.

func fromCompound(c *nbt.Compound, name, path string) (*node, error) {
	n := &node{Kind: nbt.KindCompound.String(), Name: name, Entries: make([]*node, 0, c.Len())}
	for _, k := range c.Keys() {
		child, err := fromTag(c.Get(k).MustGet(), k, path+"."+k)
		if err != nil {
			return nil, err
		}
		n.Entries = append(n.Entries, child)
	}
	return checkName(n, path)
}

func checkName(n *node, path string) (*node, error) {
	if !utf8.ValidString(n.Name) {
		return nil, unrepresentable(path, "name %q is not valid UTF-8", n.Name)
	}
	return n, nil
}

func fromTag(t nbt.Tag, name, path string) (*node, error) {
	n := &node{Kind: t.Kind().String(), Name: name}
	switch x := t.(type) {
	case *nbt.Byte:
		n.Value = number(strconv.FormatInt(int64(x.Value), 10))
	case *nbt.Short:
		n.Value = number(strconv.FormatInt(int64(x.Value), 10))
	case *nbt.Int:
		n.Value = number(strconv.FormatInt(int64(x.Value), 10))
	case *nbt.Long:
		n.Value = number(strconv.FormatInt(x.Value, 10))
	case *nbt.Float:
		v := float64(x.Value)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, unrepresentable(path, "non-finite Float %v", v)
		}
		n.Value = number(strconv.FormatFloat(v, 'g', -1, 32))
	case *nbt.Double:
		if math.IsNaN(x.Value) || math.IsInf(x.Value, 0) {
			return nil, unrepresentable(path, "non-finite Double %v", x.Value)
		}
		n.Value = number(strconv.FormatFloat(x.Value, 'g', -1, 64))
	case *nbt.String:
		if !utf8.ValidString(x.Value) {
			return nil, unrepresentable(path, "String value is not valid UTF-8")
		}
		s := x.Value
		n.Text = &s
	case *nbt.ByteArray:
		n.Items = make([]number, len(x.Values))
		for i, v := range x.Values {
			n.Items[i] = number(strconv.FormatInt(int64(v), 10))
		}
	case *nbt.IntArray:
		n.Items = make([]number, len(x.Values))
		for i, v := range x.Values {
			n.Items[i] = number(strconv.FormatInt(int64(v), 10))
		}
	case *nbt.LongArray:
		n.Items = make([]number, len(x.Values))
		for i, v := range x.Values {
			n.Items[i] = number(strconv.FormatInt(v, 10))
		}
	case *nbt.List:
		n.ElemKind = x.ElemKind().String()
		n.Elements = make([]*node, 0, x.Len())
		for i, e := range x.Elems() {
			child, err := fromTag(e, "", fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			n.Elements = append(n.Elements, child)
		}
	case *nbt.Compound:
		return fromCompound(x, name, path)
	}
	return checkName(n, path)
}

// Document -> tree.

func kindOf(n *node, path string) (nbt.Kind, error) {
	if n == nil {
		return 0, syntaxErr(path, "null node")
	}
	if n.Kind == "" {
		return 0, syntaxErr(path, "missing kind")
	}
	k, ok := nbt.ParseKind(n.Kind)
	if !ok {
		return 0, &nbt.Error{Kind: nbt.ErrUnknownKind, Detail: fmt.Sprintf("%s: %q", path, n.Kind)}
	}
	if k == nbt.KindEnd {
		return 0, syntaxErr(path, "End is not a value")
	}
	return k, nil
}

func toCompound(n *node, path string) (*nbt.Compound, error) {
	if err := checkFields(n, nbt.KindCompound, path); err != nil {
		return nil, err
	}
	c := nbt.NewCompound(n.Name)
	for i, e := range n.Entries {
		p := fmt.Sprintf("%s.entries[%d]", path, i)
		k, err := kindOf(e, p)
		if err != nil {
			return nil, err
		}
		t, err := toTag(e, k, e.Name, p)
		if err != nil {
			return nil, err
		}
		// duplicate names: last one wins, as in the binary decoder
		if err := c.Set(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// checkFields rejects payload fields that do not belong to kind k.
func checkFields(n *node, k nbt.Kind, path string) error {
	var stray []string
	if n.Value != "" && !isScalar(k) {
		stray = append(stray, "value")
	}
	if n.Text != nil && k != nbt.KindString {
		stray = append(stray, "text")
	}
	if n.Items != nil && !isArray(k) {
		stray = append(stray, "items")
	}
	if n.ElemKind != "" && k != nbt.KindList {
		stray = append(stray, "elem_kind")
	}
	if n.Elements != nil && k != nbt.KindList {
		stray = append(stray, "elements")
	}
	if n.Entries != nil && k != nbt.KindCompound {
		stray = append(stray, "entries")
	}
	if len(stray) > 0 {
		return syntaxErr(path, "%v node cannot carry %s", k, strings.Join(stray, ", "))
	}
	return nil
}

func isScalar(k nbt.Kind) bool {
	switch k {
	case nbt.KindByte, nbt.KindShort, nbt.KindInt, nbt.KindLong, nbt.KindFloat, nbt.KindDouble:
		return true
	}
	return false
}

func isArray(k nbt.Kind) bool {
	return k == nbt.KindByteArray || k == nbt.KindIntArray || k == nbt.KindLongArray
}

func toTag(n *node, k nbt.Kind, name, path string) (nbt.Tag, error) {
	if err := checkFields(n, k, path); err != nil {
		return nil, err
	}
	switch k {
	case nbt.KindByte:
		v, err := parseInt(n.Value, 8, path)
		return nbt.NewByte(name, int8(v)), err
	case nbt.KindShort:
		v, err := parseInt(n.Value, 16, path)
		return nbt.NewShort(name, int16(v)), err
	case nbt.KindInt:
		v, err := parseInt(n.Value, 32, path)
		return nbt.NewInt(name, int32(v)), err
	case nbt.KindLong:
		v, err := parseInt(n.Value, 64, path)
		return nbt.NewLong(name, v), err
	case nbt.KindFloat:
		v, err := parseFloat(n.Value, 32, path)
		return nbt.NewFloat(name, float32(v)), err
	case nbt.KindDouble:
		v, err := parseFloat(n.Value, 64, path)
		return nbt.NewDouble(name, v), err
	case nbt.KindString:
		if n.Text == nil {
			return nil, syntaxErr(path, "String without text")
		}
		return nbt.NewString(name, *n.Text), nil
	case nbt.KindByteArray:
		vs := make([]int8, len(n.Items))
		for i, it := range n.Items {
			v, err := parseInt(it, 8, fmt.Sprintf("%s.items[%d]", path, i))
			if err != nil {
				return nil, err
			}
			vs[i] = int8(v)
		}
		return nbt.NewByteArray(name, vs), nil
	case nbt.KindIntArray:
		vs := make([]int32, len(n.Items))
		for i, it := range n.Items {
			v, err := parseInt(it, 32, fmt.Sprintf("%s.items[%d]", path, i))
			if err != nil {
				return nil, err
			}
			vs[i] = int32(v)
		}
		return nbt.NewIntArray(name, vs), nil
	case nbt.KindLongArray:
		vs := make([]int64, len(n.Items))
		for i, it := range n.Items {
			v, err := parseInt(it, 64, fmt.Sprintf("%s.items[%d]", path, i))
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return nbt.NewLongArray(name, vs), nil
	case nbt.KindList:
		return toList(n, name, path)
	case nbt.KindCompound:
		return toCompound(n, path)
	}
	return nil, syntaxErr(path, "unhandled kind %v", k)
}

func toList(n *node, name, path string) (*nbt.List, error) {
	if n.ElemKind == "" {
		return nil, syntaxErr(path, "List without elem_kind")
	}
	ek, ok := nbt.ParseKind(n.ElemKind)
	if !ok {
		return nil, &nbt.Error{Kind: nbt.ErrUnknownKind, Detail: fmt.Sprintf("%s: elem_kind %q", path, n.ElemKind)}
	}
	l, err := nbt.NewList(name, ek)
	if err != nil {
		return nil, err
	}
	for i, e := range n.Elements {
		p := fmt.Sprintf("%s.elements[%d]", path, i)
		k, err := kindOf(e, p)
		if err != nil {
			return nil, err
		}
		if e.Name != "" {
			return nil, syntaxErr(p, "list elements are unnamed, got %q", e.Name)
		}
		if k != ek {
			return nil, &nbt.Error{Kind: nbt.ErrListKindMismatch, Detail: fmt.Sprintf("%s: %v element in list of %v", p, k, ek)}
		}
		t, err := toTag(e, k, "", p)
		if err != nil {
			return nil, err
		}
		if err := l.Append(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func parseInt(n number, bits int, path string) (int64, error) {
	if n == "" {
		return 0, syntaxErr(path, "missing value")
	}
	v, err := strconv.ParseInt(string(n), 10, bits)
	if err != nil {
		return 0, &nbt.Error{Kind: nbt.ErrTextSyntax, Detail: fmt.Sprintf("%s: %d-bit integer", path, bits), Err: err}
	}
	return v, nil
}

func parseFloat(n number, bits int, path string) (float64, error) {
	if n == "" {
		return 0, syntaxErr(path, "missing value")
	}
	v, err := strconv.ParseFloat(string(n), bits)
	if err != nil {
		return 0, &nbt.Error{Kind: nbt.ErrTextSyntax, Detail: fmt.Sprintf("%s: %d-bit float", path, bits), Err: err}
	}
	return v, nil
}
