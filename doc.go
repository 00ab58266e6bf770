// Package nbt encodes and decodes the Named Binary Tag format: a
// self-describing, big-endian binary encoding of a tree of typed tags
// rooted at a named compound.
//
// The package exposes Marshal/Unmarshal helpers as well as streaming
// Encoder/Decoder types. Decoding never reads past a length prefix and
// fails with a classified *Error on malformed or truncated input. The
// textrep subpackage provides a lossless text form of the same tree.
package nbt
