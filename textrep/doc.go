// Package textrep converts NBT compounds to and from a structured text
// document. Every node carries its kind explicitly, so a document read
// back yields exactly the same tags, including the width of every number.
//
// A document is a tree of nodes:
//
//	{"kind": "Compound", "name": "root", "entries": [
//	    {"kind": "Int", "name": "x", "value": 42},
//	    {"kind": "String", "name": "id", "text": "minecraft:stone"},
//	    {"kind": "List", "name": "pos", "elem_kind": "Double",
//	     "elements": [{"kind": "Double", "value": 1.5}]},
//	    {"kind": "IntArray", "name": "ids", "items": [1, 2, 3]}
//	]}
//
// JSON (read as JSONC, so comments and trailing commas are accepted),
// YAML and CBOR renderings of the same tree are supported.
package textrep
