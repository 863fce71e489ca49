// Package triefile persists a fastrie Builder.Prebuild output to a single
// file and reopens it later, either by reading it fully into memory or by
// memory-mapping it for zero-copy queries.
//
// # Format
//
// A triefile is laid out as:
//
//	magic (8 bytes)            "FASTRIE1"
//	version (1 byte)
//	width (1 byte)
//	metadata length (4 bytes, little-endian)
//	metadata (variable)        see Meta
//	fingerprint (8 bytes, little-endian)   xxHash64 over data
//	values length (4 bytes, little-endian)
//	values (variable)          count-prefixed, then length-prefixed, byte-string values
//	data (remainder)           the raw fastrie buffer, unmodified
//
// data is placed last so that OpenMmap can hand the trie a direct slice of
// the mapped pages, with no copy and no offset arithmetic beyond what
// fastrie itself already does.
//
// This framing is entirely separate from, and never mutates, the trie
// buffer format fastrie itself produces and consumes.
package triefile
