// Package fastrie is a static, byte-keyed trie optimized for longest-prefix
// matching.
//
// # Design
//
// A trie is built in two phases. First, a [Builder] accumulates (key, value)
// pairs into an ordinary mutable tree of nodes keyed by single bytes. Second,
// [Builder.Prebuild] performs a single depth-first pass over that tree and
// lays it out into one contiguous byte buffer: parent-to-child links become
// absolute byte offsets, back-patched into the buffer once the child's
// position is known. Values are interned into a side table in the same
// traversal order, addressed from the buffer by a 1-based index (0 means "no
// value").
//
// The resulting `(data, values, width)` triple is handed to [FromPrebuilt] or
// [FromPrebuiltWithoutValues], which construct a read-only query object.
// Querying never allocates, never chases pointers through a tree of heap
// nodes, and never computes a hash: it walks `data` directly using bounded
// arithmetic on byte offsets.
//
// # Buffer layout
//
// Every node record begins with a W-byte little-endian value-index field
// (W is the caller-chosen index width, 1 to 8 bytes), followed by a one-byte
// has-children flag. If the node has children, a chain of "clusters" follows:
// each cluster covers a contiguous, possibly gappy, range of child bytes
// `[min, max]`, stores a W-byte "next cluster" offset (zero if it's the last
// cluster), and a slot table of `max-min+1` W-byte child offsets (zero for a
// gap — no child with that byte). Clusters are ordered largest-first to
// minimize the average number of clusters probed per query byte. Child
// records follow, in cluster order and then ascending-byte order within a
// cluster; that order is what determines value-table indices.
//
// # Persistence
//
// This package has no opinion on how `data` and `values` are stored: embed
// `data` as a byte literal, write it to a file, or memory-map it. The
// sibling package `triefile` provides an optional ready-made file format for
// callers who don't want to build their own.
//
// # Non-goals
//
// No Unicode normalization, no case folding, no wildcard or regular
// matching, no deletion or mutation after build, no concurrent modification
// of a builder, no sorted-iteration API, no compression of value payloads.
package fastrie
