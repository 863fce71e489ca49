package fastrie

// Trie is a read-only, pre-serialized trie paired with a value table. It
// holds only non-owning views into data and values; it never mutates
// either, and is safe for concurrent use by multiple goroutines.
type Trie[V any] struct {
	width  int
	data   []byte
	values []V
}

// FromPrebuilt constructs a reader over a serialized buffer and its value
// table. width, values and data must come from the same Builder.Prebuild
// call (or a triefile that recorded them together); mismatched inputs have
// undefined behavior.
func FromPrebuilt[V any](width int, values []V, data []byte) (*Trie[V], error) {
	if width < 1 || width > 8 {
		return nil, ErrInvalidWidth
	}
	return &Trie[V]{width: width, values: values, data: data}, nil
}

// Match is a successful LongestMatchingPrefix result: the matched key's
// value, and the inclusive 0-based index of the last byte of the query text
// that the match consumed.
type Match[V any] struct {
	End   int
	Value V
}

// LongestMatchingPrefix returns the longest key in the trie that is a
// prefix of text, if any. The empty key is never reported as a match, even
// if Add(nil, v) was called during build: a match is only recorded after
// following a child edge out of the root.
func (t *Trie[V]) LongestMatchingPrefix(text []byte) (Match[V], bool) {
	end, idx, ok := longestMatch(t.width, t.data, text)
	if !ok {
		return Match[V]{}, false
	}
	return Match[V]{End: end, Value: t.values[idx]}, true
}

// ContainsKey reports whether key is exactly a key stored in the trie.
func (t *Trie[V]) ContainsKey(key []byte) bool {
	end, _, ok := longestMatch(t.width, t.data, key)
	return ok && end == len(key)-1
}

// MemorySize returns the length, in bytes, of the underlying serialized
// buffer. It is informational only.
func (t *Trie[V]) MemorySize() int {
	return len(t.data)
}

// Set is a value-less reader: it supports membership testing only, over a
// serialized buffer produced without (or stripped of) its value table.
type Set struct {
	width int
	data  []byte
}

// FromPrebuiltWithoutValues constructs a membership-only reader over a
// serialized buffer. Resolving a value is not supported by Set; use
// FromPrebuilt if values are needed.
func FromPrebuiltWithoutValues(width int, data []byte) (*Set, error) {
	if width < 1 || width > 8 {
		return nil, ErrInvalidWidth
	}
	return &Set{width: width, data: data}, nil
}

// ContainsKey reports whether key is exactly a key stored in the trie.
func (s *Set) ContainsKey(key []byte) bool {
	end, _, ok := longestMatch(s.width, s.data, key)
	return ok && end == len(key)-1
}

// LongestMatchingPrefixEnd returns the inclusive 0-based end index of the
// longest key that is a prefix of text, without resolving a value.
func (s *Set) LongestMatchingPrefixEnd(text []byte) (int, bool) {
	end, _, ok := longestMatch(s.width, s.data, text)
	return end, ok
}

// MemorySize returns the length, in bytes, of the underlying serialized
// buffer. It is informational only.
func (s *Set) MemorySize() int {
	return len(s.data)
}

// longestMatch walks data (a buffer produced by the serializer in
// serialize.go) following the bytes of text, and returns the last recorded
// match: end is the inclusive index into text of the last matched byte,
// valueIdx is the 0-based index into the value table, and ok reports
// whether any match was recorded at all.
//
// This is the one query hot path in the package; it performs no
// allocations and assumes data was produced by a conforming serializer.
func longestMatch(width int, data []byte, text []byte) (end int, valueIdx uint64, ok bool) {
	np := 0
	for i := 0; i < len(text); i++ {
		if data[np+width] == 0 {
			break
		}
		cp := np + width + 1
		c := text[i]
		childNp := -1
		for {
			nextCp := int(decodeIdx(data[cp:cp+width], width))
			cmin := data[cp+width]
			cmax := data[cp+width+1]
			if c >= cmin && c <= cmax {
				slotPos := cp + width + 2 + int(c-cmin)*width
				child := int(decodeIdx(data[slotPos:slotPos+width], width))
				if child != 0 {
					childNp = child
				}
				break
			}
			if nextCp == 0 {
				break
			}
			cp = nextCp
		}
		if childNp < 0 {
			// Either a gap slot (byte not a child) or the chain ran out
			// without covering c: the whole search terminates here.
			break
		}
		np = childNp
		v := decodeIdx(data[np:np+width], width)
		if v != 0 {
			end = i
			valueIdx = v - 1
			ok = true
		}
	}
	return
}
