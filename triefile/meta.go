package triefile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Meta is a small, order-preserving key-value table carried in a triefile's
// header: build provenance, a human-readable label, a source-data checksum,
// anything the caller wants to recover alongside the trie itself.
//
// It is independent of the trie's own wire format; triefile never interprets
// its contents beyond storing and returning them.
type Meta struct {
	KeyVals []KV
}

// KV is one entry of a Meta table.
type KV struct {
	Key   []byte
	Value []byte
}

const (
	MaxNumKVs    = 255
	MaxKeySize   = 255
	MaxValueSize = 255
)

// Add appends a key-value pair. Keys are not required to be unique; see Get
// and GetAll.
func (m *Meta) Add(key, value []byte) error {
	if len(m.KeyVals) >= MaxNumKVs {
		return fmt.Errorf("triefile: number of metadata entries %d exceeds max %d", len(m.KeyVals), MaxNumKVs)
	}
	if len(key) > MaxKeySize {
		return fmt.Errorf("triefile: metadata key size %d exceeds max %d", len(key), MaxKeySize)
	}
	if len(value) > MaxValueSize {
		return fmt.Errorf("triefile: metadata value size %d exceeds max %d", len(value), MaxValueSize)
	}
	m.KeyVals = append(m.KeyVals, KV{Key: cloneBytes(key), Value: cloneBytes(value)})
	return nil
}

// AddString is a convenience wrapper around Add for string values.
func (m *Meta) AddString(key []byte, value string) error {
	return m.Add(key, []byte(value))
}

// Get returns the first value stored under key.
func (m Meta) Get(key []byte) ([]byte, bool) {
	for _, kv := range m.KeyVals {
		if bytes.Equal(kv.Key, key) {
			return kv.Value, true
		}
	}
	return nil, false
}

// GetString is a convenience wrapper around Get for string values.
func (m Meta) GetString(key []byte) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return string(v), true
}

// AddUint64 is a convenience wrapper around Add for little-endian uint64 values.
func (m *Meta) AddUint64(key []byte, value uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	return m.Add(key, buf[:])
}

// GetUint64 is a convenience wrapper around Get for little-endian uint64 values.
func (m Meta) GetUint64(key []byte) (uint64, bool) {
	v, ok := m.Get(key)
	if !ok || len(v) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(v), true
}

// GetAll returns every value stored under key, in insertion order.
func (m Meta) GetAll(key []byte) [][]byte {
	var values [][]byte
	for _, kv := range m.KeyVals {
		if bytes.Equal(kv.Key, key) {
			values = append(values, kv.Value)
		}
	}
	return values
}

// Count returns the number of entries stored under key.
func (m Meta) Count(key []byte) int {
	var n int
	for _, kv := range m.KeyVals {
		if bytes.Equal(kv.Key, key) {
			n++
		}
	}
	return n
}

// Remove deletes every entry stored under key.
func (m *Meta) Remove(key []byte) {
	kept := m.KeyVals[:0]
	for _, kv := range m.KeyVals {
		if !bytes.Equal(kv.Key, key) {
			kept = append(kept, kv)
		}
	}
	m.KeyVals = kept
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}

// marshalBinary encodes m as: a 1-byte count, followed by each entry as
// 1-byte key length + key bytes + 1-byte value length + value bytes.
func (m Meta) marshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if len(m.KeyVals) > MaxNumKVs {
		return nil, fmt.Errorf("triefile: number of metadata entries %d exceeds max %d", len(m.KeyVals), MaxNumKVs)
	}
	buf.WriteByte(byte(len(m.KeyVals)))
	for i, kv := range m.KeyVals {
		if len(kv.Key) > MaxKeySize {
			return nil, fmt.Errorf("triefile: metadata key %d size %d exceeds max %d", i, len(kv.Key), MaxKeySize)
		}
		if len(kv.Value) > MaxValueSize {
			return nil, fmt.Errorf("triefile: metadata value %d size %d exceeds max %d", i, len(kv.Value), MaxValueSize)
		}
		buf.WriteByte(byte(len(kv.Key)))
		buf.Write(kv.Key)
		buf.WriteByte(byte(len(kv.Value)))
		buf.Write(kv.Value)
	}
	return buf.Bytes(), nil
}

func unmarshalMeta(b []byte) (Meta, error) {
	var m Meta
	if len(b) == 0 {
		return m, nil
	}
	r := bytes.NewReader(b)
	numKVs, err := r.ReadByte()
	if err != nil {
		return m, fmt.Errorf("triefile: read metadata count: %w", err)
	}
	for i := 0; i < int(numKVs); i++ {
		var kv KV
		keyLen, err := r.ReadByte()
		if err != nil {
			return m, fmt.Errorf("triefile: read metadata key %d length: %w", i, err)
		}
		kv.Key = make([]byte, keyLen)
		if _, err := io.ReadFull(r, kv.Key); err != nil {
			return m, fmt.Errorf("triefile: read metadata key %d: %w", i, err)
		}
		valLen, err := r.ReadByte()
		if err != nil {
			return m, fmt.Errorf("triefile: read metadata value %d length: %w", i, err)
		}
		kv.Value = make([]byte, valLen)
		if _, err := io.ReadFull(r, kv.Value); err != nil {
			return m, fmt.Errorf("triefile: read metadata value %d: %w", i, err)
		}
		m.KeyVals = append(m.KeyVals, kv)
	}
	return m, nil
}
