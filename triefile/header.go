package triefile

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Magic is the first 8 bytes of every triefile.
var Magic = [8]byte{'F', 'A', 'S', 'T', 'R', 'I', 'E', '1'}

// Version is the current on-disk format version written by Save.
const Version = uint8(1)

var (
	ErrInvalidMagic       = errors.New("triefile: invalid magic")
	ErrUnsupportedVersion = errors.New("triefile: unsupported version")
	ErrInvalidWidth       = errors.New("triefile: width must be between 1 and 8")
	ErrCorrupt            = errors.New("triefile: corrupt file")
	ErrFingerprintMismatch = errors.New("triefile: fingerprint mismatch")
)

// header is the fixed-size prefix of a triefile, before the variable-length
// metadata table.
type header struct {
	Version uint8
	Width   uint8
	MetaLen uint32
}

// headerFixedSize is len(Magic) + version byte + width byte + metaLen uint32.
const headerFixedSize = 8 + 1 + 1 + 4

func (h header) bytes() []byte {
	buf := make([]byte, headerFixedSize)
	copy(buf[0:8], Magic[:])
	buf[8] = h.Version
	buf[9] = h.Width
	binary.LittleEndian.PutUint32(buf[10:14], h.MetaLen)
	return buf
}

func loadHeader(buf []byte) (header, error) {
	var h header
	if len(buf) < headerFixedSize {
		return h, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	if [8]byte(buf[0:8]) != Magic {
		return h, ErrInvalidMagic
	}
	h.Version = buf[8]
	if h.Version != Version {
		return h, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, h.Version, Version)
	}
	h.Width = buf[9]
	if h.Width < 1 || h.Width > 8 {
		return h, fmt.Errorf("%w: %d", ErrInvalidWidth, h.Width)
	}
	h.MetaLen = binary.LittleEndian.Uint32(buf[10:14])
	return h, nil
}

// fingerprint hashes the raw trie buffer, so that a truncated or bit-flipped
// file is caught at Open time rather than producing undefined query
// behavior.
func fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
