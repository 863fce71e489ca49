package triefile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/wilsonzlin/fastrie/internal/contstep"
)

// Save frames width/data/values/meta per the triefile layout (see doc.go)
// and writes the result to w: header, metadata, a fingerprint over data,
// the value table, and finally the raw trie buffer.
func Save(w io.Writer, width int, data []byte, values [][]byte, meta Meta) error {
	if width < 1 || width > 8 {
		return ErrInvalidWidth
	}

	metaBytes, err := meta.marshalBinary()
	if err != nil {
		return err
	}
	h := header{Version: Version, Width: uint8(width), MetaLen: uint32(len(metaBytes))}

	var fpBuf [8]byte
	binary.LittleEndian.PutUint64(fpBuf[:], fingerprint(data))

	valuesBytes, err := marshalValues(values)
	if err != nil {
		return err
	}
	var valuesLenBuf [4]byte
	binary.LittleEndian.PutUint32(valuesLenBuf[:], uint32(len(valuesBytes)))

	bw := bufio.NewWriter(w)
	return contstep.New().
		Then("write header", func() error {
			if _, err := bw.Write(h.bytes()); err != nil {
				return err
			}
			if _, err := bw.Write(metaBytes); err != nil {
				return err
			}
			_, err := bw.Write(fpBuf[:])
			return err
		}).
		Then("write value table", func() error {
			if _, err := bw.Write(valuesLenBuf[:]); err != nil {
				return err
			}
			_, err := bw.Write(valuesBytes)
			return err
		}).
		Then("write data", func() error {
			_, err := bw.Write(data)
			return err
		}).
		Then("flush", bw.Flush).
		Err()
}

// SaveFile is Save, but creates (or truncates) path, syncs it, and returns
// the total number of bytes written, so a crash never leaves a file that
// looks complete but isn't.
func SaveFile(path string, width int, data []byte, values [][]byte, meta Meta) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("triefile: create %s: %w", path, err)
	}
	err = contstep.New().
		Then("write", func() error { return Save(f, width, data, values, meta) }).
		Then("sync", f.Sync).
		Then("close", f.Close).
		Err()
	if err != nil {
		return 0, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("triefile: stat %s: %w", path, err)
	}
	return stat.Size(), nil
}

// marshalValues encodes values as a 4-byte count followed by, for each
// value, a 4-byte little-endian length and the value's bytes.
func marshalValues(values [][]byte) ([]byte, error) {
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(values)))
	out := append([]byte(nil), countBuf[:]...)
	for _, v := range values {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
		out = append(out, lenBuf[:]...)
		out = append(out, v...)
	}
	return out, nil
}
