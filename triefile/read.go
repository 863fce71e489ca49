package triefile

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/sys/unix"

	"github.com/wilsonzlin/fastrie"
)

// File is a loaded triefile: a trie buffer, its value table, and metadata,
// either read fully into the Go heap (Open) or backed by a read-only mmap
// of the underlying file (OpenMmap).
type File struct {
	width  int
	data   []byte
	values [][]byte
	meta   Meta
	closer func() error
}

func (f *File) Width() int        { return f.width }
func (f *File) Values() [][]byte { return f.values }
func (f *File) Data() []byte     { return f.data }
func (f *File) Meta() Meta       { return f.meta }

// Close releases resources held by the File. It is a no-op for files
// returned by Open, and unmaps the file for ones returned by OpenMmap.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer()
}

// Trie hands the loaded (data, values, width) triple to the core reader.
func (f *File) Trie() *fastrie.Trie[[]byte] {
	t, err := fastrie.FromPrebuilt(f.width, f.values, f.data)
	if err != nil {
		// width was already validated when the header was parsed.
		panic(fmt.Sprintf("triefile: internal error: %v", err))
	}
	return t
}

// Set hands the loaded (data, width) pair to the core value-less reader.
func (f *File) Set() *fastrie.Set {
	s, err := fastrie.FromPrebuiltWithoutValues(f.width, f.data)
	if err != nil {
		panic(fmt.Sprintf("triefile: internal error: %v", err))
	}
	return s
}

// Open validates magic, version and fingerprint, and eagerly loads the
// value table, metadata and trie buffer from r into memory.
func Open(r io.ReaderAt) (*File, error) {
	raw, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("triefile: read: %w", err)
	}
	return parseFile(raw, nil)
}

// OpenMmap memory-maps path read-only and returns a File whose Data() is a
// direct slice of the mapped pages; Close unmaps it.
func OpenMmap(path string) (*File, error) {
	raw, closer, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	f, err := parseFile(raw, closer)
	if err != nil {
		closer()
		return nil, err
	}
	return f, nil
}

func parseFile(raw []byte, closer func() error) (*File, error) {
	h, err := loadHeader(raw)
	if err != nil {
		return nil, err
	}
	pos := headerFixedSize
	if len(raw) < pos+int(h.MetaLen)+8+4 {
		return nil, fmt.Errorf("%w: truncated header tail", ErrCorrupt)
	}
	meta, err := unmarshalMeta(raw[pos : pos+int(h.MetaLen)])
	if err != nil {
		return nil, err
	}
	pos += int(h.MetaLen)

	wantFp := binary.LittleEndian.Uint64(raw[pos : pos+8])
	pos += 8
	valuesLen := binary.LittleEndian.Uint32(raw[pos : pos+4])
	pos += 4
	if len(raw) < pos+int(valuesLen) {
		return nil, fmt.Errorf("%w: truncated value table", ErrCorrupt)
	}
	values, err := unmarshalValues(raw[pos : pos+int(valuesLen)])
	if err != nil {
		return nil, err
	}
	pos += int(valuesLen)
	data := raw[pos:]

	if fingerprint(data) != wantFp {
		return nil, ErrFingerprintMismatch
	}

	return &File{width: int(h.Width), data: data, values: values, meta: meta, closer: closer}, nil
}

func unmarshalValues(blob []byte) ([][]byte, error) {
	if len(blob) < 4 {
		return nil, fmt.Errorf("%w: truncated value count", ErrCorrupt)
	}
	count := binary.LittleEndian.Uint32(blob[0:4])
	blob = blob[4:]
	values := make([][]byte, 0, count)
	for i := 0; i < int(count); i++ {
		if len(blob) < 4 {
			return nil, fmt.Errorf("%w: truncated value %d length", ErrCorrupt, i)
		}
		l := binary.LittleEndian.Uint32(blob[0:4])
		blob = blob[4:]
		if uint32(len(blob)) < l {
			return nil, fmt.Errorf("%w: truncated value %d", ErrCorrupt, i)
		}
		values = append(values, append([]byte(nil), blob[:l]...))
		blob = blob[l:]
	}
	return values, nil
}

// readAll drains r from offset 0 using a pooled scratch buffer, returning a
// freshly allocated copy sized to the data actually read. Used by Open,
// which accepts any io.ReaderAt rather than requiring a file with a known
// size.
func readAll(r io.ReaderAt) ([]byte, error) {
	const chunkSize = 64 * 1024

	scratch := bytebufferpool.Get()
	defer bytebufferpool.Put(scratch)
	scratch.Reset()

	chunk := make([]byte, chunkSize)
	var off int64
	for {
		n, err := r.ReadAt(chunk, off)
		if n > 0 {
			scratch.Write(chunk[:n])
			off += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return append([]byte(nil), scratch.B...), nil
}

// mmapFile opens path, advises the kernel we'll be doing random access over
// the whole mapping (queries jump around the buffer by nature), and returns
// the mapped bytes and an unmap func. On any error after a successful mmap,
// the caller must still invoke the returned unmap func to avoid leaking the
// mapping.
func mmapFile(path string) (raw []byte, unmap func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("triefile: open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("triefile: stat %s: %w", path, err)
	}
	if stat.Size() == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrCorrupt)
	}

	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM); err != nil {
		slog.Warn("triefile: fadvise(RANDOM) failed", "path", path, "error", err)
	}

	started := time.Now()
	mapped, err := unix.Mmap(int(f.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("triefile: mmap %s: %w", path, err)
	}
	slog.Info("triefile: mapped file", "path", path, "size", stat.Size(), "duration", time.Since(started).String())

	return mapped, func() error { return unix.Munmap(mapped) }, nil
}
