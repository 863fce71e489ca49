package fastrie

import "fmt"

// reservedFillByte is written into index slots whose final value is not yet
// known at emission time. It never survives into a finished buffer: every
// reserved slot is either overwritten with a real offset or, for gap slots,
// was never reserved in the first place (gaps are written as the zero
// sentinel immediately).
const reservedFillByte = 0xFF

// maxIndexValue returns the largest unsigned integer representable in width
// bytes, i.e. 2^(8*width) - 1.
func maxIndexValue(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (8 * uint(width))) - 1
}

func checkFitsWidth(n uint64, width int) error {
	if n > maxIndexValue(width) {
		return fmt.Errorf("%w: value %d does not fit in %d byte(s) (max %d)", ErrIndexOverflow, n, width, maxIndexValue(width))
	}
	return nil
}

// decodeIdx decodes a little-endian unsigned integer from the first width
// bytes of b.
func decodeIdx(b []byte, width int) uint64 {
	var n uint64
	for i := 0; i < width; i++ {
		n |= uint64(b[i]) << (8 * uint(i))
	}
	return n
}

// encodeIdx encodes n as width little-endian bytes, failing if n overflows
// width.
func encodeIdx(n uint64, width int) ([]byte, error) {
	if err := checkFitsWidth(n, width); err != nil {
		return nil, err
	}
	buf := make([]byte, width)
	for i := 0; i < width; i++ {
		buf[i] = byte(n >> (8 * uint(i)))
	}
	return buf, nil
}

// reserveIdx appends width filler bytes to *data and returns the position at
// which they were written, so that the real value can be patched in later
// via writeIdxAt.
func reserveIdx(data *[]byte, width int) int {
	pos := len(*data)
	for i := 0; i < width; i++ {
		*data = append(*data, reservedFillByte)
	}
	return pos
}

// writeIdxAt overwrites the width bytes at data[pos:pos+width] with the
// little-endian encoding of n.
func writeIdxAt(data []byte, pos, width int, n uint64) error {
	if err := checkFitsWidth(n, width); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		data[pos+i] = byte(n >> (8 * uint(i)))
	}
	return nil
}

// appendIdx appends the little-endian encoding of n as width bytes directly
// to *data, with no reserve/patch step. Used for fields whose value is known
// at emission time (the value-index field, and gap slots, which are always
// the zero sentinel).
func appendIdx(data *[]byte, width int, n uint64) error {
	enc, err := encodeIdx(n, width)
	if err != nil {
		return err
	}
	*data = append(*data, enc...)
	return nil
}
