package fastrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeIdxRoundTrip(t *testing.T) {
	for width := 1; width <= 8; width++ {
		max := maxIndexValue(width)
		samples := []uint64{0, 1, max}
		if max > 2 {
			samples = append(samples, max/2, max-1)
		}
		for _, n := range samples {
			enc, err := encodeIdx(n, width)
			require.NoError(t, err)
			require.Len(t, enc, width)
			require.Equal(t, n, decodeIdx(enc, width))
		}
	}
}

func TestEncodeIdxKnownValues(t *testing.T) {
	enc, err := encodeIdx(0, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0}, enc)

	enc, err = encodeIdx(10, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 0, 0}, enc)

	enc, err = encodeIdx(256, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 0}, enc)

	enc, err = encodeIdx(0xFFFFFF, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF}, enc)
}

func TestEncodeIdxOverflowRejected(t *testing.T) {
	for width := 1; width <= 7; width++ {
		_, err := encodeIdx(maxIndexValue(width)+1, width)
		require.ErrorIs(t, err, ErrIndexOverflow)
	}
}

func TestReserveThenWriteMatchesDirectAppend(t *testing.T) {
	for width := 1; width <= 8; width++ {
		n := maxIndexValue(width) / 3

		var reserved []byte
		reserved = append(reserved, 1, 5, 8)
		pos := reserveIdx(&reserved, width)
		reserved = append(reserved, 13)
		require.NoError(t, writeIdxAt(reserved, pos, width, n))

		var direct []byte
		direct = append(direct, 1, 5, 8)
		require.NoError(t, appendIdx(&direct, width, n))
		direct = append(direct, 13)

		require.Equal(t, direct, reserved)
	}
}

func TestZeroIsRepresentable(t *testing.T) {
	for width := 1; width <= 8; width++ {
		enc, err := encodeIdx(0, width)
		require.NoError(t, err)
		require.Equal(t, uint64(0), decodeIdx(enc, width))
	}
}
