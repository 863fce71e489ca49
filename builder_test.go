package fastrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBuilderValidatesWidth(t *testing.T) {
	for width := 1; width <= 8; width++ {
		b, err := NewBuilder[int](width)
		require.NoError(t, err)
		require.NotNil(t, b)
	}
	_, err := NewBuilder[int](0)
	require.ErrorIs(t, err, ErrInvalidWidth)
	_, err = NewBuilder[int](-1)
	require.ErrorIs(t, err, ErrInvalidWidth)
	_, err = NewBuilder[int](9)
	require.ErrorIs(t, err, ErrInvalidWidth)
}

func TestAddOverwritesExistingKey(t *testing.T) {
	b, err := NewBuilder[string](1)
	require.NoError(t, err)
	b.Add([]byte("key"), "first")
	b.Add([]byte("key"), "second")
	require.True(t, b.root.children['k'].children['e'].children['y'].hasValue)
	require.Equal(t, "second", b.root.children['k'].children['e'].children['y'].value)
}

func TestAddSharesCommonPrefixNodes(t *testing.T) {
	b, err := NewBuilder[int](1)
	require.NoError(t, err)
	b.Add([]byte("ab"), 1)
	b.Add([]byte("ac"), 2)

	aNode := b.root.children['a']
	require.NotNil(t, aNode)
	require.False(t, aNode.hasValue)
	require.Len(t, aNode.children, 2)
	require.Equal(t, 1, aNode.children['b'].value)
	require.Equal(t, 2, aNode.children['c'].value)
}

func TestAddEmptyKeyStoresAtRoot(t *testing.T) {
	b, err := NewBuilder[int](1)
	require.NoError(t, err)
	b.Add(nil, 7)
	require.True(t, b.root.hasValue)
	require.Equal(t, 7, b.root.value)
}

func TestPrebuildConsumesBuilder(t *testing.T) {
	b, err := NewBuilder[int](1)
	require.NoError(t, err)
	b.Add([]byte("a"), 1)

	pre, err := b.Prebuild()
	require.NoError(t, err)
	require.NotEmpty(t, pre.Data)
	require.Equal(t, 1, pre.Width)

	_, err = b.Prebuild()
	require.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestPrebuildEmptyBuilderProducesRootOnlyRecord(t *testing.T) {
	b, err := NewBuilder[int](1)
	require.NoError(t, err)
	pre, err := b.Prebuild()
	require.NoError(t, err)
	// value-index field (width 1) + has-children byte, and nothing else.
	require.Len(t, pre.Data, 2)
	require.Equal(t, byte(0), pre.Data[0])
	require.Equal(t, byte(0), pre.Data[1])
	require.Empty(t, pre.Values)
}

func TestPrebuildOverflowsNarrowWidth(t *testing.T) {
	b, err := NewBuilder[int](1)
	require.NoError(t, err)
	// 256 distinct single-byte keys force a value-index or offset past what
	// one byte can encode once enough of them also carry values.
	for i := 0; i < 256; i++ {
		b.Add([]byte{byte(i)}, i)
	}
	_, err = b.Prebuild()
	require.ErrorIs(t, err, ErrIndexOverflow)
}
