package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := [][]byte{
		{},
		{0},
		{0, 0, 1},
		[]byte("hello near"),
		{0xff, 0xfe, 0x10, 0x00, 0x42},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%x", test), func(t *testing.T) {
			t.Parallel()

			decoded, err := BaseDecode(BaseEncode(test))
			require.NoError(t, err)
			require.Equal(t, test, decoded)
		})
	}
}

func TestBaseEncodeKnownValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "StV1DL6CwTryKyV", BaseEncode([]byte("hello world")))
	require.Equal(t, "StV1DL6CwTryKyV", BaseEncodeString("hello world"))
}

func TestBaseEncodeStringTruncatesCodePoints(t *testing.T) {
	t.Parallel()

	// U+0101 is truncated to 0x01.
	require.Equal(t, BaseEncode([]byte{0x01}), BaseEncodeString("ā"))
	require.Equal(t, BaseEncode([]byte{0xe9}), BaseEncodeString("é"))
	// U+1F600 is a single rune, truncated to 0x00.
	require.Equal(t, BaseEncode([]byte{0x00}), BaseEncodeString("\U0001F600"))
}

func TestBaseEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", BaseEncode([]byte{}))
	decoded, err := BaseDecode("")
	require.NoError(t, err)
	require.NotNil(t, decoded)
	require.Empty(t, decoded)
}

func TestBaseDecodeInvalid(t *testing.T) {
	t.Parallel()

	_, err := BaseDecode("0OIl")
	require.Error(t, err)
}
