package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecretKey = "ed25519:4TuypHBtJ3ZzLb1ooPtAncJjyJ5gNJ96j59wY62kr3qusxca51XqbxzCoG4VJmC3JmfAiGje1sW1CrpZvNCWsWu6"

func TestNewKeyPairFromString(t *testing.T) {
	t.Parallel()

	kp, err := NewKeyPairFromString(testSecretKey)
	require.NoError(t, err)
	require.Equal(t, testSecretKey, kp.String())

	pk := kp.GetPublicKey()
	require.Equal(t, ED25519, pk.Type)
	require.Len(t, pk.Data, 32)
}

func TestNewKeyPairFromStringErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown curve":  "secp256k1:abc",
		"too many parts": "ed25519:abc:def",
		"bad base58":     "ed25519:0OIl",
		"bad size":       "ed25519:3yZe7d",
	}
	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := NewKeyPairFromString(test)
			require.Error(t, err)
		})
	}
}

func TestSignVerify(t *testing.T) {
	t.Parallel()

	kp, err := NewKeyPairFromRandom("ed25519")
	require.NoError(t, err)

	msg := []byte("near")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.True(t, kp.Verify(msg, sig))
	require.False(t, kp.Verify([]byte("aurora"), sig))

	_, err = NewKeyPairFromRandom("secp256k1")
	require.Error(t, err)
}

func TestPublicKeyString(t *testing.T) {
	t.Parallel()

	kp, err := NewKeyPairFromRandom("ed25519")
	require.NoError(t, err)

	pk := kp.GetPublicKey()
	parsed, err := NewPublicKeyFromString(pk.String())
	require.NoError(t, err)
	require.Equal(t, pk, parsed)
	require.Contains(t, pk.String(), "ed25519:")
}
