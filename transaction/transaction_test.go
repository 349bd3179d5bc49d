package transaction

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"
	"github.com/textileio/near-plugins/keys"
)

func TestSignTransaction(t *testing.T) {
	t.Parallel()

	kp, err := keys.NewKeyPairFromRandom("ed25519")
	require.NoError(t, err)

	tx := NewTransaction(
		"alice.near",
		kp.GetPublicKey(),
		7,
		"bob.near",
		make([]byte, 32),
		[]Action{TransferAction(*big.NewInt(1000))},
	)

	hash, st, err := SignTransaction(*tx, kp)
	require.NoError(t, err)
	require.Len(t, hash, sha256.Size)

	raw, err := borsh.Serialize(*tx)
	require.NoError(t, err)
	expected := sha256.Sum256(raw)
	require.Equal(t, expected[:], hash)

	require.True(t, kp.Verify(hash, st.Signature.Data[:]))
	require.Equal(t, uint8(keys.ED25519), st.Signature.KeyType)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	kp, err := keys.NewKeyPairFromRandom("ed25519")
	require.NoError(t, err)

	tx := NewTransaction(
		"alice.near",
		kp.GetPublicKey(),
		1,
		"bob.near",
		make([]byte, 32),
		[]Action{
			CreateAccountAction(),
			AddKeyAction(kp.GetPublicKey(), FullAccessKey()),
		},
	)
	_, st, err := SignTransaction(*tx, kp)
	require.NoError(t, err)

	bytes, err := st.Encode()
	require.NoError(t, err)

	// Signer id is serialized first as a u32 length-prefixed string.
	require.Equal(t, uint32(len("alice.near")), binary.LittleEndian.Uint32(bytes[:4]))
	require.Equal(t, "alice.near", string(bytes[4:4+len("alice.near")]))

	// The signature closes the encoding: key type then 64 bytes.
	require.Equal(t, st.Signature.Data[:], bytes[len(bytes)-64:])
	require.Equal(t, byte(0), bytes[len(bytes)-65])
}

func TestNewPublicKey(t *testing.T) {
	t.Parallel()

	kp, err := keys.NewKeyPairFromRandom("ed25519")
	require.NoError(t, err)

	pk := NewPublicKey(kp.GetPublicKey())
	require.Equal(t, uint8(0), pk.KeyType)
	require.Equal(t, kp.GetPublicKey().Data, pk.Data[:])
}

func TestActionEncoding(t *testing.T) {
	t.Parallel()

	kp, err := keys.NewKeyPairFromRandom("ed25519")
	require.NoError(t, err)
	pk := kp.GetPublicKey()
	pkBytes := append([]byte{0}, pk.Data...)

	tests := map[string]struct {
		action   Action
		expected []byte
	}{
		"create account": {
			action:   CreateAccountAction(),
			expected: []byte{0},
		},
		"deploy contract": {
			action:   DeployContractAction([]byte{0xaa, 0xbb}),
			expected: concat([]byte{1}, u32(2), []byte{0xaa, 0xbb}),
		},
		"function call": {
			action:   FunctionCallAction("go", []byte("{}"), 30, *big.NewInt(5)),
			expected: concat([]byte{2}, str("go"), u32(2), []byte("{}"), u64(30), u128(5)),
		},
		"transfer": {
			action:   TransferAction(*big.NewInt(1000)),
			expected: concat([]byte{3}, u128(1000)),
		},
		"stake": {
			action:   StakeAction(*big.NewInt(10), pk),
			expected: concat([]byte{4}, u128(10), pkBytes),
		},
		"add full access key": {
			action:   AddKeyAction(pk, FullAccessKey()),
			expected: concat([]byte{5}, pkBytes, u64(0), []byte{1}),
		},
		"add function call key without allowance": {
			action: AddKeyAction(pk, FunctionCallAccessKey("app.near", []string{"go"}, nil)),
			expected: concat(
				[]byte{5}, pkBytes, u64(0),
				[]byte{0},
				[]byte{0},
				str("app.near"),
				u32(1), str("go"),
			),
		},
		"add function call key with allowance": {
			action: AddKeyAction(pk, FunctionCallAccessKey("app.near", []string{}, big.NewInt(7))),
			expected: concat(
				[]byte{5}, pkBytes, u64(0),
				[]byte{0},
				[]byte{1}, u128(7),
				str("app.near"),
				u32(0),
			),
		},
		"delete key": {
			action:   DeleteKeyAction(pk),
			expected: concat([]byte{6}, pkBytes),
		},
		"delete account": {
			action:   DeleteAccountAction("bob.near"),
			expected: concat([]byte{7}, str("bob.near")),
		},
	}
	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			bytes, err := borsh.Serialize(test.action)
			require.NoError(t, err)
			require.Equal(t, test.expected, bytes)
		})
	}
}

func concat(parts ...[]byte) []byte {
	var res []byte
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// u128 encodes a small value as a little endian u128.
func u128(v uint64) []byte {
	return append(u64(v), make([]byte, 8)...)
}

func str(s string) []byte {
	return append(u32(uint32(len(s))), s...)
}
