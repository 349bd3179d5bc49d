package near

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/textileio/near-plugins/keys"
	"github.com/textileio/near-plugins/transaction"
	"github.com/textileio/near-plugins/util"
)

const testSecretKey = "ed25519:4TuypHBtJ3ZzLb1ooPtAncJjyJ5gNJ96j59wY62kr3qusxca51XqbxzCoG4VJmC3JmfAiGje1sW1CrpZvNCWsWu6"

const finalOutcome = `{
	"status": {"SuccessValue": ""},
	"transaction": {"hash": "tx"},
	"transaction_outcome": {"id": "tx", "outcome": {"logs": [], "receipt_ids": ["r"], "gas_burnt": 1, "tokens_burnt": "0", "executor_id": "test.near", "status": {"SuccessReceiptId": "r"}}},
	"receipts_outcome": []
}`

type rawTx []byte

func (tx rawTx) Encode() ([]byte, error) {
	return tx, nil
}

type failingTx struct{}

func (failingTx) Encode() ([]byte, error) {
	return nil, errors.New("boom")
}

func TestSendTransaction(t *testing.T) {
	t.Parallel()

	c, node := makeClient(t)
	node.SetResult("broadcast_tx_commit", json.RawMessage(finalOutcome))

	res, err := c.SendTransaction(ctx, rawTx{1, 2, 3})
	require.NoError(t, err)
	value, ok := res.SuccessValue()
	require.True(t, ok)
	require.Equal(t, "", value)
	_, failed := res.Failure()
	require.False(t, failed)

	req := node.LastRequest(t)
	require.Equal(t, "broadcast_tx_commit", req.Method)
	require.JSONEq(t, `["AQID"]`, string(req.Params))
}

func TestSendTransactionEncodeError(t *testing.T) {
	t.Parallel()

	c, node := makeClient(t)
	_, err := c.SendTransaction(ctx, failingTx{})
	require.Error(t, err)
	_, err = c.SendTransactionAsync(ctx, failingTx{})
	require.Error(t, err)
	require.Empty(t, node.Requests())
}

func TestSendTransactionAsync(t *testing.T) {
	t.Parallel()

	c, node := makeClient(t)
	node.SetResult("broadcast_tx_async", "6zgh2u9DqHHiXzdy9ouTP7oGky2T4nugqzqt9wJZwNFm")

	hash, err := c.SendTransactionAsync(ctx, rawTx{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "6zgh2u9DqHHiXzdy9ouTP7oGky2T4nugqzqt9wJZwNFm", hash)
	require.JSONEq(t, `["AQID"]`, string(node.LastRequest(t).Params))
}

func TestTxStatus(t *testing.T) {
	t.Parallel()

	c, node := makeClient(t)
	node.SetResult("tx", json.RawMessage(finalOutcome))
	node.SetResult("EXPERIMENTAL_tx_status", json.RawMessage(finalOutcome))

	hash := []byte{1, 2, 3, 4}
	_, err := c.TxStatus(ctx, TxHashFromBytes(hash), "test.near")
	require.NoError(t, err)
	req := node.LastRequest(t)
	require.Equal(t, "tx", req.Method)
	require.JSONEq(t, `["`+util.BaseEncode(hash)+`","test.near"]`, string(req.Params))

	_, err = c.TxStatus(ctx, TxHashFromString("abc"), "test.near")
	require.NoError(t, err)
	require.JSONEq(t, `["abc","test.near"]`, string(node.LastRequest(t).Params))

	_, err = c.TxStatusReceipts(ctx, TxHashFromString("abc"), "test.near")
	require.NoError(t, err)
	req = node.LastRequest(t)
	require.Equal(t, "EXPERIMENTAL_tx_status", req.Method)
	require.JSONEq(t, `["abc","test.near"]`, string(req.Params))
}

func TestSignAndSendTransaction(t *testing.T) {
	t.Parallel()

	signer, err := keys.NewKeyPairFromString(testSecretKey)
	require.NoError(t, err)

	c, node := makeClient(t)
	node.SetResult("query", json.RawMessage(`{"nonce": 41, "permission": "FullAccess", "block_height": 1, "block_hash": "h"}`))
	node.SetResult("block", json.RawMessage(genesisBlock))
	node.SetResult("broadcast_tx_commit", json.RawMessage(finalOutcome))

	_, err = c.SignAndSendTransaction(
		ctx,
		signer,
		"test.near",
		"receiver.near",
		transaction.TransferAction(*big.NewInt(1)),
	)
	require.NoError(t, err)

	reqs := node.Requests()
	require.Len(t, reqs, 3)
	require.Equal(t, "query", reqs[0].Method)
	require.JSONEq(t, `{
		"request_type": "view_access_key",
		"account_id": "test.near",
		"public_key": "`+signer.GetPublicKey().String()+`",
		"finality": "optimistic"
	}`, string(reqs[0].Params))
	require.Equal(t, "block", reqs[1].Method)
	require.JSONEq(t, `{"finality":"final"}`, string(reqs[1].Params))
	require.Equal(t, "broadcast_tx_commit", reqs[2].Method)

	var params []string
	require.NoError(t, json.Unmarshal(reqs[2].Params, &params))
	require.Len(t, params, 1)
	encoded, err := base64.StdEncoding.DecodeString(params[0])
	require.NoError(t, err)

	signerLen := binary.LittleEndian.Uint32(encoded)
	require.Equal(t, "test.near", string(encoded[4:4+signerLen]))
	nonceAt := 4 + int(signerLen) + 33
	require.Equal(t, uint64(42), binary.LittleEndian.Uint64(encoded[nonceAt:nonceAt+8]))
}

func TestSignTransactionMissingKey(t *testing.T) {
	t.Parallel()

	signer, err := keys.NewKeyPairFromString(testSecretKey)
	require.NoError(t, err)

	c, node := makeClient(t)
	node.SetResult("query", json.RawMessage(`{"error": "access key ed25519:abc does not exist while viewing", "logs": []}`))

	_, _, err = c.SignTransaction(ctx, signer, "test.near", "receiver.near")
	require.Error(t, err)
	require.Len(t, node.Requests(), 1)
}
