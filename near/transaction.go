package near

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/textileio/near-plugins/keys"
	"github.com/textileio/near-plugins/transaction"
	"github.com/textileio/near-plugins/util"
)

// SignedTransaction is a signed transaction that can serialize itself to its
// canonical borsh bytes. *transaction.SignedTransaction satisfies it.
type SignedTransaction interface {
	Encode() ([]byte, error)
}

// TxHash is a transaction hash, held in its base58 form.
type TxHash struct {
	b58 string
}

// TxHashFromBytes returns the TxHash of a raw hash.
func TxHashFromBytes(hash []byte) TxHash {
	return TxHash{b58: util.BaseEncode(hash)}
}

// TxHashFromString returns the TxHash of a base58 encoded hash.
func TxHashFromString(hash string) TxHash {
	return TxHash{b58: hash}
}

func (h TxHash) String() string {
	return h.b58
}

// SendTransaction sends a signed transaction and waits until it is fully executed.
func (c *Client) SendTransaction(ctx context.Context, tx SignedTransaction) (*FinalExecutionOutcome, error) {
	encoded, err := encodeTransaction(tx)
	if err != nil {
		return nil, err
	}
	var res FinalExecutionOutcome
	if err := c.call(ctx, &res, "broadcast_tx_commit", encoded); err != nil {
		return nil, err
	}
	return &res, nil
}

// SendTransactionAsync sends a signed transaction and returns its base58 hash
// without waiting for execution.
func (c *Client) SendTransactionAsync(ctx context.Context, tx SignedTransaction) (string, error) {
	encoded, err := encodeTransaction(tx)
	if err != nil {
		return "", err
	}
	var res string
	if err := c.call(ctx, &res, "broadcast_tx_async", encoded); err != nil {
		return "", err
	}
	return res, nil
}

// TxStatus gets the status of a transaction signed by senderID.
func (c *Client) TxStatus(ctx context.Context, hash TxHash, senderID string) (*FinalExecutionOutcome, error) {
	var res FinalExecutionOutcome
	if err := c.call(ctx, &res, "tx", hash.String(), senderID); err != nil {
		return nil, err
	}
	return &res, nil
}

// TxStatusReceipts gets the status of a transaction signed by senderID,
// including its receipts.
func (c *Client) TxStatusReceipts(ctx context.Context, hash TxHash, senderID string) (*FinalExecutionOutcome, error) {
	var res FinalExecutionOutcome
	if err := c.call(ctx, &res, "EXPERIMENTAL_tx_status", hash.String(), senderID); err != nil {
		return nil, err
	}
	return &res, nil
}

// SignTransaction builds a transaction of actions from signerID to receiverID
// using the next nonce of signer's access key and the latest final block hash,
// and signs it.
func (c *Client) SignTransaction(
	ctx context.Context,
	signer keys.KeyPair,
	signerID string,
	receiverID string,
	actions ...transaction.Action,
) ([]byte, *transaction.SignedTransaction, error) {
	pk := signer.GetPublicKey()
	accessKey, err := c.ViewAccessKey(ctx, signerID, pk.String(), AtFinality(FinalityOptimistic))
	if err != nil {
		return nil, nil, fmt.Errorf("viewing access key: %v", err)
	}
	block, err := c.Block(ctx, AtFinality(FinalityFinal))
	if err != nil {
		return nil, nil, fmt.Errorf("getting final block: %v", err)
	}
	blockHash, err := util.BaseDecode(block.Header.Hash)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding block hash: %v", err)
	}
	t := transaction.NewTransaction(signerID, pk, accessKey.Nonce+1, receiverID, blockHash, actions)
	hash, st, err := transaction.SignTransaction(*t, signer)
	if err != nil {
		return nil, nil, fmt.Errorf("signing transaction: %v", err)
	}
	return hash, st, nil
}

// SignAndSendTransaction signs a transaction with SignTransaction and sends it
// with SendTransaction.
func (c *Client) SignAndSendTransaction(
	ctx context.Context,
	signer keys.KeyPair,
	signerID string,
	receiverID string,
	actions ...transaction.Action,
) (*FinalExecutionOutcome, error) {
	_, st, err := c.SignTransaction(ctx, signer, signerID, receiverID, actions...)
	if err != nil {
		return nil, err
	}
	return c.SendTransaction(ctx, st)
}

func encodeTransaction(tx SignedTransaction) (string, error) {
	bytes, err := tx.Encode()
	if err != nil {
		return "", fmt.Errorf("encoding transaction: %v", err)
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}
