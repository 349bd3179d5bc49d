package near

import (
	"context"
	"fmt"
	"math/big"
)

// GetBlock is an alias of Block.
func (c *Client) GetBlock(ctx context.Context, ref BlockReference) (*BlockResult, error) {
	return c.Block(ctx, ref)
}

// GetBlockNumber returns the height of the block selected by ref.
func (c *Client) GetBlockNumber(ctx context.Context, ref BlockReference) (uint64, error) {
	block, err := c.Block(ctx, ref)
	if err != nil {
		return 0, err
	}
	return block.Header.Height, nil
}

// GetProtocolVersion returns the protocol version of the node, as reported.
func (c *Client) GetProtocolVersion(ctx context.Context) (string, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return "", err
	}
	return status.ProtocolVersion.String(), nil
}

// IsSyncing returns the sync info of the node if it is syncing, and nil otherwise.
// Use Status for the sync info regardless of the syncing state.
func (c *Client) IsSyncing(ctx context.Context) (*SyncInfo, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.SyncInfo.Syncing {
		return nil, nil
	}
	return &status.SyncInfo, nil
}

// GetCoinbase returns the account ids of the current validators of the node.
func (c *Client) GetCoinbase(ctx context.Context) ([]string, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]string, len(status.Validators))
	for i, v := range status.Validators {
		accounts[i] = v.AccountID
	}
	return accounts, nil
}

// GetGasPrice returns the gas price of the latest block.
func (c *Client) GetGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.GasPrice(ctx, BlockID{})
	if err != nil {
		return nil, err
	}
	return parseAmount(price.GasPrice)
}

// GetBalance returns the balance of accountID in yoctoNEAR at the block selected by ref.
func (c *Client) GetBalance(ctx context.Context, accountID string, ref BlockReference) (*big.Int, error) {
	account, err := c.ViewAccount(ctx, accountID, ref)
	if err != nil {
		return nil, err
	}
	return parseAmount(account.Amount)
}

// IsMining always returns ErrUnsupportedOperation.
func (c *Client) IsMining(context.Context) (bool, error) {
	return false, ErrUnsupportedOperation
}

// GetHashrate always returns ErrUnsupportedOperation.
func (c *Client) GetHashrate(context.Context) (uint64, error) {
	return 0, ErrUnsupportedOperation
}

// GetAccounts always returns ErrUnsupportedOperation.
func (c *Client) GetAccounts(context.Context) ([]string, error) {
	return nil, ErrUnsupportedOperation
}

func parseAmount(s string) (*big.Int, error) {
	amount, ok := (&big.Int{}).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parsing amount %q", s)
	}
	return amount, nil
}
