package near

import (
	"context"

	"github.com/textileio/near-plugins/near/internal/types"
)

const changesMethod = "EXPERIMENTAL_changes"

// AccessKeyChanges gets the changes to all access keys of accountIDs.
func (c *Client) AccessKeyChanges(ctx context.Context, accountIDs []string, ref BlockReference) (*ChangeResult, error) {
	return c.accountChanges(ctx, "all_access_key_changes", accountIDs, ref)
}

// SingleAccessKeyChanges gets the changes to the given access keys.
func (c *Client) SingleAccessKeyChanges(
	ctx context.Context,
	accessKeys []AccessKeyWithPublicKey,
	ref BlockReference,
) (*ChangeResult, error) {
	block, err := ref.request()
	if err != nil {
		return nil, err
	}
	if accessKeys == nil {
		accessKeys = []AccessKeyWithPublicKey{}
	}
	req := types.KeyChangesRequest{
		ChangesType:  "single_access_key_changes",
		Keys:         accessKeys,
		BlockRequest: block,
	}
	var res ChangeResult
	if err := c.callNamed(ctx, &res, changesMethod, req); err != nil {
		return nil, err
	}
	return &res, nil
}

// AccountChanges gets the changes to accountIDs.
func (c *Client) AccountChanges(ctx context.Context, accountIDs []string, ref BlockReference) (*ChangeResult, error) {
	return c.accountChanges(ctx, "account_changes", accountIDs, ref)
}

// ContractStateChanges gets the changes to the contract state of accountIDs.
// keyPrefixBase64 must already be base64 encoded; an empty prefix matches every key.
func (c *Client) ContractStateChanges(
	ctx context.Context,
	accountIDs []string,
	ref BlockReference,
	keyPrefixBase64 string,
) (*ChangeResult, error) {
	block, err := ref.request()
	if err != nil {
		return nil, err
	}
	req := types.DataChangesRequest{
		ChangesType:     "data_changes",
		AccountIDs:      nonNil(accountIDs),
		KeyPrefixBase64: keyPrefixBase64,
		BlockRequest:    block,
	}
	var res ChangeResult
	if err := c.callNamed(ctx, &res, changesMethod, req); err != nil {
		return nil, err
	}
	return &res, nil
}

// ContractCodeChanges gets the changes to the contract code of accountIDs.
// Changed code is returned as base64 encoded wasm.
func (c *Client) ContractCodeChanges(ctx context.Context, accountIDs []string, ref BlockReference) (*ChangeResult, error) {
	return c.accountChanges(ctx, "contract_code_changes", accountIDs, ref)
}

func (c *Client) accountChanges(
	ctx context.Context,
	changesType string,
	accountIDs []string,
	ref BlockReference,
) (*ChangeResult, error) {
	block, err := ref.request()
	if err != nil {
		return nil, err
	}
	req := types.AccountChangesRequest{
		ChangesType:  changesType,
		AccountIDs:   nonNil(accountIDs),
		BlockRequest: block,
	}
	var res ChangeResult
	if err := c.callNamed(ctx, &res, changesMethod, req); err != nil {
		return nil, err
	}
	return &res, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
