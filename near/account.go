package near

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

// ViewAccount queries information about an account.
func (c *Client) ViewAccount(ctx context.Context, accountID string, ref BlockReference) (*AccountView, error) {
	var res AccountView
	q := QueryRequest{
		RequestType: "view_account",
		AccountID:   accountID,
		Block:       ref,
	}
	if err := c.Query(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ViewState queries the contract state of an account for keys starting with prefix.
func (c *Client) ViewState(ctx context.Context, accountID string, prefix []byte, ref BlockReference) (*ViewStateResult, error) {
	var res ViewStateResult
	q := QueryRequest{
		RequestType:  "view_state",
		AccountID:    accountID,
		PrefixBase64: base64.StdEncoding.EncodeToString(prefix),
		Block:        ref,
	}
	if err := c.Query(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ViewAccessKey queries a single access key of an account.
func (c *Client) ViewAccessKey(
	ctx context.Context,
	accountID string,
	publicKey string,
	ref BlockReference,
) (*AccessKeyView, error) {
	var res AccessKeyView
	q := QueryRequest{
		RequestType: "view_access_key",
		AccountID:   accountID,
		PublicKey:   publicKey,
		Block:       ref,
	}
	if err := c.Query(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ViewAccessKeyList queries all access keys of an account.
func (c *Client) ViewAccessKeyList(ctx context.Context, accountID string, ref BlockReference) (*AccessKeyList, error) {
	var res AccessKeyList
	q := QueryRequest{
		RequestType: "view_access_key_list",
		AccountID:   accountID,
		Block:       ref,
	}
	if err := c.Query(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ViewCode queries the contract code deployed to an account.
func (c *Client) ViewCode(ctx context.Context, accountID string, ref BlockReference) (*ContractCodeView, error) {
	var res ContractCodeView
	q := QueryRequest{
		RequestType: "view_code",
		AccountID:   accountID,
		Block:       ref,
	}
	if err := c.Query(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CallFunction calls a view method on a contract. args must be JSON encodable;
// nil sends an empty object.
func (c *Client) CallFunction(
	ctx context.Context,
	accountID string,
	methodName string,
	args interface{},
	ref BlockReference,
) (*CallFunctionResult, error) {
	if args == nil {
		args = make(map[string]interface{})
	}
	bytes, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	var res CallFunctionResult
	q := QueryRequest{
		RequestType: "call_function",
		AccountID:   accountID,
		MethodName:  methodName,
		ArgsBase64:  base64.StdEncoding.EncodeToString(bytes),
		Block:       ref,
	}
	if err := c.Query(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
