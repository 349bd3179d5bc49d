package near

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/textileio/near-plugins/near/internal/types"
)

// QueryRequest is a structured query, e.g. view_account or call_function.
type QueryRequest struct {
	RequestType  string
	AccountID    string
	PublicKey    string
	MethodName   string
	ArgsBase64   string
	PrefixBase64 string
	IncludeProof bool
	Block        BlockReference
}

func (q QueryRequest) request() (types.QueryRequest, error) {
	block, err := q.Block.request()
	if err != nil {
		return types.QueryRequest{}, err
	}
	req := types.QueryRequest{
		RequestType:  q.RequestType,
		AccountID:    q.AccountID,
		PublicKey:    q.PublicKey,
		MethodName:   q.MethodName,
		IncludeProof: q.IncludeProof,
		BlockRequest: block,
	}
	if q.RequestType == "call_function" || q.ArgsBase64 != "" {
		args := q.ArgsBase64
		req.ArgsBase64 = &args
	}
	if q.RequestType == "view_state" || q.PrefixBase64 != "" {
		prefix := q.PrefixBase64
		req.PrefixBase64 = &prefix
	}
	return req, nil
}

// Query sends a structured query and decodes the result into result, which
// may be nil. If the node reports an error inside the result, a *TypedError is
// returned.
func (c *Client) Query(ctx context.Context, q QueryRequest, result interface{}) error {
	req, err := q.request()
	if err != nil {
		return err
	}
	var raw json.RawMessage
	if err := c.callNamed(ctx, &raw, "query", req); err != nil {
		return err
	}
	return decodeQueryResult(raw, result)
}

// QueryPath sends a query in the legacy path form, e.g. ("account/alice.near", "").
func (c *Client) QueryPath(ctx context.Context, path, data string, result interface{}) error {
	var raw json.RawMessage
	if err := c.call(ctx, &raw, "query", path, data); err != nil {
		return err
	}
	return decodeQueryResult(raw, result)
}

func decodeQueryResult(raw json.RawMessage, result interface{}) error {
	if err := typedErrorFromResult(raw); err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("unmarshaling query result: %v", err)
	}
	return nil
}
