package near

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const dataChangesResult = `{
	"block_hash": "abc",
	"changes": [{
		"cause": {"type": "receipt_processing", "receipt_hash": "r"},
		"type": "data_update",
		"change": {"account_id": "test.near", "key_base64": "YQ==", "value_base64": "Yg=="}
	}]
}`

func TestChanges(t *testing.T) {
	t.Parallel()

	accounts := []string{"a.near", "b.near"}
	tests := map[string]struct {
		call   func(c *Client) (*ChangeResult, error)
		params string
	}{
		"access keys": {
			call: func(c *Client) (*ChangeResult, error) {
				return c.AccessKeyChanges(ctx, accounts, AtFinality(FinalityFinal))
			},
			params: `{"changes_type":"all_access_key_changes","account_ids":["a.near","b.near"],"finality":"final"}`,
		},
		"single access keys": {
			call: func(c *Client) (*ChangeResult, error) {
				return c.SingleAccessKeyChanges(ctx, []AccessKeyWithPublicKey{
					{AccountID: "a.near", PublicKey: "ed25519:abc"},
				}, AtHeight(7))
			},
			params: `{"changes_type":"single_access_key_changes","keys":[{"account_id":"a.near","public_key":"ed25519:abc"}],"block_id":7}`,
		},
		"accounts": {
			call: func(c *Client) (*ChangeResult, error) {
				return c.AccountChanges(ctx, accounts, AtHash("h"))
			},
			params: `{"changes_type":"account_changes","account_ids":["a.near","b.near"],"block_id":"h"}`,
		},
		"contract state": {
			call: func(c *Client) (*ChangeResult, error) {
				return c.ContractStateChanges(ctx, accounts, AtFinality(FinalityOptimistic), "YQ==")
			},
			params: `{"changes_type":"data_changes","account_ids":["a.near","b.near"],"key_prefix_base64":"YQ==","finality":"optimistic"}`,
		},
		"contract state without prefix": {
			call: func(c *Client) (*ChangeResult, error) {
				return c.ContractStateChanges(ctx, nil, AtFinality(FinalityFinal), "")
			},
			params: `{"changes_type":"data_changes","account_ids":[],"key_prefix_base64":"","finality":"final"}`,
		},
		"contract code": {
			call: func(c *Client) (*ChangeResult, error) {
				return c.ContractCodeChanges(ctx, accounts, AtHeight(0))
			},
			params: `{"changes_type":"contract_code_changes","account_ids":["a.near","b.near"],"block_id":0}`,
		},
	}
	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, node := makeClient(t)
			node.SetResult("EXPERIMENTAL_changes", json.RawMessage(dataChangesResult))

			res, err := test.call(c)
			require.NoError(t, err)
			require.Equal(t, "abc", res.BlockHash)
			require.Len(t, res.Changes, 1)
			require.Equal(t, "receipt_processing", res.Changes[0].Cause.Type)

			req := node.LastRequest(t)
			require.Equal(t, "EXPERIMENTAL_changes", req.Method)
			require.JSONEq(t, test.params, string(req.Params))
		})
	}
}

func TestDataChange(t *testing.T) {
	t.Parallel()

	var res ChangeResult
	require.NoError(t, json.Unmarshal([]byte(dataChangesResult), &res))

	var change DataChange
	require.NoError(t, json.Unmarshal(res.Changes[0].Change, &change))
	require.Equal(t, "test.near", change.AccountID)
	require.Equal(t, "YQ==", change.KeyBase64)
	require.Equal(t, "Yg==", change.ValueBase64)
}
