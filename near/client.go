package near

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
	logging "github.com/textileio/go-log/v2"
)

var log = logging.Logger("near")

// Requester dispatches a single JSON-RPC request and decodes its result.
// *rpc.Client satisfies it.
type Requester interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Config configures a Client.
type Config struct {
	RPCClient Requester
}

// Client communicates with the NEAR JSON-RPC API.
type Client struct {
	rpcClient Requester
}

// NewClient creates a new Client.
func NewClient(config *Config) (*Client, error) {
	if config == nil || config.RPCClient == nil {
		return nil, errNoRPCClient
	}
	return &Client{
		rpcClient: config.RPCClient,
	}, nil
}

// call sends positional params. NEAR expects an explicit params array, so an
// empty one is sent instead of omitting the field.
func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if args == nil {
		args = []interface{}{}
	}
	return c.dispatch(ctx, result, method, args...)
}

// callNamed sends params as a JSON object.
func (c *Client) callNamed(ctx context.Context, result interface{}, method string, params interface{}) error {
	return c.dispatch(ctx, result, method, rpc.NewNamedParams(params))
}

func (c *Client) dispatch(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	log.Debugf("calling %s", method)
	if err := c.rpcClient.CallContext(ctx, result, method, args...); err != nil {
		log.Debugf("calling %s: %v", method, err)
		return err
	}
	return nil
}
