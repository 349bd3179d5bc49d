package aurora

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	logging "github.com/textileio/go-log/v2"
)

var (
	log = logging.Logger("aurora")

	errNoRPCClient = errors.New("rpc client is required")
)

// Requester sends JSON-RPC requests.
type Requester interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Config configures a Client.
type Config struct {
	// RPCClient is the connection to the Aurora endpoint. It backs the
	// embedded ethclient.Client.
	RPCClient *rpc.Client
	// Requester optionally overrides RPCClient for the Aurora specific
	// methods, e.g. to instrument them.
	Requester Requester
}

// Client talks to an Aurora endpoint. Ethereum standard methods are provided
// by the embedded ethclient.Client.
type Client struct {
	*ethclient.Client

	requester Requester
}

// NewClient creates a new Client.
func NewClient(config *Config) (*Client, error) {
	if config == nil || config.RPCClient == nil {
		return nil, errNoRPCClient
	}
	var requester Requester = config.RPCClient
	if config.Requester != nil {
		requester = config.Requester
	}
	return &Client{
		Client:    ethclient.NewClient(config.RPCClient),
		requester: requester,
	}, nil
}

// ParityPendingTransactions returns the transactions pending in the node's pool.
func (c *Client) ParityPendingTransactions(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "parity_pendingTransactions")
}

// TxpoolStatus returns the number of pending and queued transactions.
func (c *Client) TxpoolStatus(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "txpool_status")
}

// TxpoolInspect returns a textual summary of the pending and queued transactions.
func (c *Client) TxpoolInspect(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "txpool_inspect")
}

// TxpoolContent returns the pending and queued transactions.
func (c *Client) TxpoolContent(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "txpool_content")
}

func (c *Client) call(ctx context.Context, method string) (json.RawMessage, error) {
	log.Debugf("calling %s", method)
	var res json.RawMessage
	if err := c.requester.CallContext(ctx, &res, method, []interface{}{}...); err != nil {
		log.Debugf("calling %s: %v", method, err)
		return nil, err
	}
	return res, nil
}
