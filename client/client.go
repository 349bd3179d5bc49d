package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	logging "github.com/textileio/go-log/v2"
	"github.com/textileio/near-plugins/aurora"
	"github.com/textileio/near-plugins/metrics"
	"github.com/textileio/near-plugins/near"
	"go.opentelemetry.io/otel/metric/global"
)

var log = logging.Logger("client")

// ErrNoEndpoint is returned by Dial when no endpoint is configured.
var ErrNoEndpoint = errors.New("at least one of the near or aurora endpoints is required")

// Config configures Dial.
type Config struct {
	NearEndpoint   string
	AuroraEndpoint string
	// DialTimeout bounds every HTTP request. Zero means no timeout.
	DialTimeout time.Duration
	// Instrument records call counts and durations with the global meter.
	Instrument bool
}

// Client bundles the NEAR and Aurora clients. Either may be nil if its
// endpoint was not configured.
type Client struct {
	Near   *near.Client
	Aurora *aurora.Client

	rpcClients []*rpc.Client
}

// Dial connects to the configured endpoints.
func Dial(ctx context.Context, config Config) (*Client, error) {
	if config.NearEndpoint == "" && config.AuroraEndpoint == "" {
		return nil, ErrNoEndpoint
	}
	var nearRPC, auroraRPC *rpc.Client
	if config.NearEndpoint != "" {
		var err error
		nearRPC, err = dial(ctx, config.NearEndpoint, config.DialTimeout)
		if err != nil {
			return nil, fmt.Errorf("dialing near endpoint: %v", err)
		}
	}
	if config.AuroraEndpoint != "" {
		var err error
		auroraRPC, err = dial(ctx, config.AuroraEndpoint, config.DialTimeout)
		if err != nil {
			if nearRPC != nil {
				nearRPC.Close()
			}
			return nil, fmt.Errorf("dialing aurora endpoint: %v", err)
		}
	}
	c, err := newClient(nearRPC, auroraRPC, config.Instrument)
	if err != nil {
		return nil, err
	}
	log.Debugf("dialed near=%q aurora=%q", config.NearEndpoint, config.AuroraEndpoint)
	return c, nil
}

// New creates a Client from existing connections. Either may be nil.
// The connections are closed by Close.
func New(nearRPC, auroraRPC *rpc.Client) (*Client, error) {
	return newClient(nearRPC, auroraRPC, false)
}

func newClient(nearRPC, auroraRPC *rpc.Client, instrument bool) (*Client, error) {
	c := &Client{}
	if nearRPC != nil {
		var requester near.Requester = nearRPC
		if instrument {
			requester = metrics.NewRequester(nearRPC, global.Meter("near"))
		}
		nc, err := near.NewClient(&near.Config{RPCClient: requester})
		if err != nil {
			return nil, fmt.Errorf("creating near client: %v", err)
		}
		c.Near = nc
		c.rpcClients = append(c.rpcClients, nearRPC)
	}
	if auroraRPC != nil {
		config := &aurora.Config{RPCClient: auroraRPC}
		if instrument {
			config.Requester = metrics.NewRequester(auroraRPC, global.Meter("aurora"))
		}
		ac, err := aurora.NewClient(config)
		if err != nil {
			return nil, fmt.Errorf("creating aurora client: %v", err)
		}
		c.Aurora = ac
		c.rpcClients = append(c.rpcClients, auroraRPC)
	}
	return c, nil
}

// Close closes the underlying connections.
func (c *Client) Close() {
	for _, rc := range c.rpcClients {
		rc.Close()
	}
}

func dial(ctx context.Context, endpoint string, timeout time.Duration) (*rpc.Client, error) {
	if timeout > 0 && strings.HasPrefix(endpoint, "http") {
		return rpc.DialHTTPWithClient(endpoint, &http.Client{Timeout: timeout})
	}
	return rpc.DialContext(ctx, endpoint)
}
