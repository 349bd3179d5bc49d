package rpctest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// Request is a JSON-RPC request received by a Node.
type Request struct {
	Method string
	Params json.RawMessage
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type request struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type resultResponse struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
}

type errorResponse struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   *Error          `json:"error"`
}

// Node is a fake JSON-RPC node serving canned results per method and
// recording every request it receives.
type Node struct {
	server *httptest.Server

	lk       sync.Mutex
	results  map[string]interface{}
	errors   map[string]*Error
	requests []Request
}

// NewNode starts a Node. It is closed when the test finishes.
func NewNode(t *testing.T) *Node {
	n := &Node{
		results: make(map[string]interface{}),
		errors:  make(map[string]*Error),
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.handle))
	t.Cleanup(n.server.Close)
	return n
}

// URL returns the endpoint of the Node.
func (n *Node) URL() string {
	return n.server.URL
}

// Dial returns an rpc.Client connected to the Node. It is closed when the test finishes.
func (n *Node) Dial(t *testing.T) *rpc.Client {
	c, err := rpc.DialHTTP(n.server.URL)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// SetResult sets the result returned for method. result is JSON encoded;
// json.RawMessage is returned verbatim and nil is returned as null.
func (n *Node) SetResult(method string, result interface{}) {
	n.lk.Lock()
	defer n.lk.Unlock()
	delete(n.errors, method)
	n.results[method] = result
}

// SetError makes method fail with a JSON-RPC error.
func (n *Node) SetError(method string, code int, msg string) {
	n.lk.Lock()
	defer n.lk.Unlock()
	delete(n.results, method)
	n.errors[method] = &Error{Code: code, Message: msg}
}

// Requests returns the requests received so far.
func (n *Node) Requests() []Request {
	n.lk.Lock()
	defer n.lk.Unlock()
	return append([]Request(nil), n.requests...)
}

// LastRequest returns the latest request received, failing the test if there is none.
func (n *Node) LastRequest(t *testing.T) Request {
	reqs := n.Requests()
	require.NotEmpty(t, reqs, "no request received")
	return reqs[len(reqs)-1]
}

func (n *Node) handle(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.lk.Lock()
	n.requests = append(n.requests, Request{Method: req.Method, Params: req.Params})
	rpcErr, hasErr := n.errors[req.Method]
	result, hasResult := n.results[req.Method]
	n.lk.Unlock()

	var res interface{}
	switch {
	case hasErr:
		res = errorResponse{Version: "2.0", ID: req.ID, Error: rpcErr}
	case hasResult:
		raw, err := json.Marshal(result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res = resultResponse{Version: "2.0", ID: req.ID, Result: raw}
	default:
		res = errorResponse{Version: "2.0", ID: req.ID, Error: &Error{Code: -32601, Message: "Method not found"}}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
