package explorer

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCMethods names the JSON-RPC methods used by RPCClient.
type RPCMethods struct {
	MappingValue string
	LatestHeight string
}

// DefaultRPCMethods matches the Aleo JSON-RPC gateway.
var DefaultRPCMethods = RPCMethods{
	MappingValue: "getMappingValue",
	LatestHeight: "latestHeight",
}

// RPCClient reads mapping values over JSON-RPC 2.0.
type RPCClient struct {
	rpcClient *rpc.Client
	methods   RPCMethods
}

// NewRPCClient dials the JSON-RPC endpoint.
func NewRPCClient(ctx context.Context, rpcURL string, methods RPCMethods) (*RPCClient, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	if methods.MappingValue == "" {
		methods.MappingValue = DefaultRPCMethods.MappingValue
	}
	if methods.LatestHeight == "" {
		methods.LatestHeight = DefaultRPCMethods.LatestHeight
	}

	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return &RPCClient{rpcClient: rpcClient, methods: methods}, nil
}

// MappingValue calls the mapping method with (program, mapping, key).
func (c *RPCClient) MappingValue(ctx context.Context, program, mapping, key string) (string, error) {
	var value *string
	if err := c.rpcClient.CallContext(ctx, &value, c.methods.MappingValue, program, mapping, key); err != nil {
		return "", fmt.Errorf("%s: %w", c.methods.MappingValue, err)
	}
	if value == nil {
		return "", ErrNotFound
	}
	return *value, nil
}

// LatestHeight returns the latest block height.
func (c *RPCClient) LatestHeight(ctx context.Context) (uint64, error) {
	var height uint64
	if err := c.rpcClient.CallContext(ctx, &height, c.methods.LatestHeight); err != nil {
		return 0, fmt.Errorf("%s: %w", c.methods.LatestHeight, err)
	}
	return height, nil
}

// Close closes the underlying RPC client.
func (c *RPCClient) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}
