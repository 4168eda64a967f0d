// Package explorer reads raw program mapping values from an Aleo explorer or
// node. Values are returned as literal strings for the codec to decode.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when a mapping has no value for a key.
var ErrNotFound = errors.New("mapping value not found")

// Client reads program mapping values from an explorer or node.
type Client interface {
	MappingValue(ctx context.Context, program, mapping, key string) (string, error)
	LatestHeight(ctx context.Context) (uint64, error)
	Close()
}

// RESTClient talks to the explorer REST API:
//
//	GET {base}/{network}/program/{program}/mapping/{mapping}/{key}
//	GET {base}/{network}/block/height/latest
type RESTClient struct {
	baseURL    string
	network    string
	httpClient *http.Client
}

// NewRESTClient builds a RESTClient. A zero timeout means 15s.
func NewRESTClient(baseURL, network string, timeout time.Duration) (*RESTClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("explorer url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse explorer url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		network:    network,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// MappingValue returns the raw literal stored under key.
func (c *RESTClient) MappingValue(ctx context.Context, program, mapping, key string) (string, error) {
	endpoint := c.endpoint("program", program, "mapping", mapping, key)

	var value *string
	if err := c.getJSON(ctx, endpoint, &value); err != nil {
		return "", err
	}
	if value == nil {
		return "", ErrNotFound
	}
	return *value, nil
}

// LatestHeight returns the latest block height.
func (c *RESTClient) LatestHeight(ctx context.Context) (uint64, error) {
	var height uint64
	if err := c.getJSON(ctx, c.endpoint("block", "height", "latest"), &height); err != nil {
		return 0, err
	}
	return height, nil
}

func (c *RESTClient) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *RESTClient) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts)+2)
	escaped = append(escaped, c.baseURL)
	if c.network != "" {
		escaped = append(escaped, url.PathEscape(c.network))
	}
	for _, part := range parts {
		escaped = append(escaped, url.PathEscape(part))
	}
	return strings.Join(escaped, "/")
}

func (c *RESTClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Options selects and configures a Client transport.
type Options struct {
	Transport string
	URL       string
	Network   string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
	Methods   RPCMethods
}

// Dial builds the Client named by opts.Transport ("rest" or "jsonrpc"),
// wrapped in a CachedClient when opts.CacheTTL is positive.
func Dial(ctx context.Context, opts Options) (Client, error) {
	var client Client
	switch strings.ToLower(opts.Transport) {
	case "", "rest":
		rest, err := NewRESTClient(opts.URL, opts.Network, opts.Timeout)
		if err != nil {
			return nil, err
		}
		client = rest
	case "jsonrpc", "rpc":
		rpcClient, err := NewRPCClient(ctx, opts.URL, opts.Methods)
		if err != nil {
			return nil, fmt.Errorf("dial rpc: %w", err)
		}
		client = rpcClient
	default:
		return nil, fmt.Errorf("unsupported explorer transport: %s", opts.Transport)
	}

	if opts.CacheTTL > 0 {
		client = NewCachedClient(client, opts.CacheSize, opts.CacheTTL)
	}
	return client, nil
}
