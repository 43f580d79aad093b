// Package resolver maps a requested (wire encoding, network) pair to a
// live wRPC endpoint, by querying a configured pool of resolver
// services. The pool is a read-only snapshot captured at construction,
// so concurrent resolutions share it without locking.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kaspanet/kaswallet/network"
	"github.com/kaspanet/kaswallet/wrpc"
)

var (
	// ErrNoViableEndpoint is returned when no endpoint in the pool can
	// serve the requested encoding and network.
	ErrNoViableEndpoint = errors.New("no viable endpoint for the " +
		"requested encoding and network")
)

// DefaultURLs is the built-in pool of public resolver services, used
// when no explicit pool is configured.
var DefaultURLs = []string{
	"https://resolver.kaspa.stream",
	"https://resolver.kaspa.red",
	"https://resolver.kaspa.blue",
}

const (
	// defaultRequestTimeout is the default timeout for individual
	// lookup requests.
	defaultRequestTimeout = 10 * time.Second

	// maxResponseSize bounds how much of a lookup response is read.
	maxResponseSize = 1 << 16
)

// NodeDescriptor describes one resolved endpoint. It is recomputed on
// every resolution, since endpoint liveness changes over time.
type NodeDescriptor struct {
	// UID identifies the node within the resolver network.
	UID string `json:"uid"`

	// URL is the wRPC endpoint of the node.
	URL string `json:"url"`

	// ProviderName names the operator of the node, when advertised.
	ProviderName string `json:"provider_name,omitempty"`

	// ProviderURL links to the operator of the node, when advertised.
	ProviderURL string `json:"provider_url,omitempty"`
}

// Resolver selects live wRPC endpoints for (encoding, network)
// requests. All fields are fixed at construction; a Resolver is safe
// for concurrent use.
type Resolver struct {
	urls   []string
	tls    bool
	client *http.Client
}

// Option is a functional option for configuring the resolver.
type Option func(*Resolver)

// WithURLs overrides the built-in pool with an explicit list of
// resolver URLs, tried in the given order.
func WithURLs(urls []string) Option {
	return func(r *Resolver) {
		r.urls = make([]string, len(urls))
		copy(r.urls, urls)
	}
}

// WithTLS restricts resolution to TLS-terminated endpoints.
func WithTLS(tls bool) Option {
	return func(r *Resolver) {
		r.tls = tls
	}
}

// WithHTTPClient overrides the HTTP client used for lookups.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// New constructs a resolver over the built-in public pool, modified by
// the given options.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		urls: make([]string, len(DefaultURLs)),
		client: &http.Client{
			Timeout: defaultRequestTimeout,
		},
	}
	copy(r.urls, DefaultURLs)

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// URLs returns the configured pool, in construction order.
func (r *Resolver) URLs() []string {
	urls := make([]string, len(r.urls))
	copy(urls, r.urls)
	return urls
}

// GetNode resolves one endpoint serving the requested encoding and
// network. Pool entries are queried in construction order and the
// first entry returning a valid descriptor wins, so resolution is
// reproducible given equal endpoint health. Cancelling the context
// aborts the pending lookup.
func (r *Resolver) GetNode(ctx context.Context, encoding wrpc.Encoding,
	id network.ID) (*NodeDescriptor, error) {

	if len(r.urls) == 0 {
		return nil, fmt.Errorf("%w: empty pool", ErrNoViableEndpoint)
	}

	var lastErr error
	for _, base := range r.urls {
		node, err := r.fetchNode(ctx, base, encoding, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			log.Debugf("Resolver %s failed for %v/%v: %v", base,
				encoding, id, err)
			lastErr = err
			continue
		}

		log.Debugf("Resolved %v/%v to %s via %s", encoding, id,
			node.URL, base)

		return node, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrNoViableEndpoint, lastErr)
}

// GetURL resolves one endpoint and returns its bare URL.
func (r *Resolver) GetURL(ctx context.Context, encoding wrpc.Encoding,
	id network.ID) (string, error) {

	node, err := r.GetNode(ctx, encoding, id)
	if err != nil {
		return "", err
	}

	return node.URL, nil
}

// Connect resolves an endpoint and opens a wRPC transport session
// against it.
func (r *Resolver) Connect(ctx context.Context, encoding wrpc.Encoding,
	id network.ID) (*wrpc.Client, error) {

	node, err := r.GetNode(ctx, encoding, id)
	if err != nil {
		return nil, err
	}

	return wrpc.DialContext(ctx, node.URL, encoding)
}

// fetchNode performs the lookup against a single resolver service.
func (r *Resolver) fetchNode(ctx context.Context, base string,
	encoding wrpc.Encoding, id network.ID) (*NodeDescriptor, error) {

	tlsSegment := "any"
	if r.tls {
		tlsSegment = "tls"
	}
	url := fmt.Sprintf("%s/v2/wrpc/%s/%v/%v", base, tlsSegment,
		encoding, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolver returned status %d: %s",
			resp.StatusCode, body)
	}

	var node NodeDescriptor
	if err := json.Unmarshal(body, &node); err != nil {
		return nil, fmt.Errorf("unable to decode descriptor: %w", err)
	}
	if node.URL == "" {
		return nil, errors.New("descriptor is missing an endpoint url")
	}

	return &node, nil
}
