package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kaspanet/kaswallet/network"
	"github.com/kaspanet/kaswallet/wrpc"
	"github.com/stretchr/testify/require"
)

// newResolverServer spins up a lookup service that answers the given
// path with the given descriptor.
func newResolverServer(t *testing.T, wantPath string,
	node *NodeDescriptor) *httptest.Server {

	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, wantPath, r.URL.Path)
			require.NoError(t, json.NewEncoder(w).Encode(node))
		},
	))
	t.Cleanup(srv.Close)

	return srv
}

func mainnetID(t *testing.T) network.ID {
	t.Helper()

	id, err := network.IDFromType(network.Mainnet)
	require.NoError(t, err)

	return id
}

// TestGetNode checks a successful lookup, including the request path
// the resolver service is queried with.
func TestGetNode(t *testing.T) {
	t.Parallel()

	want := &NodeDescriptor{
		UID:          "node-1",
		URL:          "wss://node-1.example:17110",
		ProviderName: "example operator",
	}
	srv := newResolverServer(t, "/v2/wrpc/any/borsh/mainnet", want)

	r := New(WithURLs([]string{srv.URL}))
	require.Equal(t, []string{srv.URL}, r.URLs())

	node, err := r.GetNode(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.NoError(t, err)
	require.Equal(t, want, node)

	url, err := r.GetURL(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.NoError(t, err)
	require.Equal(t, want.URL, url)
}

// TestGetNodeTLSAndNetworkPath checks that the TLS preference, the
// encoding and the suffixed network id all end up in the lookup path.
func TestGetNodeTLSAndNetworkPath(t *testing.T) {
	t.Parallel()

	want := &NodeDescriptor{UID: "node-2", URL: "wss://node-2.example"}
	srv := newResolverServer(t, "/v2/wrpc/tls/json/testnet-10", want)

	r := New(WithURLs([]string{srv.URL}), WithTLS(true))

	node, err := r.GetNode(
		context.Background(), wrpc.EncodingJSON,
		network.NewID(network.Testnet, 10),
	)
	require.NoError(t, err)
	require.Equal(t, want, node)
}

// TestGetNodeEmptyPool checks that an empty pool fails fast.
func TestGetNodeEmptyPool(t *testing.T) {
	t.Parallel()

	r := New(WithURLs(nil))

	_, err := r.GetNode(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.ErrorIs(t, err, ErrNoViableEndpoint)

	_, err = r.GetURL(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.ErrorIs(t, err, ErrNoViableEndpoint)

	_, err = r.Connect(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.ErrorIs(t, err, ErrNoViableEndpoint)
}

// TestFirstMatchPolicy checks that pool entries are tried in
// construction order: a failing entry is skipped, and among two healthy
// entries the first one wins.
func TestFirstMatchPolicy(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such network", http.StatusNotFound)
		},
	))
	t.Cleanup(failing.Close)

	first := newResolverServer(t, "/v2/wrpc/any/borsh/mainnet",
		&NodeDescriptor{UID: "first", URL: "wss://first.example"})
	second := newResolverServer(t, "/v2/wrpc/any/borsh/mainnet",
		&NodeDescriptor{UID: "second", URL: "wss://second.example"})

	r := New(WithURLs([]string{failing.URL, first.URL, second.URL}))

	node, err := r.GetNode(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.NoError(t, err)
	require.Equal(t, "first", node.UID)
}

// TestGetNodeAllFailing checks that exhausting the pool surfaces
// ErrNoViableEndpoint.
func TestGetNodeAllFailing(t *testing.T) {
	t.Parallel()

	notFound := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such network", http.StatusNotFound)
		},
	))
	t.Cleanup(notFound.Close)

	// A descriptor without an endpoint url is not viable either.
	empty := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{}"))
		},
	))
	t.Cleanup(empty.Close)

	r := New(WithURLs([]string{notFound.URL, empty.URL}))

	_, err := r.GetNode(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.ErrorIs(t, err, ErrNoViableEndpoint)
}

// TestGetNodeCancellation checks that an abandoned lookup returns the
// context error instead of hanging on the pool.
func TestGetNodeCancellation(t *testing.T) {
	t.Parallel()

	blocking := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		},
	))
	t.Cleanup(blocking.Close)

	r := New(WithURLs([]string{blocking.URL}))

	ctx, cancel := context.WithTimeout(
		context.Background(), 50*time.Millisecond,
	)
	defer cancel()

	_, err := r.GetNode(ctx, wrpc.EncodingBorsh, mainnetID(t))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestConnect checks the full resolve-then-dial path against an
// in-process websocket endpoint.
func TestConnect(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Serve control frames until the peer goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	mux.HandleFunc("/v2/wrpc/any/borsh/mainnet",
		func(w http.ResponseWriter, r *http.Request) {
			node := &NodeDescriptor{UID: "ws", URL: srv.URL}
			require.NoError(t, json.NewEncoder(w).Encode(node))
		},
	)

	r := New(WithURLs([]string{srv.URL}))

	client, err := r.Connect(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, wrpc.EncodingBorsh, client.Encoding())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx))
}

// TestConnectFailure checks that a resolved endpoint refusing the
// websocket handshake surfaces ErrConnectionFailed.
func TestConnectFailure(t *testing.T) {
	t.Parallel()

	// Plain HTTP endpoint that never upgrades.
	endpoint := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		},
	))
	t.Cleanup(endpoint.Close)

	srv := newResolverServer(t, "/v2/wrpc/any/borsh/mainnet",
		&NodeDescriptor{UID: "bad", URL: endpoint.URL})

	r := New(WithURLs([]string{srv.URL}))

	_, err := r.Connect(
		context.Background(), wrpc.EncodingBorsh, mainnetID(t),
	)
	require.ErrorIs(t, err, wrpc.ErrConnectionFailed)
}

// TestDefaultPool checks that omitting the pool selects the built-in
// public resolvers, and that the snapshot cannot be mutated afterwards.
func TestDefaultPool(t *testing.T) {
	t.Parallel()

	r := New()
	require.Equal(t, DefaultURLs, r.URLs())

	urls := r.URLs()
	urls[0] = "mutated"
	require.Equal(t, DefaultURLs, r.URLs())
}
