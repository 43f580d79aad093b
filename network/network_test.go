package network

import (
	"testing"

	"github.com/kaspanet/kaswallet/address"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// TestResolveID checks the two-tier resolution policy: canonical
// identifiers for unique types, mandatory suffixes everywhere else.
func TestResolveID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		token  string
		suffix fn.Option[uint32]
		want   string
		err    error
	}{
		{
			name:   "canonical mainnet",
			token:  "mainnet",
			suffix: fn.None[uint32](),
			want:   "mainnet",
		},
		{
			name:   "mainnet ignores suffix",
			token:  "mainnet",
			suffix: fn.Some(uint32(7)),
			want:   "mainnet",
		},
		{
			name:   "devnet without suffix",
			token:  "devnet",
			suffix: fn.None[uint32](),
			err:    ErrSuffixRequired,
		},
		{
			name:   "devnet with suffix",
			token:  "devnet",
			suffix: fn.Some(uint32(5)),
			want:   "devnet-5",
		},
		{
			name:   "testnet with suffix",
			token:  "testnet",
			suffix: fn.Some(uint32(10)),
			want:   "testnet-10",
		},
		{
			name:   "simnet without suffix",
			token:  "simnet",
			suffix: fn.None[uint32](),
			err:    ErrSuffixRequired,
		},
		{
			name:   "unknown type",
			token:  "bogus",
			suffix: fn.None[uint32](),
			err:    ErrInvalidNetworkType,
		},
		{
			name:   "case insensitive token",
			token:  "MainNet",
			suffix: fn.None[uint32](),
			want:   "mainnet",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, err := ResolveID(tc.token, tc.suffix)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, id.String())
		})
	}
}

// TestParseID checks parsing of the composite string form.
func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := ParseID("testnet-10")
	require.NoError(t, err)
	require.Equal(t, Testnet, id.Type())
	require.Equal(t, uint32(10), id.Suffix().UnwrapOr(0))
	require.Equal(t, "testnet-10", id.String())

	id, err = ParseID("mainnet")
	require.NoError(t, err)
	require.Equal(t, Mainnet, id.Type())
	require.True(t, id.Suffix().IsNone())

	_, err = ParseID("testnet")
	require.ErrorIs(t, err, ErrSuffixRequired)

	_, err = ParseID("testnet-ten")
	require.ErrorIs(t, err, ErrInvalidNetworkID)

	_, err = ParseID("bogus-5")
	require.ErrorIs(t, err, ErrInvalidNetworkType)
}

// TestTypePrefixes checks the network to address-prefix mapping.
func TestTypePrefixes(t *testing.T) {
	t.Parallel()

	require.Equal(t, address.PrefixMainnet, Mainnet.Prefix())
	require.Equal(t, address.PrefixTestnet, Testnet.Prefix())
	require.Equal(t, address.PrefixDevnet, Devnet.Prefix())
	require.Equal(t, address.PrefixSimnet, Simnet.Prefix())

	id := NewID(Testnet, 11)
	require.Equal(t, address.PrefixTestnet, id.Prefix())
}

// TestIDFromType checks canonical construction directly.
func TestIDFromType(t *testing.T) {
	t.Parallel()

	id, err := IDFromType(Mainnet)
	require.NoError(t, err)
	require.Equal(t, "mainnet", id.String())

	for _, netType := range []Type{Testnet, Devnet, Simnet} {
		_, err := IDFromType(netType)
		require.ErrorIs(t, err, ErrSuffixRequired)
	}
}
