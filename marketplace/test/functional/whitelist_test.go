package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWhitelistSimple(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	// The presale is live after setup; pause it to alter the whitelist.
	status, _ := s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/presale", s.Pool), url.Values{
			"live": {"false"},
		})
	require.Equal(t, 200, status)

	bidder := s.M.CreateUser(t)

	status, raw := s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/clients", s.Pool), url.Values{
			"bidder":      {bidder.Address()},
			"amount":      {"3"},
			"whitelisted": {"true"},
		})
	require.Equal(t, 201, status)

	var client marketplace.ClientResource
	require.NoError(t, raw.Extract("client", &client))
	assert.Equal(t, bidder.Address(), client.Owner)
	assert.Equal(t, int64(3), client.Amount)
	assert.True(t, client.Whitelisted)

	// Registering the same bidder twice fails.
	status, raw = s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/clients", s.Pool), url.Values{
			"bidder":      {bidder.Address()},
			"amount":      {"1"},
			"whitelisted": {"true"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_bidder", test.ErrorCode(t, raw))

	status, raw = s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/clients/%s", s.Pool, bidder.Address()),
		url.Values{
			"amount":      {"1"},
			"whitelisted": {"false"},
		})
	require.Equal(t, 200, status)
	require.NoError(t, raw.Extract("client", &client))
	assert.Equal(t, int64(1), client.Amount)
	assert.False(t, client.Whitelisted)
}

func TestSetWhitelistPresaleLive(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	bidder := s.M.CreateUser(t)

	status, raw := s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/clients", s.Pool), url.Values{
			"bidder":      {bidder.Address()},
			"amount":      {"1"},
			"whitelisted": {"true"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "presale_live", test.ErrorCode(t, raw))
}

func TestSetWhitelistNotOwner(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/clients", s.Pool), url.Values{
			"bidder":      {s.Buyer.Address()},
			"amount":      {"1"},
			"whitelisted": {"true"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_pool_account", test.ErrorCode(t, raw))
}

func TestSetAuthority(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	newOwner := s.M.CreateUser(t)

	status, raw := s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/authority", s.Pool), url.Values{
			"new_owner": {newOwner.Address()},
		})
	require.Equal(t, 200, status)

	var pool marketplace.PoolResource
	require.NoError(t, raw.Extract("pool", &pool))
	assert.Equal(t, newOwner.Address(), pool.Owner)

	// The previous owner lost control.
	status, raw = s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/presale", s.Pool), url.Values{
			"live": {"false"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_pool_account", test.ErrorCode(t, raw))

	status, _ = s.M.Post(t, newOwner,
		fmt.Sprintf("/pools/%s/presale", s.Pool), url.Values{
			"live": {"false"},
		})
	assert.Equal(t, 200, status)
}
