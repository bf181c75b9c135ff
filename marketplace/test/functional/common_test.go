package functional

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/curio/marketplace/marketplace/test"
	"github.com/stretchr/testify/require"
)

// scenario carries a marketplace with a funded buyer and a whitelisted
// seller, ready to mint NFTs.
type scenario struct {
	M      *test.Marketplace
	Owner  *test.User
	Seller *test.User
	Buyer  *test.User

	Currency string
	Pool     string
}

func setupScenario(
	t *testing.T,
) *scenario {
	m := test.CreateMarketplace(t)

	s := scenario{
		M:      m,
		Owner:  m.CreateUser(t),
		Seller: m.CreateUser(t),
		Buyer:  m.CreateUser(t),
	}

	status, raw := m.Post(t, s.Owner, "/mints", url.Values{
		"decimals": {"2"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))
	s.Currency = mint.ID

	status, raw = m.Post(t, s.Owner, "/pools", url.Values{
		"sale_mint": {s.Currency},
	})
	require.Equal(t, 201, status)
	var pool marketplace.PoolResource
	require.NoError(t, raw.Extract("pool", &pool))
	s.Pool = pool.ID

	status, _ = m.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/clients", s.Pool), url.Values{
			"bidder":      {s.Seller.Address()},
			"amount":      {"2"},
			"whitelisted": {"true"},
		})
	require.Equal(t, 201, status)

	status, _ = m.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/presale", s.Pool), url.Values{
			"live": {"true"},
		})
	require.Equal(t, 200, status)

	status, _ = m.Post(t, s.Owner,
		fmt.Sprintf("/mints/%s/issue", s.Currency), url.Values{
			"amount":      {"100000"},
			"destination": {s.Buyer.Address()},
		})
	require.Equal(t, 200, status)

	return &s
}

// creatorsJSON serializes a creator list for form submission.
func creatorsJSON(
	t *testing.T,
	creators model.CreatorList,
) string {
	b, err := json.Marshal(creators)
	require.NoError(t, err)
	return string(b)
}

// createNft mints a fresh NFT to the scenario's seller with the given fee
// and creators and returns the NFT mint token.
func (s *scenario) createNft(
	t *testing.T,
	fee string,
	creators model.CreatorList,
) string {
	status, raw := s.M.Post(t, s.Seller, "/mints", url.Values{
		"decimals": {"0"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))

	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/mint", s.Pool, mint.ID), url.Values{
			"name":                    {"Test NFT"},
			"symbol":                  {"TST"},
			"uri":                     {"https://example.com/nft.json"},
			"seller_fee_basis_points": {fee},
			"creators":                {creatorsJSON(t, creators)},
		})
	require.Equal(t, 201, status)

	return mint.ID
}

// listNft initializes the sale manager and lists the NFT at price for the
// given seller.
func (s *scenario) listNft(
	t *testing.T,
	seller *test.User,
	nft string,
	price string,
) marketplace.SaleResource {
	status, _ := s.M.Post(t, seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	status, raw := s.M.Post(t, seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {price},
		})
	require.Equal(t, 200, status)

	var sale marketplace.SaleResource
	require.NoError(t, raw.Extract("sale", &sale))
	return sale
}

// balance retrieves the balance of an address for a mint, 0 if no account
// exists yet.
func (s *scenario) balance(
	t *testing.T,
	mint string,
	address string,
) int64 {
	status, raw := s.M.Get(t, nil,
		fmt.Sprintf("/balances/%s/%s", mint, address))
	if status == 404 {
		return 0
	}
	require.Equal(t, 200, status)

	var balance marketplace.BalanceResource
	require.NoError(t, raw.Extract("balance", &balance))
	return balance.Amount
}
