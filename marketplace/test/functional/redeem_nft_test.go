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

func TestRedeemNft(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)
	s.listNft(t, s.Seller, nft, "1000")

	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/redeem", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	var sale marketplace.SaleResource
	require.NoError(t, raw.Extract("sale", &sale))
	assert.Equal(t, int8(0), sale.SaleState)

	// The NFT and update authority are back with the seller, no funds
	// moved.
	assert.Equal(t, int64(1), s.balance(t, nft, s.Seller.Address()))
	assert.Equal(t, int64(0), s.balance(t, s.Currency, sale.ID))

	status, raw = s.M.Get(t, nil,
		fmt.Sprintf("/pools/%s/nfts/%s/sale", s.Pool, nft))
	require.Equal(t, 200, status)
	var metadata marketplace.MetadataResource
	require.NoError(t, raw.Extract("metadata", &metadata))
	assert.False(t, metadata.PrimarySaleHappened)
	assert.Equal(t, s.Seller.Address(), metadata.UpdateAuthority)

	// A redeemed NFT can be listed again.
	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"1500"},
		})
	assert.Equal(t, 200, status)
}

func TestRedeemNftNotSeller(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)
	s.listNft(t, s.Seller, nft, "1000")

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/redeem", s.Pool, nft), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_seller", test.ErrorCode(t, raw))
}

func TestRedeemNftUnlisted(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)

	status, _ := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/redeem", s.Pool, nft), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_sale_state", test.ErrorCode(t, raw))
}
