package functional

import (
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/curio/marketplace/marketplace/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellAndBuyPrimary(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "500", model.CreatorList{
		{Address: s.Seller.Address(), Verified: false, Share: 100},
	})

	sale := s.listNft(t, s.Seller, nft, "1000")
	assert.Equal(t, int8(1), sale.SaleState)
	assert.Equal(t, s.Seller.Address(), sale.Seller)
	assert.Equal(t, int64(1000), sale.Price)
	require.NotNil(t, sale.Pot)
	assert.True(t, sale.Pot.IsPrimary)
	assert.True(t, sale.Pot.SellerVerified)
	assert.False(t, sale.Pot.IsUsed)

	// The NFT moved into escrow.
	assert.Equal(t, int64(0), s.balance(t, nft, s.Seller.Address()))
	assert.Equal(t, int64(1), s.balance(t, nft, sale.ID))

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)
	require.NoError(t, raw.Extract("sale", &sale))
	assert.Equal(t, int8(2), sale.SaleState)
	require.NotNil(t, sale.Pot)
	assert.True(t, sale.Pot.IsUsed)

	// The buyer paid and holds the NFT; the payment sits in escrow.
	assert.Equal(t, int64(1), s.balance(t, nft, s.Buyer.Address()))
	assert.Equal(t, int64(99000), s.balance(t, s.Currency, s.Buyer.Address()))
	assert.Equal(t, int64(1000), s.balance(t, s.Currency, sale.ID))

	// The primary sale is flagged on the metadata.
	status, raw = s.M.Get(t, nil,
		fmt.Sprintf("/pools/%s/nfts/%s/sale", s.Pool, nft))
	require.Equal(t, 200, status)
	var metadata marketplace.MetadataResource
	require.NoError(t, raw.Extract("metadata", &metadata))
	assert.True(t, metadata.PrimarySaleHappened)
	assert.Equal(t, s.Buyer.Address(), metadata.UpdateAuthority)
}

func TestBuyOwnListing(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)
	s.listNft(t, s.Seller, nft, "1000")

	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_bidder", test.ErrorCode(t, raw))
}

func TestBuyInsufficientBalance(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)
	s.listNft(t, s.Seller, nft, "200000")

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "not_enough_token_amount", test.ErrorCode(t, raw))

	// Nothing moved.
	assert.Equal(t, int64(100000),
		s.balance(t, s.Currency, s.Buyer.Address()))
	assert.Equal(t, int64(0), s.balance(t, nft, s.Buyer.Address()))
}

func TestBuyUnlisted(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)

	status, _ := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_sale_state", test.ErrorCode(t, raw))
}

func TestSellExceedsMaxPrice(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)

	status, _ := s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/nfts/%s/max_price", s.Pool, nft), url.Values{
			"max_price": {"500"},
		})
	require.Equal(t, 200, status)

	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"600"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_price", test.ErrorCode(t, raw))

	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"500"},
		})
	assert.Equal(t, 200, status)
}

func TestSellPriceTooLarge(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)

	status, _ := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	// One above the largest price whose fee products fit in an int64.
	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {strconv.FormatInt(model.MaxSalePrice+1, 10)},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_price", test.ErrorCode(t, raw))

	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {strconv.FormatInt(model.MaxSalePrice, 10)},
		})
	assert.Equal(t, 200, status)
}

func TestSellNotHolder(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)

	status, _ := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"1000"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_token_account", test.ErrorCode(t, raw))
}

func TestInitSaleManagerTwice(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)

	status, _ := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	require.Equal(t, 201, status)

	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/manager", s.Pool, nft), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "already_trading", test.ErrorCode(t, raw))
}

func TestSellWhileListed(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "0", nil)
	s.listNft(t, s.Seller, nft, "1000")

	status, raw := s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"2000"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_sale_state", test.ErrorCode(t, raw))
}

func TestRelistAfterSale(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "500", nil)
	s.listNft(t, s.Seller, nft, "1000")

	status, _ := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	// The buyer relists: this time the sale is secondary.
	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"2000"},
		})
	require.Equal(t, 200, status)

	var sale marketplace.SaleResource
	require.NoError(t, raw.Extract("sale", &sale))
	assert.Equal(t, int8(1), sale.SaleState)
	assert.Equal(t, s.Buyer.Address(), sale.Seller)
	require.NotNil(t, sale.Pot)
	assert.False(t, sale.Pot.IsPrimary)
	assert.False(t, sale.Pot.SellerVerified)
}
