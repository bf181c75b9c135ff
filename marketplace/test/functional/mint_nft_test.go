package functional

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/curio/marketplace/marketplace/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintNftSimple(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	status, raw := s.M.Post(t, s.Seller, "/mints", url.Values{
		"decimals": {"0"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))

	status, raw = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/mint", s.Pool, mint.ID), url.Values{
			"name":                    {"Test NFT"},
			"symbol":                  {"TST"},
			"uri":                     {"https://example.com/nft.json"},
			"seller_fee_basis_points": {"500"},
			"creators": {creatorsJSON(t, model.CreatorList{
				{Address: s.Seller.Address(), Verified: false, Share: 100},
			})},
		})
	require.Equal(t, 201, status)

	var nft marketplace.NftResource
	require.NoError(t, raw.Extract("nft", &nft))
	assert.Regexp(t, marketplace.IDRegexp, nft.ID)
	assert.WithinDuration(t,
		time.Now(), time.Unix(0, nft.Created*1000*1000), 2*time.Second)
	assert.Equal(t, s.Pool, nft.Pool)
	assert.Equal(t, mint.ID, nft.NftMint)
	assert.Equal(t, int64(0), nft.MaxPrice)

	var metadata marketplace.MetadataResource
	require.NoError(t, raw.Extract("metadata", &metadata))
	assert.Equal(t, "Test NFT", metadata.Name)
	assert.Equal(t, int64(500), metadata.SellerFeeBasisPoints)
	assert.True(t, metadata.MasterEdition)
	assert.False(t, metadata.PrimarySaleHappened)
	assert.Equal(t, s.Seller.Address(), metadata.UpdateAuthority)

	assert.Equal(t, int64(1), s.balance(t, mint.ID, s.Seller.Address()))
}

func TestMintNftPresaleNotLive(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	status, _ := s.M.Post(t, s.Owner,
		fmt.Sprintf("/pools/%s/presale", s.Pool), url.Values{
			"live": {"false"},
		})
	require.Equal(t, 200, status)

	status, raw := s.M.Post(t, s.Seller, "/mints", url.Values{
		"decimals": {"0"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))

	status, raw = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/mint", s.Pool, mint.ID), url.Values{
			"name":                    {"Test NFT"},
			"symbol":                  {"TST"},
			"uri":                     {"https://example.com/nft.json"},
			"seller_fee_basis_points": {"0"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "presale_not_live", test.ErrorCode(t, raw))
}

func TestMintNftNotWhitelisted(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	stranger := s.M.CreateUser(t)

	status, raw := s.M.Post(t, stranger, "/mints", url.Values{
		"decimals": {"0"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))

	status, raw = s.M.Post(t, stranger,
		fmt.Sprintf("/pools/%s/nfts/%s/mint", s.Pool, mint.ID), url.Values{
			"name":                    {"Test NFT"},
			"symbol":                  {"TST"},
			"uri":                     {"https://example.com/nft.json"},
			"seller_fee_basis_points": {"0"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "not_whitelisted", test.ErrorCode(t, raw))
}

func TestMintNftAllowanceExhausted(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	// The seller's allowance is 2.
	s.createNft(t, "0", nil)
	s.createNft(t, "0", nil)

	status, raw := s.M.Post(t, s.Seller, "/mints", url.Values{
		"decimals": {"0"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))

	status, raw = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/mint", s.Pool, mint.ID), url.Values{
			"name":                    {"Test NFT"},
			"symbol":                  {"TST"},
			"uri":                     {"https://example.com/nft.json"},
			"seller_fee_basis_points": {"0"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "mint_amount_is_zero", test.ErrorCode(t, raw))
}

func TestMintNftUsedMint(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	// A mint with prior supply cannot carry an NFT.
	status, raw := s.M.Post(t, s.Seller, "/mints", url.Values{
		"decimals": {"0"},
	})
	require.Equal(t, 201, status)
	var mint marketplace.MintResource
	require.NoError(t, raw.Extract("mint", &mint))

	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/mints/%s/issue", mint.ID), url.Values{
			"amount": {"1"},
		})
	require.Equal(t, 200, status)

	status, raw = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/mint", s.Pool, mint.ID), url.Values{
			"name":                    {"Test NFT"},
			"symbol":                  {"TST"},
			"uri":                     {"https://example.com/nft.json"},
			"seller_fee_basis_points": {"0"},
		})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_mint_account", test.ErrorCode(t, raw))
}
