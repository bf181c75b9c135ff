package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/ledger"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/curio/marketplace/marketplace/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *scenario) withdraw(
	t *testing.T,
	claimant *test.User,
	nft string,
	pot string,
) (int, int64, string) {
	values := url.Values{}
	if pot != "" {
		values.Set("pot", pot)
	}

	status, raw := s.M.Post(t, claimant,
		fmt.Sprintf("/pools/%s/nfts/%s/withdraw", s.Pool, nft), values)
	if status != 200 {
		return status, 0, test.ErrorCode(t, raw)
	}

	var amount int64
	require.NoError(t, raw.Extract("amount", &amount))
	return status, amount, ""
}

func TestWithdrawPrimary(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	creatorA := s.M.CreateUser(t)
	creatorB := s.M.CreateUser(t)

	nft := s.createNft(t, "500", model.CreatorList{
		{Address: creatorA.Address(), Verified: false, Share: 30},
		{Address: creatorB.Address(), Verified: false, Share: 20},
	})
	s.listNft(t, s.Seller, nft, "1000")

	status, _ := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	// On a primary sale the proceeds go entirely to creators, by share.
	status, amount, _ := s.withdraw(t, creatorA, nft, "")
	require.Equal(t, 200, status)
	assert.Equal(t, int64(300), amount)
	assert.Equal(t, int64(300), s.balance(t, s.Currency, creatorA.Address()))

	// A second claim by the same creator fails.
	status, _, code := s.withdraw(t, creatorA, nft, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_amount", code)

	status, amount, _ = s.withdraw(t, creatorB, nft, "")
	require.Equal(t, 200, status)
	assert.Equal(t, int64(200), amount)

	// The pre-verified seller has no claim on a primary sale.
	status, _, code = s.withdraw(t, s.Seller, nft, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_amount", code)

	// A stranger has no claim either.
	status, _, code = s.withdraw(t, s.Owner, nft, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_amount", code)
}

func TestWithdrawSecondary(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	creator := s.M.CreateUser(t)

	nft := s.createNft(t, "500", model.CreatorList{
		{Address: creator.Address(), Verified: false, Share: 100},
	})
	s.listNft(t, s.Seller, nft, "1000")

	status, _ := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	// The buyer relists and the original seller buys it back.
	status, _ = s.M.Post(t, s.Owner,
		fmt.Sprintf("/mints/%s/issue", s.Currency), url.Values{
			"amount":      {"1000"},
			"destination": {s.Seller.Address()},
		})
	require.Equal(t, 200, status)

	status, _ = s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"1000"},
		})
	require.Equal(t, 200, status)

	status, _ = s.M.Post(t, s.Seller,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	// With a 5% fee the secondary seller takes 950 and the creator 50.
	status, amount, _ := s.withdraw(t, s.Buyer, nft, "")
	require.Equal(t, 200, status)
	assert.Equal(t, int64(950), amount)

	status, amount, _ = s.withdraw(t, creator, nft, "")
	require.Equal(t, 200, status)
	assert.Equal(t, int64(50), amount)
}

func TestWithdrawOlderPot(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	creator := s.M.CreateUser(t)

	nft := s.createNft(t, "500", model.CreatorList{
		{Address: creator.Address(), Verified: false, Share: 50},
	})
	s.listNft(t, s.Seller, nft, "1000")

	status, raw := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	var sale marketplace.SaleResource
	require.NoError(t, raw.Extract("sale", &sale))
	require.NotNil(t, sale.Pot)
	firstPot := sale.Pot.ID

	// The buyer relists before the creator claims on the first sale.
	status, _ = s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/sell", s.Pool, nft), url.Values{
			"price": {"2000"},
		})
	require.Equal(t, 200, status)

	// The fresh pot completed no sale yet.
	status, _, code := s.withdraw(t, creator, nft, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_sale_state", code)

	// The first pot remains claimable explicitly.
	status, amount, _ := s.withdraw(t, creator, nft, firstPot)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(500), amount)
}

func TestWithdrawUnsoldListing(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	nft := s.createNft(t, "500", nil)
	s.listNft(t, s.Seller, nft, "1000")

	status, _, code := s.withdraw(t, s.Seller, nft, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_sale_state", code)
}

func TestWithdrawCappedByEscrowBalance(
	t *testing.T,
) {
	s := setupScenario(t)
	defer s.M.Close()

	creator := s.M.CreateUser(t)

	nft := s.createNft(t, "500", model.CreatorList{
		{Address: creator.Address(), Verified: false, Share: 100},
	})
	sale := s.listNft(t, s.Seller, nft, "1000")

	status, _ := s.M.Post(t, s.Buyer,
		fmt.Sprintf("/pools/%s/nfts/%s/buy", s.Pool, nft), nil)
	require.Equal(t, 200, status)

	// Drain the escrowed proceeds below the creator's 1000 share.
	account, err := ledger.LoadAccountByMintOwner(s.M.Ctx,
		s.Currency, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, account)
	account.Amount = 120
	require.NoError(t, account.Save(s.M.Ctx))

	status, amount, _ := s.withdraw(t, creator, nft, "")
	require.Equal(t, 200, status)
	assert.Equal(t, int64(120), amount)
	assert.Equal(t, int64(120), s.balance(t, s.Currency, creator.Address()))
	assert.Equal(t, int64(0), s.balance(t, s.Currency, sale.ID))

	// The claim is spent even though the payout was capped.
	status, _, code := s.withdraw(t, creator, nft, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_amount", code)
}
