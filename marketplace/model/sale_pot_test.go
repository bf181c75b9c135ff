package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimPrimary(
	t *testing.T,
) {
	pot := SalePot{
		Price:                1000,
		IsPrimary:            true,
		Seller:               "user_seller",
		SellerVerified:       true,
		SellerFeeBasisPoints: 500,
		Creators: CreatorList{
			{Address: "user_a", Verified: false, Share: 30},
			{Address: "user_b", Verified: false, Share: 20},
		},
	}

	assert.Equal(t, int64(300), pot.Claim("user_a"))
	assert.Equal(t, int64(0), pot.Claim("user_a"))
	assert.Equal(t, int64(200), pot.Claim("user_b"))
	assert.Equal(t, int64(0), pot.Claim("user_b"))

	// The pre-verified seller collects nothing on a primary sale.
	assert.Equal(t, int64(0), pot.Claim("user_seller"))
	assert.Equal(t, int64(0), pot.Claim("user_stranger"))
}

func TestClaimSecondary(
	t *testing.T,
) {
	pot := SalePot{
		Price:                1000,
		IsPrimary:            false,
		Seller:               "user_seller",
		SellerVerified:       false,
		SellerFeeBasisPoints: 500,
		Creators: CreatorList{
			{Address: "user_a", Verified: false, Share: 100},
		},
	}

	assert.Equal(t, int64(950), pot.Claim("user_seller"))
	assert.Equal(t, int64(0), pot.Claim("user_seller"))
	assert.Equal(t, int64(50), pot.Claim("user_a"))
	assert.Equal(t, int64(0), pot.Claim("user_a"))
}

func TestClaimSellerAlsoCreator(
	t *testing.T,
) {
	pot := SalePot{
		Price:                1000,
		IsPrimary:            false,
		Seller:               "user_seller",
		SellerVerified:       false,
		SellerFeeBasisPoints: 1000,
		Creators: CreatorList{
			{Address: "user_seller", Verified: false, Share: 40},
			{Address: "user_a", Verified: false, Share: 60},
		},
	}

	// Seller take and creator share collected in one call.
	assert.Equal(t, int64(900+40), pot.Claim("user_seller"))
	assert.Equal(t, int64(0), pot.Claim("user_seller"))
	assert.Equal(t, int64(60), pot.Claim("user_a"))
}

func TestClaimFloorDivision(
	t *testing.T,
) {
	pot := SalePot{
		Price:                999,
		IsPrimary:            false,
		Seller:               "user_seller",
		SellerVerified:       false,
		SellerFeeBasisPoints: 333,
		Creators: CreatorList{
			{Address: "user_a", Verified: false, Share: 100},
		},
	}

	// 999 * 9667 / 10000 = 965 and 999 * 333 / 10000 = 33, both floored.
	assert.Equal(t, int64(965), pot.Claim("user_seller"))
	assert.Equal(t, int64(33), pot.Claim("user_a"))
}

func TestClaimPrimaryFloorDivision(
	t *testing.T,
) {
	pot := SalePot{
		Price:     101,
		IsPrimary: true,
		Creators: CreatorList{
			{Address: "user_a", Verified: false, Share: 33},
		},
	}

	// 101 * 33 / 100 = 33, floored.
	assert.Equal(t, int64(33), pot.Claim("user_a"))
}

func TestCreatorListBound(
	t *testing.T,
) {
	list := CreatorList{}
	for i := 0; i < MaxCreators+1; i++ {
		list = append(list, Creator{Address: "user_a", Share: 1})
	}

	_, err := list.Value()
	assert.Error(t, err)

	_, err = list[:MaxCreators].Value()
	assert.NoError(t, err)
}

func TestCreatorListScan(
	t *testing.T,
) {
	var list CreatorList
	err := list.Scan(
		`[{"address":"user_a","verified":true,"share":30}]`)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "user_a", list[0].Address)
	assert.True(t, list[0].Verified)
	assert.Equal(t, int8(30), list[0].Share)
	assert.Equal(t, int64(30), list.ShareSum())
}

func TestSaleStateScan(
	t *testing.T,
) {
	var state SaleState
	assert.NoError(t, state.Scan(int64(2)))
	assert.Equal(t, SaleStateSold, state)
	assert.Error(t, state.Scan("listed"))
}
