package ledger

import (
	"context"
	"testing"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/livemode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// force initialization of schemas
	_ "github.com/curio/marketplace/marketplace/model/schemas"
)

func setupLedger(
	t *testing.T,
) context.Context {
	ctx := context.Background()

	ledgerDB, err := db.NewSqlite3DBInMemory(ctx)
	require.NoError(t, err)
	require.NoError(t, db.CreateDBTables(ctx, "marketplace", ledgerDB))

	ctx = db.WithDB(ctx, ledgerDB)
	ctx = livemode.With(ctx, false)

	return ctx
}

func TestMintToAndTransfer(
	t *testing.T,
) {
	ctx := setupLedger(t)

	mint, err := CreateMint(ctx, "user_a", 2)
	require.NoError(t, err)

	// Only the issuance authority can issue.
	err = MintTo(ctx, mint.Token, "user_b", 100, Signer("user_b"))
	require.Error(t, err)
	assert.IsType(t, ErrInvalidAuthority{}, errors.Cause(err))

	err = MintTo(ctx, mint.Token, "user_b", 100, Signer("user_a"))
	require.NoError(t, err)

	mint, err = LoadMintByToken(ctx, mint.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(100), mint.Supply)

	account, err := LoadAccountByMintOwner(ctx, mint.Token, "user_b")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(100), account.Amount)

	// The authority must act for the source address.
	err = Transfer(ctx, mint.Token, "user_b", "user_c", 30, Signer("user_c"))
	require.Error(t, err)
	assert.IsType(t, ErrInvalidAuthority{}, errors.Cause(err))

	// Transfers fail without effect when underfunded.
	err = Transfer(ctx, mint.Token, "user_b", "user_c", 101, Signer("user_b"))
	require.Error(t, err)
	assert.IsType(t, ErrNotEnoughFunds{}, errors.Cause(err))

	err = Transfer(ctx, mint.Token, "user_b", "user_c", 30, Signer("user_b"))
	require.NoError(t, err)

	account, err = LoadAccountByMintOwner(ctx, mint.Token, "user_b")
	require.NoError(t, err)
	assert.Equal(t, int64(70), account.Amount)

	account, err = LoadAccountByMintOwner(ctx, mint.Token, "user_c")
	require.NoError(t, err)
	assert.Equal(t, int64(30), account.Amount)
}

func TestMetadataAuthority(
	t *testing.T,
) {
	ctx := setupLedger(t)

	metadata, err := CreateMetadata(ctx,
		"mint_nft", "Test NFT", "TST", "https://example.com/nft.json",
		500, nil, true, "user_a")
	require.NoError(t, err)
	assert.True(t, metadata.MasterEdition)
	assert.False(t, metadata.PrimarySaleHappened)

	err = SetPrimarySaleHappened(ctx, "mint_nft", Signer("user_b"))
	require.Error(t, err)
	assert.IsType(t, ErrInvalidAuthority{}, errors.Cause(err))

	err = UpdateMetadataAuthority(ctx, "mint_nft", "user_b", Signer("user_a"))
	require.NoError(t, err)

	err = SetPrimarySaleHappened(ctx, "mint_nft", Signer("user_b"))
	require.NoError(t, err)

	metadata, err = LoadMetadataByNftMint(ctx, "mint_nft")
	require.NoError(t, err)
	assert.True(t, metadata.PrimarySaleHappened)
	assert.Equal(t, "user_b", metadata.UpdateAuthority)
}
