package main

import (
	"context"
	"flag"
	"log"

	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/out"
	"github.com/curio/marketplace/marketplace/app"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/joho/godotenv"
)

var fctFlag string

var envFlag string
var dsnFlag string

var poolFlag string
var nftFlag string

func init() {
	flag.StringVar(&fctFlag, "function",
		"show_pool", "The function to execute (show_pool, show_sale)")

	flag.StringVar(&envFlag, "env",
		"qa", "The environment to run in (qa, production), default: qa")
	flag.StringVar(&dsnFlag, "db_dsn",
		"", "The DSN of the database to use, default: sqlite3://~/.marketplace/marketplace-$env.db")

	flag.StringVar(&poolFlag, "pool",
		"", "The pool token to inspect")
	flag.StringVar(&nftFlag, "nft",
		"", "The NFT mint token to inspect")
}

func main() {
	_ = godotenv.Load()

	flag.Parse()

	ctx, err := app.BackgroundContextFromFlags(
		envFlag, dsnFlag, "", "",
	)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	switch fctFlag {
	case "show_pool":
		showPool(ctx, poolFlag)
	case "show_sale":
		showSale(ctx, poolFlag, nftFlag)
	default:
		log.Fatalf("Invalid function `%s`", fctFlag)
	}
}

func showPool(
	ctx context.Context,
	pool string,
) {
	p, err := model.LoadPoolByToken(ctx, pool)
	if err != nil {
		log.Fatal(errors.Details(err))
	}
	if p == nil {
		out.Errof("Pool not found: %s\n", pool)
		return
	}

	out.Boldf("Pool:\n")
	out.Normf("  ID      : ")
	out.Valuf("%s\n", p.Token)
	out.Normf("  Owner   : ")
	out.Valuf("%s\n", p.Owner)
	out.Normf("  SaleMint: ")
	out.Valuf("%s\n", p.SaleMint)
	out.Normf("  Presale : ")
	if p.PresaleLive {
		out.Valuf("live\n")
	} else {
		out.Warnf("paused\n")
	}
}

func showSale(
	ctx context.Context,
	pool string,
	nft string,
) {
	manager, err := model.LoadSaleManagerByPoolNftMint(ctx, pool, nft)
	if err != nil {
		log.Fatal(errors.Details(err))
	}
	if manager == nil {
		out.Errof("Sale manager not found: pool=%s nft=%s\n", pool, nft)
		return
	}

	out.Boldf("Sale:\n")
	out.Normf("  ID    : ")
	out.Valuf("%s\n", manager.Token)
	out.Normf("  Seller: ")
	out.Valuf("%s\n", manager.Seller)
	out.Normf("  Price : ")
	out.Valuf("%d\n", manager.Price)
	out.Normf("  State : ")
	out.Valuf("%d\n", manager.SaleState)

	if manager.SalePot == "" {
		return
	}
	pot, err := model.LoadSalePotByToken(ctx, manager.SalePot)
	if err != nil {
		log.Fatal(errors.Details(err))
	}
	if pot == nil {
		return
	}

	out.Boldf("Pot:\n")
	out.Normf("  ID     : ")
	out.Valuf("%s\n", pot.Token)
	out.Normf("  Primary: ")
	out.Valuf("%t\n", pot.IsPrimary)
	out.Normf("  Used   : ")
	out.Valuf("%t\n", pot.IsUsed)
	for _, c := range pot.Creators {
		out.Normf("  Creator: ")
		out.Valuf("%s", c.Address)
		out.Normf(" share=")
		out.Valuf("%d", c.Share)
		out.Normf(" claimed=")
		out.Valuf("%t\n", c.Verified)
	}
}
