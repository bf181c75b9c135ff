package app

import (
	"github.com/curio/marketplace/marketplace/endpoint"
	"goji.io"
	"goji.io/pat"
)

// Controller binds the API
type Controller struct{}

// Bind registers the API routes.
func (c *Controller) Bind(
	mux *goji.Mux,
) {
	// Authenticated.
	mux.HandleFunc(pat.Post("/mints"), endpoint.HandlerFor(endpoint.EndPtCreateMint))
	mux.HandleFunc(pat.Post("/mints/:mint/issue"), endpoint.HandlerFor(endpoint.EndPtIssue))
	mux.HandleFunc(pat.Post("/pools"), endpoint.HandlerFor(endpoint.EndPtCreatePool))
	mux.HandleFunc(pat.Post("/pools/:pool/authority"), endpoint.HandlerFor(endpoint.EndPtSetAuthority))
	mux.HandleFunc(pat.Post("/pools/:pool/presale"), endpoint.HandlerFor(endpoint.EndPtControlPresale))
	mux.HandleFunc(pat.Post("/pools/:pool/clients"), endpoint.HandlerFor(endpoint.EndPtSetWhitelist))
	mux.HandleFunc(pat.Post("/pools/:pool/clients/:bidder"), endpoint.HandlerFor(endpoint.EndPtUpdateWhitelist))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/mint"), endpoint.HandlerFor(endpoint.EndPtMintNft))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/max_price"), endpoint.HandlerFor(endpoint.EndPtSetMaxPrice))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/manager"), endpoint.HandlerFor(endpoint.EndPtInitSaleManager))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/sell"), endpoint.HandlerFor(endpoint.EndPtSellNft))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/buy"), endpoint.HandlerFor(endpoint.EndPtBuyNft))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/redeem"), endpoint.HandlerFor(endpoint.EndPtRedeemNft))
	mux.HandleFunc(pat.Post("/pools/:pool/nfts/:mint/withdraw"), endpoint.HandlerFor(endpoint.EndPtWithdrawFund))

	// Public.
	mux.HandleFunc(pat.Get("/pools/:pool"), endpoint.HandlerFor(endpoint.EndPtRetrievePool))
	mux.HandleFunc(pat.Get("/pools/:pool/nfts/:mint/sale"), endpoint.HandlerFor(endpoint.EndPtRetrieveSale))
	mux.HandleFunc(pat.Get("/balances/:mint/:address"), endpoint.HandlerFor(endpoint.EndPtRetrieveBalance))
}
