package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/env"
	"github.com/curio/marketplace/lib/livemode"
	"github.com/curio/marketplace/lib/recoverer"
	"github.com/curio/marketplace/lib/requestlogger"
	"github.com/curio/marketplace/lib/svc"
	"github.com/curio/marketplace/lib/token"
	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/app"
	"github.com/curio/marketplace/marketplace/lib/authentication"
	"github.com/curio/marketplace/marketplace/model"
	goji "goji.io"

	// force initialization of schemas
	_ "github.com/curio/marketplace/marketplace/model/schemas"
)

// Marketplace represents a test marketplace backed by an in-memory DB.
type Marketplace struct {
	Ctx    context.Context
	Env    env.Env
	Server *httptest.Server
}

// User represents a user of a test marketplace along with its plaintext
// password. The user's token doubles as its on-ledger address.
type User struct {
	*model.User
	Password string
}

// Address returns the user's on-ledger address.
func (u *User) Address() string {
	return u.User.Token
}

// CreateMarketplace creates a new test marketplace.
func CreateMarketplace(
	t *testing.T,
) *Marketplace {
	ctx := context.Background()

	marketplaceEnv := env.Env{
		Environment: env.QA,
		Config: map[env.ConfigKey]string{
			marketplace.EnvCfgHost: "127.0.0.1",
		},
	}
	ctx = env.With(ctx, &marketplaceEnv)

	marketplaceDB, err := db.NewSqlite3DBInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	err = db.CreateDBTables(ctx, "marketplace", marketplaceDB)
	if err != nil {
		t.Fatal(err)
	}
	ctx = db.WithDB(ctx, marketplaceDB)
	ctx = livemode.With(ctx, false)

	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDB(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(livemode.Middleware)
	mux.Use(authentication.Middleware)

	(&app.Controller{}).Bind(mux)

	return &Marketplace{
		Ctx:    ctx,
		Env:    marketplaceEnv,
		Server: httptest.NewServer(mux),
	}
}

// Close shuts the test marketplace down.
func (m *Marketplace) Close() {
	m.Server.Close()
}

// CreateUser creates a test user and returns it.
func (m *Marketplace) CreateUser(
	t *testing.T,
) *User {
	username := token.RandStr()
	password := token.RandStr()

	user, err := model.CreateUser(m.Ctx, username, password)
	if err != nil {
		t.Fatal(err)
	}

	return &User{
		User:     user,
		Password: password,
	}
}

// Post posts the given form to the test marketplace, authenticated as the
// given user if not nil.
func (m *Marketplace) Post(
	t *testing.T,
	user *User,
	path string,
	values url.Values,
) (int, svc.Resp) {
	req, err := http.NewRequest("POST",
		m.Server.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req.SetBasicAuth(user.Username, user.Password)
	}

	r, err := m.Server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Body.Close()

	var resp svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}

	return r.StatusCode, resp
}

// Get retrieves the given path from the test marketplace, authenticated as
// the given user if not nil.
func (m *Marketplace) Get(
	t *testing.T,
	user *User,
	path string,
) (int, svc.Resp) {
	req, err := http.NewRequest("GET", m.Server.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		req.SetBasicAuth(user.Username, user.Password)
	}

	r, err := m.Server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Body.Close()

	var resp svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}

	return r.StatusCode, resp
}

// ErrorCode extracts the error code of an error response.
func ErrorCode(
	t *testing.T,
	resp svc.Resp,
) string {
	var e struct {
		Code string `json:"code"`
	}
	if err := resp.Extract("error", &e); err != nil {
		t.Fatal(fmt.Errorf("no error in response: %v", err))
	}
	return e.Code
}
