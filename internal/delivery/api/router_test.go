package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookmarks/config"
	apimiddleware "bookmarks/internal/delivery/api/middleware"
	"bookmarks/internal/delivery/api/router"
	"bookmarks/internal/delivery/api/router/handler"
	deliverycontext "bookmarks/internal/delivery/context"
	"bookmarks/internal/domain/service"
	"bookmarks/internal/infra/auth"
	"bookmarks/internal/infra/metrics"
	"bookmarks/internal/mocks/memory"
	"bookmarks/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	echo     *echo.Echo
	accounts *memory.AccountRepo
	tokens   service.TokenService
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "router-test-secret"},
		Auth: &config.AuthConfig{
			AccessTokenTTL: 15 * time.Minute,
			Argon2: config.Argon2Config{
				Memory:      64,
				Iterations:  1,
				Parallelism: 1,
				SaltLength:  16,
				KeyLength:   32,
			},
		},
		RateLimit: &config.RateLimitConfig{Enabled: false},
		Metrics:   &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.HTTP.Port = 3333
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := memory.NewAccountRepo()
	bookmarks := memory.NewBookmarkRepo()
	txManager := &memory.TxManager{Accounts: accounts, Bookmarks: bookmarks}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewArgon2Hasher(cfg)

	registry := metrics.NewRegistry()
	collector := metrics.NewCollector(registry)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		AccountRepo:  accounts,
		Hasher:       hasher,
		TokenService: tokens,
		Metrics:      collector,
		Logger:       logger,
	})
	identityUC := impl.NewIdentityService(impl.IdentityServiceParams{AccountRepo: accounts, Logger: logger})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{TxManager: txManager, AccountRepo: accounts, Logger: logger})
	bookmarkUC := impl.NewBookmarkService(impl.BookmarkServiceParams{TxManager: txManager, BookmarkRepo: bookmarks, Logger: logger})

	routerParams := router.RouterParams{
		AuthHandler:     handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Logger: logger}),
		UserHandler:     handler.NewUserHandler(handler.UserHandlerParams{ProfileUC: profileUC, Logger: logger}),
		BookmarkHandler: handler.NewBookmarkHandler(handler.BookmarkHandlerParams{BookmarkUC: bookmarkUC, Logger: logger}),
		HealthHandler:   handler.NewHealthHandler(handler.HealthHandlerParams{Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			TokenService: tokens,
			IdentityUC:   identityUC,
			Metrics:      collector,
			Logger:       logger,
		}),
		Gatherer: registry,
		Config:   cfg,
		Logger:   logger,
	}

	return &testApp{
		echo:     NewEcho(cfg, logger, collector, routerParams),
		accounts: accounts,
		tokens:   tokens,
	}
}

func (a *testApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

type errorBody struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func (a *testApp) signup(t *testing.T, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/signup", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[handler.TokenResponse](t, rec).AccessToken
}

func TestAuthScenario(t *testing.T) {
	app := newTestApp(t, newTestConfig())
	credential := `{"email":"vlad@gmail.com","password":"123"}`

	signup := app.do(t, http.MethodPost, "/auth/signup", "", credential)
	require.Equal(t, http.StatusCreated, signup.Code, signup.Body.String())
	assert.NotEmpty(t, decode[handler.TokenResponse](t, signup).AccessToken)

	again := app.do(t, http.MethodPost, "/auth/signup", "", credential)
	require.Equal(t, http.StatusForbidden, again.Code)
	assert.Equal(t, "CREDENTIALS_TAKEN", decode[errorBody](t, again).Error.Code)
	assert.Equal(t, "Credentials taken", decode[errorBody](t, again).Error.Message)

	wrong := app.do(t, http.MethodPost, "/auth/signin", "", `{"email":"vlad@gmail.com","password":"1234"}`)
	require.Equal(t, http.StatusForbidden, wrong.Code)
	assert.Equal(t, "CREDENTIALS_INCORRECT", decode[errorBody](t, wrong).Error.Code)

	signin := app.do(t, http.MethodPost, "/auth/signin", "", credential)
	require.Equal(t, http.StatusOK, signin.Code, signin.Body.String())
	token := decode[handler.TokenResponse](t, signin).AccessToken
	require.NotEmpty(t, token)

	me := app.do(t, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())

	var profile map[string]any
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &profile))
	assert.Equal(t, "vlad@gmail.com", profile["email"])
	assert.NotEmpty(t, profile["id"])
	for key := range profile {
		assert.NotContains(t, strings.ToLower(key), "hash")
		assert.NotContains(t, strings.ToLower(key), "password")
	}
	assert.NotContains(t, me.Body.String(), "$argon2id$")

	email := app.do(t, http.MethodGet, "/users/email", token, "")
	require.Equal(t, http.StatusOK, email.Code)
	assert.JSONEq(t, `{"email":"vlad@gmail.com"}`, email.Body.String())
}

func TestSignin_FailuresLookIdentical(t *testing.T) {
	app := newTestApp(t, newTestConfig())
	app.signup(t, "vlad@gmail.com", "123")

	unknown := app.do(t, http.MethodPost, "/auth/signin", "", `{"email":"nobody@gmail.com","password":"123"}`)
	wrong := app.do(t, http.MethodPost, "/auth/signin", "", `{"email":"vlad@gmail.com","password":"nope"}`)

	assert.Equal(t, unknown.Code, wrong.Code)
	unknownBody, wrongBody := decode[errorBody](t, unknown), decode[errorBody](t, wrong)
	assert.Equal(t, unknownBody.Error, wrongBody.Error)
}

func TestAuth_Validation(t *testing.T) {
	app := newTestApp(t, newTestConfig())

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "missing password", body: `{"email":"vlad@gmail.com"}`, wantCode: "VALIDATION_FAILED"},
		{name: "malformed email", body: `{"email":"vlad","password":"123"}`, wantCode: "VALIDATION_FAILED"},
		{name: "empty body", body: `{}`, wantCode: "VALIDATION_FAILED"},
		{name: "unknown field", body: `{"email":"vlad@gmail.com","password":"123","admin":true}`, wantCode: "INVALID_INPUT"},
		{name: "wrong type", body: `{"email":"vlad@gmail.com","password":123}`, wantCode: "INVALID_INPUT"},
		{name: "not json", body: `{"email":`, wantCode: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/auth/signup", "", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Meta.RequestID)
		})
	}

	_, err := app.accounts.FindByEmail(t.Context(), "vlad@gmail.com")
	assert.Error(t, err, "rejected requests must not create accounts")
}

func TestGuard_RejectsUnusableCredentials(t *testing.T) {
	app := newTestApp(t, newTestConfig())
	token := app.signup(t, "vlad@gmail.com", "123")

	foreign, err := auth.NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: "another-secret"}})
	require.NoError(t, err)
	forged, err := foreign.Issue(uuid.New(), "vlad@gmail.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic " + token},
		{name: "bearer without token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "foreign signature", header: "Bearer " + forged},
		{name: "tampered token", header: "Bearer " + token[:len(token)-2] + flip(token[len(token)-2:])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			app.echo.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHENTICATED", decode[errorBody](t, rec).Error.Code)
		})
	}

	scrape := app.do(t, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, scrape.Body.String(), "bookmarks_tokens_rejected_total 3")
}

// flip swaps the two characters of a token suffix for different base64url characters.
func flip(s string) string {
	out := []byte(s)
	for i, b := range out {
		if b == 'A' {
			out[i] = 'B'
		} else {
			out[i] = 'A'
		}
	}

	return string(out)
}

func TestGuard_DeletedAccount(t *testing.T) {
	app := newTestApp(t, newTestConfig())
	token := app.signup(t, "vlad@gmail.com", "123")

	claim, err := app.tokens.Verify(token)
	require.NoError(t, err)
	app.accounts.Delete(claim.Subject)

	rec := app.do(t, http.MethodGet, "/users/me", token, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEditUser(t *testing.T) {
	app := newTestApp(t, newTestConfig())
	token := app.signup(t, "vlad@gmail.com", "123")

	rec := app.do(t, http.MethodPatch, "/users", token, `{"first_name":"Vlad"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Vlad", profile["first_name"])
	assert.Nil(t, profile["last_name"])
	assert.NotContains(t, rec.Body.String(), "$argon2id$")

	rec = app.do(t, http.MethodPatch, "/users", token, `{"email":"other@gmail.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "credentials are not editable here")

	me := app.do(t, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"first_name":"Vlad"`)
	assert.Contains(t, me.Body.String(), `"email":"vlad@gmail.com"`)
}

type bookmarkBody struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
}

func TestBookmarks(t *testing.T) {
	app := newTestApp(t, newTestConfig())
	owner := app.signup(t, "owner@gmail.com", "123")
	intruder := app.signup(t, "intruder@gmail.com", "123")

	empty := app.do(t, http.MethodGet, "/bookmarks", owner, "")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, `[]`, empty.Body.String())

	created := app.do(t, http.MethodPost, "/bookmarks", owner, `{"title":"Go","link":"https://go.dev"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	bookmark := decode[bookmarkBody](t, created)
	assert.Equal(t, "Go", bookmark.Title)
	assert.Nil(t, bookmark.Description)

	path := "/bookmarks/" + bookmark.ID.String()

	t.Run("owner reads", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, path, owner, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, bookmark.ID, decode[bookmarkBody](t, rec).ID)

		list := decode[[]bookmarkBody](t, app.do(t, http.MethodGet, "/bookmarks", owner, ""))
		require.Len(t, list, 1)
	})

	t.Run("intruder is kept out", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, path, intruder, "").Code)

		edit := app.do(t, http.MethodPatch, path, intruder, `{"title":"Mine now"}`)
		require.Equal(t, http.StatusForbidden, edit.Code)
		assert.Equal(t, "Access to resource denied", decode[errorBody](t, edit).Error.Message)

		assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodDelete, path, intruder, "").Code)

		list := decode[[]bookmarkBody](t, app.do(t, http.MethodGet, "/bookmarks", intruder, ""))
		assert.Empty(t, list)
	})

	t.Run("owner edits", func(t *testing.T) {
		rec := app.do(t, http.MethodPatch, path, owner, `{"description":"The Go website"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		edited := decode[bookmarkBody](t, rec)
		assert.Equal(t, "Go", edited.Title)
		require.NotNil(t, edited.Description)
		assert.Equal(t, "The Go website", *edited.Description)
	})

	t.Run("invalid input", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/bookmarks/42", owner, "").Code)
		assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/bookmarks", owner, `{"title":"x","link":"not a url"}`).Code)
		assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPatch, path, owner, `{"link":"nope"}`).Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, path, owner, "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, path, owner, "").Code)
		assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodDelete, path, owner, "").Code)
	})

	t.Run("requires a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, "/bookmarks", "", "").Code)
		assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodPost, "/bookmarks", "", `{"title":"x","link":"https://x.io"}`).Code)
	})
}

func TestRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.RateLimit = &config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 2, ExpiresIn: time.Minute}
	app := newTestApp(t, cfg)

	body := `{"email":"vlad@gmail.com","password":"123"}`
	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, app.do(t, http.MethodPost, "/auth/signin", "", body).Code)
	}

	assert.Equal(t, []int{http.StatusForbidden, http.StatusForbidden, http.StatusTooManyRequests}, codes)

	limited := app.do(t, http.MethodPost, "/auth/signin", "", body)
	assert.Equal(t, "RATE_LIMITED", decode[errorBody](t, limited).Error.Code)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/health", "", "").Code, "only auth routes are limited")
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t, newTestConfig())

	health := app.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())
	assert.NotEmpty(t, health.Header().Get(deliverycontext.HeaderXRequestID))

	app.signup(t, "vlad@gmail.com", "123")

	scrape := app.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `bookmarks_signups_total{outcome="success"} 1`)
	assert.Contains(t, scrape.Body.String(), `bookmarks_http_requests_total{method="POST",route="/auth/signup",status_code="201"} 1`)

	missing := app.do(t, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, missing).Error.Code)
}
