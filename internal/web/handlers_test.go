package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsson/bookshop/internal/auth"
	"github.com/mkarlsson/bookshop/internal/cart"
	"github.com/mkarlsson/bookshop/internal/catalog"
	"github.com/mkarlsson/bookshop/internal/config"
	"github.com/mkarlsson/bookshop/internal/session"
	"github.com/mkarlsson/bookshop/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router *gin.Engine
	store  *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := store.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	books := []store.Book{
		{ISBN: "111", Title: "Book 1", Author: "Adams", Price: store.Money{Cents: 1050}, Subject: "Fiction"},
		{ISBN: "222", Title: "Book 2", Author: "Baker", Price: store.Money{Cents: 1500}, Subject: "Science"},
	}
	for _, b := range books {
		require.NoError(t, st.AddBook(ctx, b))
	}

	cfg := config.Config{
		SessionCookie: "bookshop_session",
		DeliveryDays:  7,
		Env:           "dev",
		TemplateGlob:  "../../web/templates/*/*.html",
	}
	srv := NewServer(cfg, st, session.NewStore(),
		catalog.New(st), cart.New(st, nil, cfg.DeliveryDays), auth.New(st))
	return &fixture{router: srv.Router(), store: st}
}

func (f *fixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func registerForm() url.Values {
	return url.Values{
		"firstName": {"John"},
		"lastName":  {"Doe"},
		"address":   {"123 Main St"},
		"city":      {"Stockholm"},
		"zip":       {"12345"},
		"phone":     {"1234567890"},
		"email":     {"john@example.com"},
		"password":  {"password123"},
	}
}

// register + login, returning the session cookie.
func (f *fixture) loginAs(t *testing.T) *http.Cookie {
	t.Helper()

	w := f.post("/auth/register", registerForm())
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Account created successfully.")

	w = f.post("/auth/login", url.Values{
		"email":    {"john@example.com"},
		"password": {"password123"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestCartRequiresLogin(t *testing.T) {
	f := newFixture(t)

	w := f.get("/cart")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestAddToCartUnauthenticatedHasNoSideEffects(t *testing.T) {
	f := newFixture(t)

	w := f.post("/cart/add", url.Values{"isbn": {"111"}, "title": {"Book 1"}, "qty": {"2"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	_, ok, err := f.store.CartQty(context.Background(), 1, "111")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginValidationAndGenericError(t *testing.T) {
	f := newFixture(t)

	w := f.post("/auth/login", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required.")
	assert.Contains(t, w.Body.String(), "Password is required.")

	f.loginAs(t)

	w = f.post("/auth/login", url.Values{
		"email": {"nobody@example.com"}, "password": {"password123"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")

	w = f.post("/auth/login", url.Values{
		"email": {"john@example.com"}, "password": {"wrong"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
}

func TestRegisterRejectsBadZip(t *testing.T) {
	f := newFixture(t)

	form := registerForm()
	form.Set("zip", "123ab")
	w := f.post("/auth/register", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Zip code must be exactly 5 digits.")
	// Submitted values echo back.
	assert.Contains(t, w.Body.String(), "john@example.com")
}

func TestRegisterDuplicateEmailMessage(t *testing.T) {
	f := newFixture(t)

	w := f.post("/auth/register", registerForm())
	require.Equal(t, http.StatusOK, w.Code)

	w = f.post("/auth/register", registerForm())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email is already registered.")
}

func TestAddToCartFlashShownOnce(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t)

	w := f.post("/cart/add", url.Values{
		"isbn": {"111"}, "title": {"Book 1"}, "qty": {"2"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))

	w = f.get("/books", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "added to cart!")

	w = f.get("/books", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "added to cart!")
}

func TestViewCartShowsTotals(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t)

	f.post("/cart/add", url.Values{"isbn": {"111"}, "title": {"Book 1"}, "qty": {"2"}}, cookie)
	f.post("/cart/add", url.Values{"isbn": {"222"}, "title": {"Book 2"}, "qty": {"1"}}, cookie)

	w := f.get("/cart", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Book 1")
	assert.Contains(t, body, "21.00") // 2 × 10.50
	assert.Contains(t, body, "36.00") // grand total
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t)

	w := f.post("/cart/checkout", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestCheckoutRendersInvoiceAndClearsCart(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t)

	f.post("/cart/add", url.Values{"isbn": {"111"}, "title": {"Book 1"}, "qty": {"2"}}, cookie)

	w := f.post("/cart/checkout", url.Values{}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Order #1")
	assert.Contains(t, body, "123 Main St")
	assert.Contains(t, body, "21.00")

	w = f.get("/cart", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty.")
}

func TestListBooksFiltersAndPaging(t *testing.T) {
	f := newFixture(t)

	w := f.get("/books?subject=Fiction")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book 1")
	assert.NotContains(t, w.Body.String(), "Book 2")

	// Invalid paging falls back to defaults.
	w = f.get("/books?page=abc&pageSize=-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Page 1 of 1")
}

func TestLogoutEndsSession(t *testing.T) {
	f := newFixture(t)
	cookie := f.loginAs(t)

	w := f.post("/auth/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	w = f.get("/cart", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestDBCheck(t *testing.T) {
	f := newFixture(t)

	w := f.get("/db-check")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "books.count = 2")
}
