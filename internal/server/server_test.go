package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payportal/payportal/internal/config"
	"github.com/payportal/payportal/internal/employee"
	"github.com/payportal/payportal/internal/logging"
	"github.com/payportal/payportal/internal/payment"
)

func testConfig() config.Config {
	return config.Config{
		AppName:              "PayPortal",
		AppEnv:               "test",
		LogLevel:             "error",
		HTTPSPort:            "0",
		HTTPPort:             "0",
		CustomerTokenSecret:  "test-customer-secret",
		EmployeeTokenSecret:  "test-employee-secret",
		TokenTTL:             time.Hour,
		EmployeeUsername:     "Employee",
		EmployeePassword:     "Admin@123",
		LoginRateMax:         5,
		EmployeeLoginRateMax: 3,
		RateWindow:           15 * time.Minute,
		AllowStatusOverride:  true,
		ShutdownPeriod:       time.Second,
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	srv, err := New(testConfig(), nil, logging.Discard())
	require.NoError(t, err)
	return srv.App()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, mods ...func(*http.Request)) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, mod := range mods {
		mod(req)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
}

func employeeCookie(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: employee.CookieName, Value: token})
	}
}

func TestPaymentReviewScenario(t *testing.T) {
	app := newTestApp(t)

	signup := fiber.Map{
		"username":      "alice",
		"fullName":      "Alice Example",
		"idNumber":      "9001015800087",
		"accountNumber": "1234567",
		"password":      "Str0ngPass!",
	}

	resp, body := doJSON(t, app, http.MethodPost, "/user/signup", signup)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body["userId"])

	resp, body = doJSON(t, app, http.MethodPost, "/user/signup", signup)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username or Account Number already registered.", body["error"])

	resp, body = doJSON(t, app, http.MethodPost, "/user/login", fiber.Map{
		"username":      "alice",
		"accountNumber": "1234567",
		"password":      "Str0ngPass!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	customerToken, _ := body["token"].(string)
	require.NotEmpty(t, customerToken)

	// The SPA submits the amount as a string; the API accepts both.
	resp, body = doJSON(t, app, http.MethodPost, "/payment/upload", fiber.Map{
		"name":          "Alice Example",
		"bankName":      "Barclays",
		"accountNumber": "7654321",
		"swiftCode":     "BARCGB22",
		"bankLocation":  "London",
		"amount":        "500",
		"currency":      "ZAR",
	}, bearer(customerToken))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	paymentID, _ := body["id"].(string)
	require.NotEmpty(t, paymentID)
	assert.Equal(t, payment.StatusPending, body["status"])
	assert.InDelta(t, 500, body["amountInZAR"].(float64), 1e-9)

	resp, _ = doJSON(t, app, http.MethodGet, "/payment/", nil, bearer(customerToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/employee/login", fiber.Map{
		"username": "Employee",
		"password": "Admin@123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var employeeToken string
	for _, c := range resp.Cookies() {
		if c.Name == employee.CookieName {
			employeeToken = c.Value
			assert.True(t, c.HttpOnly, "session cookie must be HTTP-only")
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		}
	}
	require.NotEmpty(t, employeeToken)

	resp, _ = doJSON(t, app, http.MethodGet, "/employee/payments", nil, employeeCookie(employeeToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPatch, "/employee/"+paymentID+"/status",
		fiber.Map{"status": "accepted"}, employeeCookie(employeeToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Payment accepted successfully.", body["message"])

	req := httptest.NewRequest(http.MethodGet, "/payment/", nil)
	bearer(customerToken)(req)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	var payments []payment.Payment
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&payments))
	require.Len(t, payments, 1)
	assert.Equal(t, payment.StatusAccepted, payments[0].Status)

	resp, _ = doJSON(t, app, http.MethodDelete, "/payment/"+paymentID, nil, bearer(customerToken))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodDelete, "/payment/"+paymentID, nil, bearer(customerToken))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Payment not found", body["error"])
}

func TestAuthBoundaries(t *testing.T) {
	app := newTestApp(t)

	t.Run("payment routes need a customer token", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/payment/", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Access denied, token missing!", body["error"])
	})

	t.Run("employee review needs the cookie", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/employee/payments", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong employee password", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/employee/login", fiber.Map{
			"username": "Employee",
			"password": "guess",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("login with unknown user", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/user/login", fiber.Map{
			"username":      "nobody",
			"accountNumber": "0000000",
			"password":      "Str0ngPass!",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found.", body["error"])
	})

	t.Run("malformed payment id", func(t *testing.T) {
		srvApp := newTestApp(t)
		resp, body := doJSON(t, srvApp, http.MethodPost, "/user/signup", fiber.Map{
			"username":      "carol",
			"fullName":      "Carol Example",
			"idNumber":      "9001015800087",
			"accountNumber": "2222222",
			"password":      "Str0ngPass!",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp, body = doJSON(t, srvApp, http.MethodPost, "/user/login", fiber.Map{
			"username":      "carol",
			"accountNumber": "2222222",
			"password":      "Str0ngPass!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tok, _ := body["token"].(string)

		resp, body = doJSON(t, srvApp, http.MethodDelete, "/payment/not-hex", nil, bearer(tok))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid payment id", body["error"])
	})
}

func TestEmployeeLoginRateLimit(t *testing.T) {
	app := newTestApp(t)

	login := fiber.Map{"username": "Employee", "password": "wrong"}
	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/employee/login", login)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// Fourth attempt within the window is rejected before verification,
	// even with the correct password.
	resp, body := doJSON(t, app, http.MethodPost, "/employee/login", fiber.Map{
		"username": "Employee",
		"password": "Admin@123",
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests, try again later.", body["error"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestEmployeeLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/employee/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == employee.CookieName {
			cleared = c.Value == "" && c.MaxAge <= 0
		}
	}
	assert.True(t, cleared, "logout must expire the session cookie")
}
