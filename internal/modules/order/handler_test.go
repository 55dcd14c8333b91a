package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/georgemunganga/tg-shop/internal/modules/auth"
	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
	"github.com/georgemunganga/tg-shop/pkg/idempotency"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shopper  = &auth.Session{User: &auth.TelegramUser{ID: 42, FirstName: "Айгерим", Username: "aigerim"}, Lang: i18n.Kazakh}
	stranger = &auth.Session{User: &auth.TelegramUser{ID: 7, FirstName: "Бекзат"}, Lang: i18n.Russian}
	operator = &auth.Session{User: &auth.TelegramUser{ID: 100500}, Admin: true, Lang: i18n.Russian}
	nobody   = &auth.Session{Lang: i18n.Russian}
)

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, sess *auth.Session, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	req = req.WithContext(auth.WithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type submitResponse struct {
	Order struct {
		ID          string `json:"id"`
		Status      Status `json:"status"`
		StatusLabel string `json:"status_label"`
		Total       string `json:"total"`
		Customer    *CustomerRef
	} `json:"order"`
	PaymentSent bool   `json:"payment_sent"`
	Message     string `json:"message"`
}

func TestHandler_SubmitUsesSessionIdentity(t *testing.T) {
	f := newFixture(t)
	f.settings.PaymentEnabled = true
	f.settings.PaymentPhone = "7001234567"
	h := newTestRouter(f.svc)

	req := f.request()
	req.CustomerName = ""
	rec := do(t, h, shopper, http.MethodPost, "/api/v1/orders", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, StatusNew, resp.Order.Status)
	assert.Equal(t, "Жаңа", resp.Order.StatusLabel)
	assert.Equal(t, "6200", resp.Order.Total)
	assert.True(t, resp.PaymentSent)
	assert.Contains(t, resp.Message, "Тапсырысыңызға рахмет!")
	assert.Contains(t, resp.Message, "💳")

	stored, err := f.svc.Get(context.Background(), resp.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Customer)
	assert.Equal(t, int64(42), stored.Customer.TelegramUserID)
	assert.Equal(t, "Айгерим", stored.CustomerName, "name prefilled from Telegram")
}

func TestHandler_SubmitReplayReturnsSameOrder(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f.svc)

	first := do(t, h, nobody, http.MethodPost, "/api/v1/orders", f.request(), idempotency.Header, "abc")
	require.Equal(t, http.StatusCreated, first.Code)
	second := do(t, h, nobody, http.MethodPost, "/api/v1/orders", f.request(), idempotency.Header, "abc")
	require.Equal(t, http.StatusOK, second.Code)

	var a, b submitResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.Order.ID, b.Order.ID)
}

func TestHandler_ErrorMapping(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f.svc)

	placed, err := f.svc.Submit(context.Background(), f.request(), customerRef(shopper.User))
	require.NoError(t, err)
	id := placed.Order.ID.String()

	bad := f.request()
	bad.CustomerPhone = ""
	rec := do(t, h, nobody, http.MethodPost, "/api/v1/orders", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, operator, http.MethodPatch, "/api/v1/orders/"+id+"/status", UpdateStatusRequest{Status: "completed"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, operator, http.MethodPatch, "/api/v1/orders/"+id+"/status", UpdateStatusRequest{Status: "teleported"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, operator, http.MethodGet, "/api/v1/orders/0190d1a4-0000-7000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, operator, http.MethodPatch, "/api/v1/orders/"+id+"/status", UpdateStatusRequest{Status: "processing"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Notified bool `json:"notified"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Notified)
}

func TestHandler_Access(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f.svc)

	placed, err := f.svc.Submit(context.Background(), f.request(), customerRef(shopper.User))
	require.NoError(t, err)
	path := "/api/v1/orders/" + placed.Order.ID.String()

	assert.Equal(t, http.StatusOK, do(t, h, shopper, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, operator, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, stranger, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, nobody, http.MethodGet, path, nil).Code)

	assert.Equal(t, http.StatusForbidden, do(t, h, shopper, http.MethodGet, "/api/v1/orders", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, shopper, http.MethodPatch, path+"/status", UpdateStatusRequest{Status: "processing"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, nobody, http.MethodGet, "/api/v1/orders/mine", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, stranger, http.MethodPost, path+"/reorder", nil).Code)

	rec := do(t, h, shopper, http.MethodGet, "/api/v1/orders/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	rec = do(t, h, stranger, http.MethodGet, "/api/v1/orders/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = do(t, h, shopper, http.MethodPost, path+"/reorder", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"quantity":3`)

	rec = do(t, h, operator, http.MethodGet, "/api/v1/orders?status=new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}
