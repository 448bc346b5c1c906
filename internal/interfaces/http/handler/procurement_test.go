package handler

import (
	"net/http"
	"testing"

	paymentapp "github.com/ghxstship/backend/internal/application/payment"
	procurementapp "github.com/ghxstship/backend/internal/application/procurement"
	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(item, qty, price string) map[string]any {
	return map[string]any{"item_code": item, "quantity": qty, "unit_price": price}
}

func (e *testEnv) purchaseOrder(t *testing.T, number string) procurementapp.PurchaseOrderResponse {
	t.Helper()
	w := testutil.DoJSON(t, e.engine, http.MethodPost, "/api/v1/procurement/purchase-orders", map[string]any{
		"number":      number,
		"vendor_name": "Stage Supply",
		"lines":       []any{line("TRUSS-3M", "10", "150.00"), line("CLAMP", "40", "12.50")},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[procurementapp.PurchaseOrderResponse](t, w)
}

func TestProcurementHandler_ThreeWayMatch(t *testing.T) {
	env := newTestEnv(t)
	po := env.purchaseOrder(t, "PO-100")
	assert.Equal(t, "2000", po.Total.String())
	base := "/api/v1/procurement/purchase-orders/" + po.ID.String()

	w := testutil.DoJSON(t, env.engine, http.MethodPost, base+"/receipts", map[string]any{
		"received_by": "dock",
		"lines":       []any{line("TRUSS-3M", "10", "0"), line("CLAMP", "40", "0")},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoJSON(t, env.engine, http.MethodPost, base+"/invoices", map[string]any{
		"invoice_number": "INV-9",
		"lines":          []any{line("TRUSS-3M", "10", "150.00"), line("CLAMP", "40", "12.60")},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := testutil.DecodeData[procurementapp.InvoiceResponse](t, w)
	assert.Equal(t, string(procurement.MatchPending), inv.MatchStatus)

	// paying before the match is refused
	w = testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/payments", map[string]any{
		"payee": "Stage Supply", "method": "ach", "amount": "2004", "invoice_id": inv.ID,
	})
	testutil.AssertError(t, w, http.StatusUnprocessableEntity, "ERR_BUSINESS_RULE")

	w = testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/procurement/invoices/"+inv.ID.String()+"/match", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	matched := testutil.DecodeData[procurementapp.InvoiceResponse](t, w)
	assert.Equal(t, string(procurement.MatchMatched), matched.MatchStatus, "price within tolerance")
	require.NotNil(t, matched.MatchResult)
	assert.NotNil(t, matched.MatchedAt)

	w = testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/payments", map[string]any{
		"payee": "Stage Supply", "method": "check", "amount": "2004", "invoice_id": inv.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, inv.ID, *testutil.DecodeData[paymentapp.PaymentResponse](t, w).InvoiceID)

	w = testutil.DoJSON(t, env.engine, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := testutil.DecodeData[procurementapp.PurchaseOrderDetailResponse](t, w)
	assert.Len(t, detail.Receipts, 1)
	assert.Len(t, detail.Invoices, 1)
}

func TestProcurementHandler_MatchException(t *testing.T) {
	env := newTestEnv(t)
	po := env.purchaseOrder(t, "PO-200")
	base := "/api/v1/procurement/purchase-orders/" + po.ID.String()

	w := testutil.DoJSON(t, env.engine, http.MethodPost, base+"/receipts", map[string]any{
		"lines": []any{line("TRUSS-3M", "6", "0")},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoJSON(t, env.engine, http.MethodPost, base+"/invoices", map[string]any{
		"invoice_number": "INV-10",
		"lines":          []any{line("TRUSS-3M", "10", "150.00")},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	inv := testutil.DecodeData[procurementapp.InvoiceResponse](t, w)

	w = testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/procurement/invoices/"+inv.ID.String()+"/match", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := testutil.DecodeData[procurementapp.InvoiceResponse](t, w)
	assert.Equal(t, string(procurement.MatchException), got.MatchStatus)
	require.NotNil(t, got.MatchResult)
	assert.Equal(t, procurement.LineQuantityVariance, got.MatchResult.Lines[0].Status)
}

func TestProcurementHandler_Errors(t *testing.T) {
	env := newTestEnv(t)
	po := env.purchaseOrder(t, "PO-300")

	t.Run("duplicate number", func(t *testing.T) {
		w := testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/procurement/purchase-orders", map[string]any{
			"number": "PO-300", "vendor_name": "Other", "lines": []any{line("X", "1", "1")},
		})
		testutil.AssertError(t, w, http.StatusConflict, "ERR_ALREADY_EXISTS")
	})

	t.Run("empty lines", func(t *testing.T) {
		w := testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/procurement/purchase-orders", map[string]any{
			"number": "PO-301", "vendor_name": "Other", "lines": []any{},
		})
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})

	t.Run("receipt for item not on order", func(t *testing.T) {
		w := testutil.DoJSON(t, env.engine, http.MethodPost,
			"/api/v1/procurement/purchase-orders/"+po.ID.String()+"/receipts",
			map[string]any{"lines": []any{line("SPEAKER", "1", "0")}})
		testutil.AssertError(t, w, http.StatusUnprocessableEntity, "ERR_BUSINESS_RULE")
	})

	t.Run("duplicate invoice number", func(t *testing.T) {
		body := map[string]any{"invoice_number": "INV-1", "lines": []any{line("CLAMP", "1", "12.50")}}
		path := "/api/v1/procurement/purchase-orders/" + po.ID.String() + "/invoices"
		require.Equal(t, http.StatusCreated, testutil.DoJSON(t, env.engine, http.MethodPost, path, body).Code)
		w := testutil.DoJSON(t, env.engine, http.MethodPost, path, body)
		testutil.AssertError(t, w, http.StatusConflict, "ERR_ALREADY_EXISTS")
	})

	t.Run("list", func(t *testing.T) {
		w := testutil.DoJSON(t, env.engine, http.MethodGet, "/api/v1/procurement/purchase-orders?search=PO-3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, testutil.DecodeData[[]procurementapp.PurchaseOrderResponse](t, w), 1)
	})
}
