package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *ProcurementService
	orders   *MockPurchaseOrderRepository
	receipts *MockGoodsReceiptRepository
	invoices *MockVendorInvoiceRepository
}

func newFixture() *fixture {
	f := &fixture{
		orders:   new(MockPurchaseOrderRepository),
		receipts: new(MockGoodsReceiptRepository),
		invoices: new(MockVendorInvoiceRepository),
	}
	f.svc = NewProcurementService(f.orders, f.receipts, f.invoices, ToleranceFromFractions(0, 0.02), nil)
	return f
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestOrder(t *testing.T, tenantID uuid.UUID) *procurement.PurchaseOrder {
	t.Helper()
	po, err := procurement.NewPurchaseOrder(tenantID, "po-100", "Truss Supply", []procurement.LineInput{
		{ItemCode: "TRUSS-3M", Quantity: d("10"), UnitPrice: d("250")},
		{ItemCode: "CLAMP", Quantity: d("40"), UnitPrice: d("12.50")},
	})
	require.NoError(t, err)
	return po
}

func TestProcurementService_CreatePurchaseOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.orders.On("Create", ctx, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)

	resp, err := f.svc.CreatePurchaseOrder(ctx, uuid.New(), uuid.New(), CreatePurchaseOrderRequest{
		Number:     "po-100",
		VendorName: "Truss Supply",
		Currency:   "eur",
		Lines: []LineRequest{
			{ItemCode: "truss-3m", Quantity: d("10"), UnitPrice: d("250")},
			{ItemCode: "clamp", Quantity: d("40"), UnitPrice: d("12.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PO-100", resp.Number)
	assert.Equal(t, "EUR", resp.Currency)
	assert.True(t, d("3000").Equal(resp.Total))
	assert.Equal(t, "TRUSS-3M", resp.Lines[0].ItemCode)
}

func TestProcurementService_RecordReceipt_ItemNotOnOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	po := newTestOrder(t, tenantID)
	f.orders.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)

	_, err := f.svc.RecordReceipt(ctx, tenantID, po.ID, uuid.New(), RecordReceiptRequest{
		Lines: []LineRequest{{ItemCode: "CABLE", Quantity: d("1")}},
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ITEM_NOT_ON_ORDER", domainErr.Code)
	f.receipts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcurementService_Match(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fixedNow := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	setup := func(t *testing.T, invoiceLines []procurement.LineInput) (*fixture, *procurement.VendorInvoice) {
		f := newFixture()
		f.svc.now = func() time.Time { return fixedNow }
		po := newTestOrder(t, tenantID)
		gr, err := procurement.NewGoodsReceipt(po, "dock", fixedNow.AddDate(0, 0, -2), []procurement.LineInput{
			{ItemCode: "TRUSS-3M", Quantity: d("10")},
			{ItemCode: "CLAMP", Quantity: d("40")},
		})
		require.NoError(t, err)
		inv, err := procurement.NewVendorInvoice(po, "INV-1", fixedNow, invoiceLines)
		require.NoError(t, err)

		f.invoices.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
		f.orders.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)
		f.receipts.On("FindByPurchaseOrder", ctx, tenantID, po.ID).Return([]procurement.GoodsReceipt{*gr}, nil)
		f.invoices.On("SaveMatch", ctx, inv).Return(nil)
		return f, inv
	}

	t.Run("within price tolerance matches", func(t *testing.T) {
		f, inv := setup(t, []procurement.LineInput{
			{ItemCode: "TRUSS-3M", Quantity: d("10"), UnitPrice: d("254")},
			{ItemCode: "CLAMP", Quantity: d("40"), UnitPrice: d("12.50")},
		})

		resp, err := f.svc.Match(ctx, tenantID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "matched", resp.MatchStatus)
		require.NotNil(t, resp.MatchedAt)
		assert.Equal(t, fixedNow, *resp.MatchedAt)
		f.invoices.AssertExpectations(t)
	})

	t.Run("price outside tolerance is an exception", func(t *testing.T) {
		f, inv := setup(t, []procurement.LineInput{
			{ItemCode: "TRUSS-3M", Quantity: d("10"), UnitPrice: d("260")},
		})

		resp, err := f.svc.Match(ctx, tenantID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "exception", resp.MatchStatus)
		require.NotNil(t, resp.MatchResult)
		assert.Equal(t, procurement.LinePriceVariance, resp.MatchResult.Lines[0].Status)
		assert.True(t, d("100").Equal(resp.MatchResult.Variance))
	})

	t.Run("unordered item", func(t *testing.T) {
		f, inv := setup(t, []procurement.LineInput{
			{ItemCode: "GAFFER", Quantity: d("5"), UnitPrice: d("8")},
		})

		resp, err := f.svc.Match(ctx, tenantID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, procurement.LineUnorderedItem, resp.MatchResult.Lines[0].Status)
	})
}

func TestProcurementService_GetPurchaseOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	po := newTestOrder(t, tenantID)
	f.orders.On("FindByIDForTenant", ctx, tenantID, po.ID).Return(po, nil)
	f.receipts.On("FindByPurchaseOrder", ctx, tenantID, po.ID).Return([]procurement.GoodsReceipt{}, nil)
	f.invoices.On("FindByPurchaseOrder", ctx, tenantID, po.ID).Return([]procurement.VendorInvoice{}, nil)

	resp, err := f.svc.GetPurchaseOrder(ctx, tenantID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-100", resp.Number)
	assert.Empty(t, resp.Receipts)
	assert.Empty(t, resp.Invoices)
}
