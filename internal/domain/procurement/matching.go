package procurement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LineStatus is the outcome of matching one item
type LineStatus string

const (
	LineMatched          LineStatus = "matched"
	LineQuantityVariance LineStatus = "quantity_variance"
	LinePriceVariance    LineStatus = "price_variance"
	LineOverReceived     LineStatus = "over_received"
	LineNotReceived      LineStatus = "not_received"
	LineUnorderedItem    LineStatus = "unordered_item"
)

// Tolerance bounds acceptable variance as fractions (0.02 = 2%)
type Tolerance struct {
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// DefaultTolerance allows no quantity variance and 2% on unit price
func DefaultTolerance() Tolerance {
	return Tolerance{
		Quantity: decimal.Zero,
		Price:    decimal.NewFromFloat(0.02),
	}
}

// LineResult compares one item across the three documents
type LineResult struct {
	ItemCode         string          `json:"item_code"`
	Ordered          decimal.Decimal `json:"ordered"`
	Received         decimal.Decimal `json:"received"`
	Invoiced         decimal.Decimal `json:"invoiced"`
	OrderUnitPrice   decimal.Decimal `json:"order_unit_price"`
	InvoiceUnitPrice decimal.Decimal `json:"invoice_unit_price"`
	Status           LineStatus      `json:"status"`
}

// MatchResult is the outcome of a three-way match
type MatchResult struct {
	Status        MatchStatus     `json:"status"`
	Lines         []LineResult    `json:"lines"`
	InvoicedTotal decimal.Decimal `json:"invoiced_total"`
	ExpectedTotal decimal.Decimal `json:"expected_total"`
	Variance      decimal.Decimal `json:"variance"`
}

type orderedItem struct {
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
}

type invoicedItem struct {
	quantity decimal.Decimal
	amount   decimal.Decimal
}

// ThreeWayMatch reconciles an invoice against its purchase order and every
// goods receipt recorded for that order. Only invoiced items are judged;
// items ordered but not yet billed are left for a later invoice.
func ThreeWayMatch(po *PurchaseOrder, receipts []GoodsReceipt, invoice *VendorInvoice, tol Tolerance) MatchResult {
	ordered := make(map[string]orderedItem)
	for _, l := range po.Lines {
		item, ok := ordered[l.ItemCode]
		if !ok {
			item.unitPrice = l.UnitPrice
		}
		item.quantity = item.quantity.Add(l.Quantity)
		ordered[l.ItemCode] = item
	}

	received := make(map[string]decimal.Decimal)
	for _, gr := range receipts {
		for _, l := range gr.Lines {
			received[l.ItemCode] = received[l.ItemCode].Add(l.Quantity)
		}
	}

	invoiced := make(map[string]invoicedItem)
	var codes []string
	for _, l := range invoice.Lines {
		item, seen := invoiced[l.ItemCode]
		if !seen {
			codes = append(codes, l.ItemCode)
		}
		item.quantity = item.quantity.Add(l.Quantity)
		item.amount = item.amount.Add(l.Quantity.Mul(l.UnitPrice))
		invoiced[l.ItemCode] = item
	}
	sort.Strings(codes)

	result := MatchResult{
		Status:        MatchMatched,
		Lines:         make([]LineResult, 0, len(codes)),
		InvoicedTotal: decimal.Zero,
		ExpectedTotal: decimal.Zero,
	}

	for _, code := range codes {
		inv := invoiced[code]
		ord, onOrder := ordered[code]
		rec := received[code]

		line := LineResult{
			ItemCode:         code,
			Ordered:          ord.quantity,
			Received:         rec,
			Invoiced:         inv.quantity,
			OrderUnitPrice:   ord.unitPrice,
			InvoiceUnitPrice: inv.amount.DivRound(inv.quantity, 4),
		}
		line.Status = judgeLine(line, onOrder, tol)

		result.InvoicedTotal = result.InvoicedTotal.Add(inv.amount)
		if onOrder {
			billable := decimal.Min(rec, ord.quantity)
			result.ExpectedTotal = result.ExpectedTotal.Add(billable.Mul(ord.unitPrice))
		}
		if line.Status != LineMatched {
			result.Status = MatchException
		}
		result.Lines = append(result.Lines, line)
	}

	if len(result.Lines) == 0 {
		result.Status = MatchException
	}
	result.Variance = result.InvoicedTotal.Sub(result.ExpectedTotal)
	return result
}

func judgeLine(line LineResult, onOrder bool, tol Tolerance) LineStatus {
	if !onOrder {
		return LineUnorderedItem
	}
	if !line.Received.IsPositive() {
		return LineNotReceived
	}
	if exceeds(line.Received, line.Ordered, tol.Quantity) && line.Received.GreaterThan(line.Ordered) {
		return LineOverReceived
	}
	if exceeds(line.Invoiced, line.Received, tol.Quantity) {
		return LineQuantityVariance
	}
	if exceeds(line.InvoiceUnitPrice, line.OrderUnitPrice, tol.Price) {
		return LinePriceVariance
	}
	return LineMatched
}

// exceeds reports whether |actual - expected| > expected * tolerance
func exceeds(actual, expected, tolerance decimal.Decimal) bool {
	allowed := expected.Abs().Mul(tolerance)
	return actual.Sub(expected).Abs().GreaterThan(allowed)
}
