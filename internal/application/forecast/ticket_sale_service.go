package forecast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/domain/shared"
	csvimport "github.com/ghxstship/backend/internal/infrastructure/import"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Import limits
const (
	MaxImportRows   = 10000
	maxImportErrors = 100
)

var importColumns = []string{"event_id", "quantity", "amount", "sold_at"}

// CacheInvalidator drops cached forecasts after the history changes
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// TicketSaleService records ticket sales
type TicketSaleService struct {
	sales       demand.TicketSaleRepository
	invalidator CacheInvalidator
	logger      *zap.Logger
}

// NewTicketSaleService creates a TicketSaleService
func NewTicketSaleService(sales demand.TicketSaleRepository, invalidator CacheInvalidator, log *zap.Logger) *TicketSaleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TicketSaleService{sales: sales, invalidator: invalidator, logger: log}
}

// Record stores one sale and invalidates the tenant's cached forecasts
func (s *TicketSaleService) Record(ctx context.Context, tenantID, userID uuid.UUID, req RecordSaleRequest) (*TicketSaleResponse, error) {
	sale, err := demand.NewTicketSale(tenantID, req.EventID, req.Channel, req.Quantity, req.Amount, req.SoldAt)
	if err != nil {
		return nil, err
	}
	sale.SetCreatedBy(userID)

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, tenantID)

	resp := ToTicketSaleResponse(sale)
	return &resp, nil
}

// List returns a page of sales, newest first
func (s *TicketSaleService) List(ctx context.Context, tenantID uuid.UUID, filter TicketSaleListFilter) ([]TicketSaleResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "sold_at"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	sales, err := s.sales.FindAllForTenant(ctx, tenantID, filter.EventID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.sales.CountForTenant(ctx, tenantID, filter.EventID)
	if err != nil {
		return nil, 0, err
	}

	out := make([]TicketSaleResponse, len(sales))
	for i := range sales {
		out[i] = ToTicketSaleResponse(&sales[i])
	}
	return out, total, nil
}

// Import reads a CSV of sales. Every row is decoded before anything is
// written; if any row fails the result lists the errors and nothing is saved.
func (s *TicketSaleService) Import(ctx context.Context, tenantID, userID uuid.UUID, r io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewParser(r, csvimport.WithMaxRows(MaxImportRows))
	if err != nil {
		return nil, invalidFile(err)
	}
	if missing := parser.MissingHeaders(importColumns...); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_CSV", "Missing required columns: "+strings.Join(missing, ", "))
	}

	errs := csvimport.NewErrorCollection(maxImportErrors)
	var sales []*demand.TicketSale
	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		var rowErr csvimport.RowError
		if errors.As(err, &rowErr) {
			errs.Add(rowErr)
			continue
		}
		if err != nil {
			return nil, invalidFile(err)
		}

		if sale := decodeSale(tenantID, row, errs); sale != nil {
			sale.SetCreatedBy(userID)
			sales = append(sales, sale)
		}
	}

	result := &ImportResult{
		TotalRows:   parser.DataRows(),
		ErrorCount:  errs.TotalCount(),
		Errors:      errs.Errors(),
		IsTruncated: errs.IsTruncated(),
	}
	if result.TotalRows == 0 && !errs.HasErrors() {
		return nil, invalidFile(csvimport.ErrNoDataRows)
	}
	if errs.HasErrors() {
		return result, nil
	}

	if err := s.sales.SaveBatch(ctx, sales); err != nil {
		return nil, fmt.Errorf("save imported sales: %w", err)
	}
	result.ImportedRows = len(sales)
	s.invalidator.Invalidate(ctx, tenantID)

	logger.Enrich(ctx, s.logger).Info("Ticket sales imported", zap.Int("rows", result.ImportedRows))
	return result, nil
}

func decodeSale(tenantID uuid.UUID, row *csvimport.Row, errs *csvimport.ErrorCollection) *demand.TicketSale {
	d := csvimport.NewDecoder(row, errs)
	eventID := d.UUID("event_id")
	quantity := d.PositiveInt("quantity")
	amount := d.NonNegativeDecimal("amount")
	soldAt := d.Time("sold_at")
	channel := d.String("channel", "web")
	if d.Failed() {
		return nil
	}

	sale, err := demand.NewTicketSale(tenantID, eventID, channel, quantity, amount, soldAt)
	if err != nil {
		errs.Add(csvimport.RowError{Row: row.LineNumber, Code: csvimport.ErrCodeInvalidFormat, Message: err.Error()})
		return nil
	}
	return sale
}

func invalidFile(err error) error {
	return shared.NewDomainError("INVALID_CSV", err.Error())
}
