package forecast

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/domain/forecast"
	csvimport "github.com/ghxstship/backend/internal/infrastructure/import"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const periodLayout = "2006-01"

// DemandQuery selects the history a demand forecast is built from
type DemandQuery struct {
	EventID        *uuid.UUID
	Metric         demand.Metric
	Horizon        int
	LookbackMonths int
}

// SeriesRequest is an ad-hoc forecast of caller-supplied period totals.
// Each value is bounded to +/-1e12.
type SeriesRequest struct {
	Values  []float64 `json:"values" binding:"required,min=1,max=600,dive,gte=-1000000000000,lte=1000000000000"`
	Horizon int       `json:"horizon" binding:"required,min=1,max=36"`
}

// PeriodValue is one historical monthly total
type PeriodValue struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// PointResponse is one projected period
type PointResponse struct {
	Step       int     `json:"step"`
	Period     string  `json:"period,omitempty"`
	Value      float64 `json:"value"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Confidence float64 `json:"confidence"`
}

// ForecastResponse is the API shape of a forecast
type ForecastResponse struct {
	EventID        *uuid.UUID      `json:"event_id,omitempty"`
	Metric         string          `json:"metric,omitempty"`
	Method         string          `json:"method"`
	Horizon        int             `json:"horizon"`
	LookbackMonths int             `json:"lookback_months,omitempty"`
	Accuracy       float64         `json:"accuracy"`
	Level          float64         `json:"level"`
	Trend          float64         `json:"trend"`
	Seasonal       []float64       `json:"seasonal,omitempty"`
	History        []PeriodValue   `json:"history,omitempty"`
	Points         []PointResponse `json:"points"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Cached         bool            `json:"cached"`
}

func toForecastResponse(result forecast.Result, horizon int, generatedAt time.Time) *ForecastResponse {
	points := make([]PointResponse, len(result.Points))
	for i, p := range result.Points {
		points[i] = PointResponse{
			Step:       p.Step,
			Value:      p.Value,
			Lower:      p.Lower,
			Upper:      p.Upper,
			Confidence: p.Confidence,
		}
	}
	return &ForecastResponse{
		Method:      string(result.Method),
		Horizon:     horizon,
		Accuracy:    result.Accuracy,
		Level:       result.Level,
		Trend:       result.Trend,
		Seasonal:    result.Seasonal,
		Points:      points,
		GeneratedAt: generatedAt,
	}
}

// RecordSaleRequest records one ticket sale
type RecordSaleRequest struct {
	EventID  uuid.UUID       `json:"event_id" binding:"required"`
	Channel  string          `json:"channel" binding:"max=50"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Amount   decimal.Decimal `json:"amount"`
	SoldAt   time.Time       `json:"sold_at"`
}

// TicketSaleResponse is the API shape of a sale
type TicketSaleResponse struct {
	ID        uuid.UUID       `json:"id"`
	EventID   uuid.UUID       `json:"event_id"`
	Channel   string          `json:"channel"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	SoldAt    time.Time       `json:"sold_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToTicketSaleResponse converts a domain sale
func ToTicketSaleResponse(s *demand.TicketSale) TicketSaleResponse {
	return TicketSaleResponse{
		ID:        s.ID,
		EventID:   s.EventID,
		Channel:   s.Channel,
		Quantity:  s.Quantity,
		Amount:    s.Amount,
		Currency:  s.Currency,
		SoldAt:    s.SoldAt,
		CreatedAt: s.CreatedAt,
	}
}

// TicketSaleListFilter holds list parameters
type TicketSaleListFilter struct {
	EventID  *uuid.UUID
	Page     int
	PageSize int
}

// ImportResult reports a CSV import. Rows are only written when ErrorCount
// is zero.
type ImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorCount   int                  `json:"error_count"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
}
