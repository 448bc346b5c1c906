package csvimport

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Decoder reads typed cells from one row and records every failure in the
// shared collection. Callers check Failed after decoding all columns.
type Decoder struct {
	row    *Row
	errs   *ErrorCollection
	failed bool
}

// NewDecoder binds a row to an error collection
func NewDecoder(row *Row, errs *ErrorCollection) *Decoder {
	return &Decoder{row: row, errs: errs}
}

// Failed reports whether any cell in the row was rejected
func (d *Decoder) Failed() bool {
	return d.failed
}

func (d *Decoder) reject(column, code, message, value string) {
	d.failed = true
	d.errs.Add(RowError{Row: d.row.LineNumber, Column: column, Code: code, Message: message, Value: value})
}

func (d *Decoder) required(column string) (string, bool) {
	v := d.row.Get(column)
	if v == "" {
		d.reject(column, ErrCodeRequired, "value is required", "")
		return "", false
	}
	return v, true
}

// String returns the cell, or def when blank
func (d *Decoder) String(column, def string) string {
	if v := d.row.Get(column); v != "" {
		return v
	}
	return def
}

// UUID decodes a required UUID cell
func (d *Decoder) UUID(column string) uuid.UUID {
	v, ok := d.required(column)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		d.reject(column, ErrCodeInvalidType, "must be a UUID", v)
		return uuid.Nil
	}
	return id
}

// PositiveInt decodes a required integer greater than zero
func (d *Decoder) PositiveInt(column string) int {
	v, ok := d.required(column)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.reject(column, ErrCodeInvalidType, "must be an integer", v)
		return 0
	}
	if n <= 0 {
		d.reject(column, ErrCodeInvalidRange, "must be greater than zero", v)
		return 0
	}
	return n
}

// NonNegativeDecimal decodes a required decimal that is zero or more
func (d *Decoder) NonNegativeDecimal(column string) decimal.Decimal {
	v, ok := d.required(column)
	if !ok {
		return decimal.Zero
	}
	n, err := decimal.NewFromString(v)
	if err != nil {
		d.reject(column, ErrCodeInvalidType, "must be a decimal number", v)
		return decimal.Zero
	}
	if n.IsNegative() {
		d.reject(column, ErrCodeInvalidRange, "must not be negative", v)
		return decimal.Zero
	}
	return n
}

// Time decodes a required RFC 3339 timestamp or YYYY-MM-DD date (UTC)
func (d *Decoder) Time(column string) time.Time {
	v, ok := d.required(column)
	if !ok {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t
	}
	d.reject(column, ErrCodeInvalidFormat, "must be RFC 3339 or YYYY-MM-DD", v)
	return time.Time{}
}
