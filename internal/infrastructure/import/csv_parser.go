// Package csvimport reads header-keyed CSV uploads and collects per-cell
// errors while decoding typed columns.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const encodingProbeSize = 4096

// Parser reads a CSV stream whose first row names the columns. Header names
// are matched case-insensitively.
type Parser struct {
	reader     *csv.Reader
	headers    []string
	headerMap  map[string]int
	currentRow int
	maxRows    int
	dataRows   int
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) { p.reader.Comma = d }
}

// WithMaxRows caps the number of data rows; zero means unlimited
func WithMaxRows(n int) ParserOption {
	return func(p *Parser) { p.maxRows = n }
}

// NewParser strips a UTF-8 BOM, checks the encoding, and reads the header
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	buf := bufio.NewReader(r)

	if bom, err := buf.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = buf.Discard(3)
	}
	probe, err := buf.Peek(encodingProbeSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(probe))) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(trimPartialRune(probe)) {
		return nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	p := &Parser{reader: reader, headerMap: make(map[string]int)}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.readHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// trimPartialRune drops a multi-byte rune cut off by the probe boundary
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if r, _ := utf8.DecodeLastRune(b); r != utf8.RuneError {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

func (p *Parser) readHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		p.headers[i] = name
		if name != "" {
			p.headerMap[name] = i
		}
	}
	if len(p.headerMap) == 0 {
		return ErrMissingHeader
	}
	p.currentRow = 1
	return nil
}

// Headers returns the normalised header names
func (p *Parser) Headers() []string {
	return p.headers
}

// MissingHeaders returns the required columns absent from the header row
func (p *Parser) MissingHeaders(required ...string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := p.headerMap[strings.ToLower(h)]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one data line keyed by header
type Row struct {
	LineNumber int
	data       map[string]string
}

// Get returns the trimmed value for column, empty when absent
func (r *Row) Get(column string) string {
	return r.data[strings.ToLower(column)]
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next non-blank row or io.EOF. A malformed line is
// returned as a RowError and reading may continue.
func (p *Parser) ReadRow() (*Row, error) {
	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		p.currentRow++
		if err != nil {
			return nil, RowError{Row: p.currentRow, Code: ErrCodeMalformedRow, Message: err.Error()}
		}

		row := &Row{LineNumber: p.currentRow, data: make(map[string]string, len(p.headers))}
		for i, header := range p.headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row.data[header] = strings.TrimSpace(record[i])
			} else {
				row.data[header] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}

		p.dataRows++
		if p.maxRows > 0 && p.dataRows > p.maxRows {
			return nil, ErrTooManyRows
		}
		return row, nil
	}
}

// DataRows returns how many non-blank data rows have been read
func (p *Parser) DataRows() int {
	return p.dataRows
}
