package shared

// Filter is the list query every tenant-scoped repository accepts. OrderBy
// is checked against a per-repository allowlist; Filters carries exact
// matches keyed by column.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter is page 1 of 20, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]interface{}{},
	}
}

// Offset is the number of rows before the current page
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Where adds an exact-match condition and returns the filter
func (f Filter) Where(key string, value interface{}) Filter {
	next := make(map[string]interface{}, len(f.Filters)+1)
	for k, v := range f.Filters {
		next[k] = v
	}
	next[key] = value
	f.Filters = next
	return f
}
