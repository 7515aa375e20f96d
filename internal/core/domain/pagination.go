package domain

const (
	DefaultPage    = 1
	DefaultPerPage = 50
	MaxPerPage     = 1000
)

// SortOrder is the id ordering applied to a page query.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// PageRequest describes an offset/limit page over a user's notifications.
type PageRequest struct {
	Page    int
	PerPage int
	Order   SortOrder
}

// Normalize fills zero values with defaults and validates the result.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
	if p.Order == "" {
		p.Order = OrderAsc
	}
	if p.Page < 1 {
		return p, Validationf("page must be at least 1")
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return p, Validationf("per_page must be between 1 and %d", MaxPerPage)
	}
	if p.Order != OrderAsc && p.Order != OrderDesc {
		return p, Validationf("order must be one of: asc desc")
	}
	return p, nil
}

// Offset returns the number of rows to skip. The first page applies no
// offset at all, reported as ok == false.
func (p PageRequest) Offset() (offset int, ok bool) {
	if p.Page <= 1 {
		return 0, false
	}
	return (p.Page - 1) * p.PerPage, true
}

// PageResult is one page of notifications plus the metadata of the whole set.
type PageResult struct {
	Total int64
	Count int
	Page  int
	Pages int
	Items []Notification
}

// NewPageResult computes count and page totals for items fetched with req.
func NewPageResult(req PageRequest, total int64, items []Notification) *PageResult {
	if items == nil {
		items = []Notification{}
	}
	pages := 0
	if total > 0 {
		pages = int((total + int64(req.PerPage) - 1) / int64(req.PerPage))
	}
	return &PageResult{
		Total: total,
		Count: len(items),
		Page:  req.Page,
		Pages: pages,
		Items: items,
	}
}
