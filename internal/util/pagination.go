package util

const MaxPageSize = 100

type Page struct {
	Page    int
	PerPage int
}

// NewPage clamps page to >= 1 and perPage to (0, MaxPageSize], falling back
// to def when perPage is not positive.
func NewPage(page, perPage, def int) Page {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = def
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return Page{Page: page, PerPage: perPage}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Page) Pages(total int64) int {
	if total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
