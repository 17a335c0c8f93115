package request

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	MaxPage        = 1_000_000
)

type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Normalize clamps Page to 1..MaxPage and PerPage to 1..MaxPerPage.
func (p *PaginatedRequest) Normalize() {
	p.Page = min(max(p.Page, 1), MaxPage)
	p.PerPage = p.Limit()
}

func (p PaginatedRequest) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	return (page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	return min(p.PerPage, MaxPerPage)
}
