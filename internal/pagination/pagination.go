package pagination

import "gorm.io/gorm"

// DefaultLimit is the page size used when the request names none.
const DefaultLimit = 10

// PageRequest holds pagination parameters parsed from query strings. The
// values are forwarded to the remote query verbatim.
type PageRequest struct {
	Offset int `form:"offset" binding:"omitempty,min=0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when limit is not provided. A zero
// offset needs no defaulting.
func (p *PageRequest) Defaults() {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given
// page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset).Limit(req.Limit)
	}
}
