package services

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Page is offset/limit pagination. Zero values get the defaults; callers
// must page explicitly past the small default limit.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
