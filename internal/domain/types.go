package domain

// ID is used across domain entities.
type ID = int64

// Roles known to the authorization policy.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// Actor carries the authenticated identity attached by the auth middleware.
type Actor struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Pagination carries paging params and totals. Page is 1-indexed.
type Pagination struct {
	Page       int `json:"currentPage"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
