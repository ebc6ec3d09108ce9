package domain

import "time"

// Template holds the HTML sources a placement renders with. HTML is the
// primary source used for real campaigns; Fallback is optional and used
// when no usable creative exists. Both are immutable within a request.
type Template struct {
	ID        string
	Name      string
	HTML      string
	Fallback  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
