package domain

import "time"

// Placement is a slot on a publisher surface where an ad may render. A
// placement always renders through its template. ReservePct, when set,
// overrides the account-wide reserve percentage (0-100).
type Placement struct {
	ID         string
	Name       string
	TemplateID string
	ReservePct *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
