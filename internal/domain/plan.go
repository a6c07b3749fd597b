package domain

import "time"

// PaidPlan is a purchasable hosting plan shown on the pricing page.
type PaidPlan struct {
	ID        string
	Name      string
	Price     string
	Period    string
	Specs     []string
	SortOrder int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FreePlan is the one-per-account promotional plan.
type FreePlan struct {
	ID        string
	Name      string
	Specs     []string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
