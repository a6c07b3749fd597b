package domain

import "time"

// SiteSetting is a single key/value configuration row (site name, discord
// invite, banner text and the like).
type SiteSetting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// AboutContent is one section of the about page.
type AboutContent struct {
	ID        string
	Title     string
	Body      string
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
