package domain

import "time"

// LocationSetting is a server region advertised on the site.
type LocationSetting struct {
	ID        string
	Name      string
	Country   string
	Flag      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// YTPartner is a featured YouTube partner channel.
type YTPartner struct {
	ID         string
	Name       string
	ChannelURL string
	Avatar     string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
