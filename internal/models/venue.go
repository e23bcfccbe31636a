package models

// Venue represents a bookable music venue
type Venue struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	ImageLink          string   `json:"image_link"`
	Genres             []string `json:"genres"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// Artist represents a performer with a public profile
type Artist struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	ImageLink          string   `json:"image_link"`
	Genres             []string `json:"genres"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}
