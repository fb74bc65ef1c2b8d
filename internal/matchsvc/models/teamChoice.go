package models

import "time"

// TeamChoice is an in-simulation squad and how often it was picked.
type TeamChoice struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`     // unique squad name
	Stars     int       `json:"stars"`    // 0 (unrated) to 5
	NChoices  int       `json:"nChoices"` // times picked
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const MaxStars = 5
