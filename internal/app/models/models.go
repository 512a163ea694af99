// Package models holds the domain types shared by repositories, services and controllers.
package models

import "time"

// Timestamps is embedded by persisted entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
