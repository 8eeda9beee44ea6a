// Package domain contains the core data types for the livestock logbook API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, localdb, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a livestock supplier the company collects animals from.
// Optional fields (Phone, Region, DefaultMark) use the empty string as "not set".
type Supplier struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone,omitempty"`
	Region string    `json:"region,omitempty"`

	// DefaultMark is the brand/ear-mark code pre-filled on trip line items
	// created for this supplier when no mark is given explicitly.
	DefaultMark string    `json:"default_mark,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
