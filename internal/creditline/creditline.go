// Package creditline holds the credit-line domain model and its in-memory
// repository. The business logic here is deliberately thin; the interesting
// machinery of this service is the rate-limit subsystem in front of it.
package creditline

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a credit line.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusClosed    Status = "closed"
)

// ErrNotFound is returned when no credit line exists for an id.
var ErrNotFound = errors.New("creditline: not found")

// CreditLine is one customer's revolving credit facility. Amounts are in
// minor units of Currency.
type CreditLine struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Limit      int64     `json:"limit"`
	Drawn      int64     `json:"drawn"`
	Currency   string    `json:"currency"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Available returns the undrawn portion of the line.
func (c CreditLine) Available() int64 {
	if c.Drawn >= c.Limit {
		return 0
	}
	return c.Limit - c.Drawn
}
