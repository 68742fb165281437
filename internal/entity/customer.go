package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an accounting-ledger customer used to name a purchase order's sender.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	CompanyName string    `json:"company_name"`
	GivenName   string    `json:"given_name,omitempty"`
	FamilyName  string    `json:"family_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	WebAddr     string    `json:"web_addr,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
