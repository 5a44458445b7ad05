// Package warehouse holds the fulfilment-side records that store data is
// mapped into.
package warehouse

import (
	"strings"
	"time"
)

// Address is a shipping label address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Label renders the address as printed on a parcel.
func (a Address) Label() string {
	return strings.Join([]string{a.Street, a.PostalCode + " " + a.City, a.Country}, "\n")
}

// Customer is the recipient record kept by the warehouse.
type Customer struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`

	DefaultBillingAddressID *uint `json:"default_billing_address_id,omitempty"`

	Addresses []Address `json:"addresses,omitempty"`
	Orders    []Order   `json:"orders,omitempty"`
}

// Order is a shipment to pick and pack.
type Order struct {
	ID          uint   `json:"id"`
	CustomerID  uint   `json:"customer_id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"` // cents
	Lines       []Line `json:"lines"`

	ShippingAddress Address `json:"shipping_address"`
	BillingAddress  Address `json:"billing_address"`

	PlacedAt  *time.Time `json:"placed_at,omitempty"`
	ShippedAt *time.Time `json:"shipped_at,omitempty"`
}

// Line is a product to pick for an order.
type Line struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
