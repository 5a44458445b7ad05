package store

import (
	"fmt"
	"time"
)

// 1. Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// 2. Customer represents the user placing orders.
type Customer struct {
	ID       int64             `json:"id"`
	Email    string            `json:"email"`
	FullName string            `json:"full_name"`
	Address  *Address          `json:"address"`
	Labels   map[string]string `json:"labels,omitempty"`
	Orders   []Order           `json:"orders,omitempty"`
	IsActive bool              `json:"is_active"`
}

// DisplayName returns the name shown on invoices.
func (c *Customer) DisplayName() string {
	if c.FullName == "" {
		return c.Email
	}

	return c.FullName
}

// Address is the postal address a customer ships to.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// 3. Order represents a transaction made by a customer.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"` // Has-Many relationship
	OrderedAt  time.Time   `json:"ordered_at"`
}

// Total sums the line items. It fails when a line has a negative quantity.
func (o Order) Total() (int64, error) {
	var total int64

	for _, item := range o.Items {
		if item.Quantity < 0 {
			return 0, fmt.Errorf("item %d has negative quantity", item.ProductID)
		}

		total += int64(item.Quantity) * item.UnitPrice
	}

	return total, nil
}

// 4. OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"` // Redundant but useful for history if product name changes
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// 5. OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
