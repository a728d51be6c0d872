package models

import (
	"errors"
	"time"
)

// Role discriminators stored on a user row.
const (
	RoleAdmin    = 1
	RoleCustomer = 2
)

var (
	// ErrNoRecord is returned when a lookup matches no row.
	ErrNoRecord = errors.New("models: no matching record found")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so a caller cannot tell the two apart.
	ErrInvalidCredentials = errors.New("models: invalid credentials")

	// ErrDuplicateUsername is returned when an insert trips the unique
	// constraint on users.username.
	ErrDuplicateUsername = errors.New("models: duplicate username")

	// ErrProductInUse is returned when deleting a product that historical
	// order items still reference.
	ErrProductInUse = errors.New("models: product referenced by order items")
)

type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           int    `json:"role"`
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// CartLine is one (product, quantity) pair submitted at checkout.
type CartLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Order is an order header together with its line items. Total is derived
// from the current product prices at read time and is never stored.
type Order struct {
	ID            int         `json:"id"`
	UserID        int         `json:"user_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	OrderDate     time.Time   `json:"order_date"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
}

type OrderItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
