package domain

import "time"

// StatusPending is the status every order starts in.
const StatusPending = "Pending"

type Order struct {
	OrderID          string    `json:"orderId"`
	UserEmail        string    `json:"userEmail"`
	Service          string    `json:"service"`
	Quantity         int       `json:"quantity"`
	Price            float64   `json:"price"`
	TotalPrice       float64   `json:"totalPrice"`
	Date             time.Time `json:"date"`
	Status           string    `json:"status"`
	ExpectedDelivery string    `json:"expectedDelivery,omitempty"`
	PickupPerson     string    `json:"pickupPerson,omitempty"`
}

// OrderUpdate is the whitelist of fields a caller may change on an existing
// order. Nil fields are left untouched.
type OrderUpdate struct {
	Status           *string `json:"status"`
	ExpectedDelivery *string `json:"expectedDelivery"`
	PickupPerson     *string `json:"pickupPerson"`
}

func (u OrderUpdate) Empty() bool {
	return u.Status == nil && u.ExpectedDelivery == nil && u.PickupPerson == nil
}
