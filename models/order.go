package models

import "time"

// OrderStatus represents all possible states of an order's lifecycle
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"index;not null"`
	User        User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	OrderID  uint `json:"order_id" gorm:"not null"`
	FoodID   uint `json:"food_id" gorm:"not null"`
	Food     Food `json:"food,omitempty" gorm:"foreignKey:FoodID"`
	Quantity int  `json:"quantity" gorm:"not null"`
	// snapshot of the food's price at order time; later catalog
	// price changes never touch it
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
}
