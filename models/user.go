package models

import (
	"time"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-" gorm:"not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
	IsVerified   bool   `json:"is_verified" gorm:"default:false"`

	// Both are set while a verification code is outstanding and
	// cleared together once it is used.
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	ReferralCode string    `json:"referral_code" gorm:"size:8;uniqueIndex"`
	Orders       []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
