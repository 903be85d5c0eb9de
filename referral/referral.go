// Package referral issues the per-user referral codes handed out at
// registration.
package referral

import (
	"crypto/rand"
	"errors"
	"math/big"

	"chucks-kitchen-api/models"

	"gorm.io/gorm"
)

// codeAlphabet skips visually ambiguous characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 8

// GenerateCode returns a new 8-character referral code.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// Lookup returns the owner of a referral code, or nil when no user
// carries it.
func Lookup(db *gorm.DB, code string) (*models.User, error) {
	var user models.User
	if err := db.Where("referral_code = ?", code).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
