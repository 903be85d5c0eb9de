// Command promote grants admin rights to an existing account. It exists
// as the recovery path for the first-user-becomes-admin bootstrap: if
// that ever picks the wrong account, run this once against the store.
package main

import (
	"flag"
	"log"

	"chucks-kitchen-api/config"
	"chucks-kitchen-api/models"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()
	if *email == "" {
		log.Fatal("usage: promote -email user@example.com")
	}

	_ = godotenv.Load()
	config.InitDB()

	var user models.User
	if err := config.DB.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("user %s not found", *email)
	}
	if user.IsAdmin {
		log.Printf("%s is already an admin", *email)
		return
	}
	if err := config.DB.Model(&user).Update("is_admin", true).Error; err != nil {
		log.Fatalf("failed to promote %s: %v", *email, err)
	}
	log.Printf("%s is now an admin", *email)
}
