package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"chucks-kitchen-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// defaultCategories are seeded at startup so the menu always has its
// basic sections. Seeding is idempotent.
var defaultCategories = []string{"Sides", "Main Dish", "Drinks", "Desserts"}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BcryptCost returns the password hash cost factor, tunable via BCRYPT_COST.
func BcryptCost() int {
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			return cost
		}
		log.Printf("ignoring invalid BCRYPT_COST %q", v)
	}
	return bcrypt.DefaultCost
}

// SessionTTL returns the sliding session lifetime, tunable via SESSION_TTL_MINUTES.
func SessionTTL() time.Duration {
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
		log.Printf("ignoring invalid SESSION_TTL_MINUTES %q", v)
	}
	return time.Hour
}

// InitDB connects to Postgres when DATABASE_URL is set, otherwise to a
// local SQLite file, and migrates the schema.
func InitDB() {
	var err error
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		DB, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		path := getEnv("SQLITE_PATH", "chucks_kitchen.db")
		DB, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// SeedCategories makes sure every default category row exists. Safe to
// run on every boot.
func SeedCategories(db *gorm.DB) error {
	for _, name := range defaultCategories {
		var category models.Category
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
