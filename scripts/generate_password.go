package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Prints a bcrypt hash for the admins table, using BCRYPT_COST from the environment.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}
	passwords := auth.NewPasswordManager(cfg)

	password := os.Args[1]
	hash, err := passwords.HashPassword(password)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	if err := passwords.VerifyPassword(password, hash); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Printf("Hash: %s\n", hash)
	fmt.Printf("SQL:  UPDATE admins SET password = '%s' WHERE username = '%s';\n", hash, "admin")
}
