package main

import (
	"fmt"
	"os"

	"logistics-org/database"
	"logistics-org/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/seed.go migrate - Run database migrations")
		fmt.Println("  go run tools/seed.go seed    - Seed the fixed user set")
		return
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		fmt.Println("🚀 Seeding users...")
		db, err := database.InitDB()
		if err != nil {
			fmt.Printf("❌ Database connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := seeders.SeedUsers(db); err != nil {
			fmt.Printf("❌ Seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Seeding completed successfully!")
		fmt.Println("\nCredentials:")
		fmt.Println("Admin: admin123 / admin123")
		fmt.Println("Agents: agent_<city> / agent123 (e.g. agent_mumbai)")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed")
	}
}
