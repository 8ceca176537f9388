package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ministryos/scheduler-api-go/pkg/auth"
	"github.com/ministryos/scheduler-api-go/pkg/config"
)

func main() {
	// Load .env from the working directory or project root
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <ownerID>")
		os.Exit(1)
	}

	ownerID := os.Args[1]
	cfg := config.Load()
	if cfg.APIMasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not set")
		os.Exit(1)
	}

	key := auth.NewService(cfg).GenerateHMACKey(ownerID)
	fmt.Printf("Generated Key for %s:\n%s\n", ownerID, key)
}
