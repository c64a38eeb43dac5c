package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for a CLI; environment variables win either way.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Error loading .env file: %v", err)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
