package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"blorkfield-site/app"
)

func main() {
	// Load .env in development; in production variables are set directly.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
		}
	}

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
