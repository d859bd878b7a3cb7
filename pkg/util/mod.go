package util

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Initialize env vars
func LoadEnvFor(v string) (x string) {
	err := godotenv.Load()

	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	x = os.Getenv(v)

	return
}
