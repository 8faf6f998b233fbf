package main

import (
	"fmt"
	"os"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// calc_api_hash.go - Utility to calculate the SHA256 hash stored for an API key
//
// Usage:
//   go run scripts/calc_api_hash.go <api_key>
//
// Example:
//   go run scripts/calc_api_hash.go vigia_test_devdevdevdevdevdevdevdevdevdev00
//
// Output:
//   the hash to compare against api_keys.key_hash

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run calc_api_hash.go <api_key>")
		fmt.Println("")
		fmt.Println("Example:")
		fmt.Println("  go run scripts/calc_api_hash.go vigia_test_devdevdevdevdevdevdevdevdevdev00")
		os.Exit(1)
	}

	apiKey := os.Args[1]

	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("SHA256:  %s\n", domain.HashAPIKey(apiKey))
}
