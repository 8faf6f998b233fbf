package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

func main() {
	env := flag.String("env", domain.EnvLive, "Key environment: live or test")
	name := flag.String("name", "default", "Key name stored alongside the hash")
	flag.Parse()

	key, hash, prefix, err := domain.GenerateAPIKey(*env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf("KEY=%s\nHASH=%s\nPREFIX=%s\n\n", key, hash, prefix)

	// Only the hash goes to the database; the plain key is shown once.
	fmt.Println("-- Run against the vigia database:")
	fmt.Printf("INSERT INTO api_keys (name, key_hash, key_prefix, environment, is_active)\n")
	fmt.Printf("VALUES ('%s', '%s', '%s', '%s', true);\n", *name, hash, prefix, *env)
}
