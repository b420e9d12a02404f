package main

import (
	"fmt"
	"os"

	"memo2vec/cmd/m2v/cmd"
	"memo2vec/cmd/m2v/cmd/shared"
	"memo2vec/internal/config"
)

func main() {
	// Initialize configuration (non-blocking - only warns about bad keys)
	apiKeys, envPath, err := config.InitializeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "Pass --api-key or fix the keys in your .env file\n")
	} else {
		shared.SetAPIKeys(apiKeys, envPath)
	}

	cmd.Execute()
}
