package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check catalogue server health",
	Long: `Check the health status of the shelfstream server.

Examples:
  shelfstream health
  shelfstream health --server http://books.example.com:5001`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	health, err := a.client.Health(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(health)
	}
	fmt.Printf("Server Status: %s\n", health.Status)
	fmt.Printf("Server URL: %s\n", a.client.BaseURL())
	return nil
}
