package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/carwashdash/core/cmd/api/commands"
	_ "github.com/carwashdash/core/docs"
)

// @title CarwashDash API
// @version 1.0
// @description Operational dashboard for a car wash: task boards, agenda, kennisbank and supply orders.

// @contact.name CarwashDash
// @contact.url https://github.com/carwashdash/core

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "carwashdash",
		Short: "CarwashDash API Server",
		Long:  `CarwashDash serves the admin console and kiosk tablet views of a car wash: daily task boards, the recurring weekly board, agenda, kennisbank and supply orders.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
