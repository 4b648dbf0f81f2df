package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/casadecultura/backend/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "casadecultura",
		Short: "Casa de Cultura API Server",
		Long:  `REST backend for the Casa de Cultura site: public events and news, contact messages, and the administration panel.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewAdminCommand())
	rootCmd.AddCommand(commands.NewBackupCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
