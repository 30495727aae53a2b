package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mithilesh71320/nextera-code/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "staffctl",
		Short: "Operator tooling for the nurse staffing backend",
		Long: `staffctl manages the nurse staffing database: schema migrations,
admin accounts and a quick look at the dashboard numbers.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.CreateAdminCmd())
	rootCmd.AddCommand(cli.StatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
