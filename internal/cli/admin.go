package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/internal/service"
)

// CreateAdminCmd returns the create-admin command
func CreateAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account that can sign in to the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}

			auth := service.NewAuthService(repository.NewUserRepo(e.db), repository.NewAuditRepo(e.db), e.log)
			user, err := auth.CreateAdmin(cmd.Context(), service.AdminInput{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s admin %s (ID: %d)\n",
				color.New(color.FgGreen).Sprint("CREATED"), user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
