package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcode-github/real_estate_portal/config"
	"github.com/dcode-github/real_estate_portal/migrations"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const minAdminPassword = 8

func AdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back office accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account, or reset its password with --reset",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			reset, _ := cmd.Flags().GetBool("reset")

			_, db, err := openDB()
			if err != nil {
				return err
			}
			defer config.CloseDBConnection(db)

			if _, err := migrations.Default(db).Up(); err != nil {
				return err
			}
			admin, err := createAdmin(cmd.Context(), db, username, password, reset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %q ready (id %d)\n", admin.Username, admin.ID)
			return nil
		},
	}
	createCmd.Flags().String("username", "", "Admin username")
	createCmd.Flags().String("password", "", "Admin password")
	createCmd.Flags().Bool("reset", false, "Reset the password when the admin already exists")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")

	cmd.AddCommand(createCmd)
	return cmd
}

func createAdmin(ctx context.Context, db *gorm.DB, username, password string, reset bool) (*models.Admin, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(password) < minAdminPassword {
		return nil, fmt.Errorf("password must be at least %d characters", minAdminPassword)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admins := repository.NewAdminRepository(db)
	admin := &models.Admin{Username: username, PasswordHash: hash, Role: models.RoleAdmin}
	err = admins.Create(ctx, admin)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) || !reset {
		return nil, err
	}

	existing, err := admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := admins.UpdatePassword(ctx, existing.ID, hash); err != nil {
		return nil, err
	}
	return existing, nil
}
