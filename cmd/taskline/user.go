package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskline-dev/taskline/internal/models"
	"github.com/taskline-dev/taskline/internal/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		user, err := entities.CreateUser(store.CreateUserParams{
			Username: username,
			Email:    email,
			Password: password,
			Role:     models.Role(role),
		})
		if err != nil {
			return err
		}

		fmt.Printf("created user %d (%s)\n", user.ID, user.Username)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := entities.ListUsers(0, 0)
		if err != nil {
			return err
		}

		for _, u := range users {
			fmt.Printf("%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
		}
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user (references to it are cleared, nothing else is deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := entities.DeleteUser(id); err != nil {
			return err
		}

		fmt.Printf("deleted user %d\n", id)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().String("username", "", "unique username")
	userCreateCmd.Flags().String("email", "", "unique email address")
	userCreateCmd.Flags().String("password", "", "password (stored as a bcrypt hash)")
	userCreateCmd.Flags().String("role", "user", "role: user, admin, or project_manager")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
}
