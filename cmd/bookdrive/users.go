package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bookdrive/internal/errors"
	"bookdrive/internal/model"
	"bookdrive/internal/service"
)

var (
	userEmail     string
	userPassword  string
	userFirstName string
	userLastName  string
	userRole      string
)

func init() {
	for _, c := range []*cobra.Command{createUserCmd, createSuperuserCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "email address (required)")
		c.Flags().StringVar(&userPassword, "password", "", "password; falls back to BOOKDRIVE_PASSWORD")
		c.Flags().StringVar(&userFirstName, "first-name", "", "first name")
		c.Flags().StringVar(&userLastName, "last-name", "", "last name")
		c.Flags().StringVar(&userRole, "role", "", "role: Admin, Manager or Employee")
	}
}

func userInput() (service.NewUserInput, error) {
	in := service.NewUserInput{
		Email:     userEmail,
		Password:  userPassword,
		FirstName: userFirstName,
		LastName:  userLastName,
		CreatedBy: "cli",
	}
	if in.Password == "" {
		in.Password = os.Getenv("BOOKDRIVE_PASSWORD")
	}
	if userRole != "" {
		role, err := model.ParseRole(userRole)
		if err != nil {
			return in, fmt.Errorf("%w: %s", errors.ErrInvalidRole, userRole)
		}
		in.Role = &role
	}
	return in, nil
}

var createUserCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Create a user (role defaults to Employee)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateUser(cmd, false)
	},
}

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an active Admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateUser(cmd, true)
	},
}

func runCreateUser(cmd *cobra.Command, superuser bool) error {
	in, err := userInput()
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	create := a.users().CreateUser
	if superuser {
		create = a.users().CreateSuperuser
	}
	user, err := create(cmd.Context(), in)
	if err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Printf("Created %s user %s (uid %s)\n", user.Role, user.Email, user.UID)
	return nil
}
