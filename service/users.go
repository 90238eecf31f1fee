package service

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"mysite/app/repositories"
	"mysite/app/services"

	"github.com/spf13/cobra"
)

func (c *cli) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage post authors",
	}
	cmd.AddCommand(c.newUsersCreateCmd(), c.newUsersListCmd())
	return cmd
}

func (c *cli) newUsersCreateCmd() *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store clearable) error {
				user, err := services.NewUserService(store.Users()).CreateUser(username, email, password)
				if errors.Is(err, repositories.ErrUsernameTaken) {
					return fmt.Errorf("username %q is already taken", username)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %d: %s\n", user.ID, user.Username)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&username, "username", "", "Login name")
	flags.StringVar(&email, "email", "", "E-mail address")
	flags.StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store clearable) error {
				users, err := services.NewUserService(store.Users()).ListUsers()
				if err != nil {
					return err
				}
				if len(users) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No users found")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tCREATED")
				for _, u := range users {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Created.UTC().Format("2006-01-02 15:04"))
				}
				return w.Flush()
			})
		},
	}
}
