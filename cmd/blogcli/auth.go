package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techikansh/blogging-platform/internal/auth"
	"github.com/techikansh/blogging-platform/internal/types"
	"github.com/techikansh/blogging-platform/internal/utils"

	"go.uber.org/zap"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				printNotification(types.Notification{Type: types.NotifyError, Message: "Login failed"})
				return err
			}
			if !resp.Success || resp.Token == "" {
				printNotification(types.Notification{Type: types.NotifyError, Message: resp.Message})
				return fmt.Errorf("authentication rejected: %s", resp.Message)
			}

			a.auth.SetAuthState(userFromToken(resp.Token, email), resp.Token)
			printNotification(types.Notification{Type: types.NotifySuccess, Message: "Logged in"})
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Register(cmd.Context(), name, email, password)
			if err != nil {
				printNotification(types.Notification{Type: types.NotifyError, Message: "Registration failed"})
				return err
			}
			if !resp.Success {
				printNotification(types.Notification{Type: types.NotifyError, Message: resp.Message})
				return fmt.Errorf("registration rejected: %s", resp.Message)
			}
			printNotification(types.Notification{Type: types.NotifySuccess, Message: "Registered, you can log in now"})
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session and the persisted token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.auth.Logout()
			printNotification(types.Notification{Type: types.NotifySuccess, Message: "Logged out"})
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := a.auth.Token()
			if token == "" {
				fmt.Println("not logged in")
				return nil
			}

			claims, err := auth.PeekClaims(token)
			if err != nil {
				// An opaque token still counts as a session; the server
				// decides whether it is valid.
				fmt.Println("logged in (opaque token)")
				return nil
			}

			fmt.Printf("logged in as %s\n", claims.Subject)
			if claims.Email != "" {
				faint.Printf("email: %s\n", claims.Email)
			}
			if len(claims.Roles) > 0 {
				faint.Printf("roles: %s\n", strings.Join(claims.Roles, ", "))
			}
			return nil
		},
	}
}

// userFromToken builds the in-memory user from whatever the token
// payload exposes. Display only; nothing is verified client-side.
func userFromToken(token, fallbackEmail string) *types.User {
	claims, err := auth.PeekClaims(token)
	if err != nil {
		utils.Zlog.Debug("token payload not introspectable", zap.Error(err))
		return &types.User{Email: fallbackEmail}
	}

	email := claims.Email
	if email == "" {
		email = fallbackEmail
	}
	return &types.User{
		Username: claims.Subject,
		Email:    email,
		Roles:    claims.Roles,
	}
}
