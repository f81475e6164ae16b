package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	var loginEmail, loginPassword string
	var loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginEmail == "" || loginPassword == "" {
				return fmt.Errorf("email and password are required")
			}
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			user, err := client.Login(ctx, loginEmail, loginPassword)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s).\n", user.Name, user.Email)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	rootCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := client.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	})

	var regName, regEmail, regPassword, regConfirm string
	var registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			user, err := client.Register(ctx, regName, regEmail, regPassword, regConfirm)
			if err != nil {
				return err
			}
			fmt.Printf("Account created for %s. You are now logged in.\n", user.Email)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&regName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password")
	registerCmd.Flags().StringVar(&regConfirm, "confirm", "", "Password confirmation")
	rootCmd.AddCommand(registerCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if !client.Session().LoggedIn() {
				fmt.Println("Not logged in.")
				return nil
			}
			user, err := client.CachedUser(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
			if user.IsAdmin() {
				fmt.Println("Role: admin")
			}
			if info, err := client.Session().InspectToken(); err == nil {
				state := "valid"
				if info.Expired(time.Now()) {
					state = "expired, will refresh on next request"
				}
				fmt.Printf("Access token: %s until %s\n", state, info.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	})

	var forgotEmail string
	var forgotCmd = &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if forgotEmail == "" {
				return fmt.Errorf("email is required")
			}
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := client.ForgotPassword(ctx, forgotEmail); err != nil {
				return err
			}
			fmt.Println("If the account exists, a reset email is on its way.")
			return nil
		},
	}
	forgotCmd.Flags().StringVar(&forgotEmail, "email", "", "Account email")
	rootCmd.AddCommand(forgotCmd)

	var resetToken, resetPassword, resetConfirm string
	var resetCmd = &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resetToken == "" {
				return fmt.Errorf("token is required")
			}
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := client.ResetPassword(ctx, resetToken, resetPassword, resetConfirm); err != nil {
				return err
			}
			fmt.Println("Password updated. You can log in now.")
			return nil
		},
	}
	resetCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the email")
	resetCmd.Flags().StringVar(&resetPassword, "password", "", "New password")
	resetCmd.Flags().StringVar(&resetConfirm, "confirm", "", "Password confirmation")
	rootCmd.AddCommand(resetCmd)
}
