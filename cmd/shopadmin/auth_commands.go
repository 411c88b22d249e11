package main

import (
	"fmt"
	"time"

	"github.com/jrsteele09/go-shop-admin/auth"
	"github.com/spf13/cobra"
)

func newLoginCommand(app appGetter) *cobra.Command {
	var creds auth.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the issued credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app().auth.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result.User)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app appGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().auth.Logout(cmd.Context())
		},
	}
}

func newWhoAmICommand(app appGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			user, err := a.auth.CurrentUser()
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), user); err != nil {
				return err
			}
			if tok, err := a.store.TokenSource().Token(); err == nil && !tok.Expiry.IsZero() {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "token expires %s\n", tok.Expiry.Local().Format(time.RFC1123))
				return err
			}
			return nil
		},
	}
}

func newRefreshCommand(app appGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Trade the stored refresh token for a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().auth.Refresh(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token refreshed")
			return err
		},
	}
}

func newOTPCommand(app appGetter) *cobra.Command {
	otpCmd := &cobra.Command{
		Use:   "otp",
		Short: "One-time passcodes",
	}

	sendCmd := &cobra.Command{
		Use:   "send <email>",
		Short: "Email a one-time passcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app().auth.SendOTP(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "code sent to %s, valid for %ds\n", result.Email, result.ExpiresIn)
			return err
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <email> <code>",
		Short: "Check a one-time passcode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().auth.VerifyOTP(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "code valid")
			return err
		},
	}

	otpCmd.AddCommand(sendCmd, verifyCmd)
	return otpCmd
}
