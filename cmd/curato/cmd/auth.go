package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curato/curation-client/internal/core/domain"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email-or-username>",
	Short: "Sign in and store the session token",
	Long: `Sign in with an email address or username. The password is read from
--password, or from the first line of stdin when the flag is omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		password := loginPassword
		if password == "" {
			if password, err = readLine(cmd.InOrStdin()); err != nil {
				return err
			}
		}

		res, err := a.Session.Login(cmd.Context(), args[0], password)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(res.Identity))
		return nil
	},
}

var signupInput domain.SignupInput

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	Long:  `Register a new account. Signing up does not sign you in; run "curato login" afterwards.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Session.Signup(cmd.Context(), signupInput)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Session.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Show the identity carried by the stored token. The token is decoded locally and not verified.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(a); err != nil {
			return err
		}
		id := a.Session.Session().Identity
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", displayName(*id))
		fmt.Fprintf(out, "  id:       %s\n", id.UserID())
		fmt.Fprintf(out, "  username: %s\n", id.Username)
		fmt.Fprintf(out, "  email:    %s\n", id.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")

	f := signupCmd.Flags()
	f.StringVar(&signupInput.FullName, "full-name", "", "full name")
	f.StringVar(&signupInput.Username, "username", "", "username")
	f.StringVar(&signupInput.Email, "email", "", "email address")
	f.StringVar(&signupInput.Password, "password", "", "password")
	f.StringVar(&signupInput.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
	f.StringVar(&signupInput.Phone, "phone", "", "phone number")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func displayName(id domain.Identity) string {
	switch {
	case id.FullName != "":
		return id.FullName
	case id.Username != "":
		return id.Username
	case id.Email != "":
		return id.Email
	}
	return id.UserID()
}
