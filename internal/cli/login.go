package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the Dozuki site and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return fmt.Errorf("email is required")
			}

			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			pw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			token, err := app.Dozuki.Authenticate(cmd.Context(), email, string(pw))
			if err != nil {
				return err
			}
			if err := app.Store.PutSetting(cmd.Context(), "dozuki_token", token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in; token stored.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when omitted)")
	return cmd
}
