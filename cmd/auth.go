package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jkivimaki/orderintake/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the Gmail account",
		Long: `Runs the OAuth authorization flow for the Gmail account. Prints an
authorization URL, then exchanges the pasted authorization code for a
token that is cached for subsequent commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if google.HasToken() {
				fmt.Println("Already authorized. Delete the cached token to re-authorize.")
				return nil
			}

			url, err := google.GetAuthURL(cfg.Gmail.CredentialsFile)
			if err != nil {
				return err
			}

			fmt.Printf("Open the following URL in your browser:\n\n%s\n\n", url)
			fmt.Print("Paste the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveToken(cmd.Context(), cfg.Gmail.CredentialsFile, code); err != nil {
				return err
			}

			fmt.Println("Authorization complete.")
			return nil
		},
	}
	return cmd
}
