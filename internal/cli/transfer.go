package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iola1999/AssppWeb/internal/domain"
	"github.com/iola1999/AssppWeb/internal/transfer"
)

func newImportCmd() *cobra.Command {
	var stdinFlag bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an account from the clipboard",
		Long:  "Parse an account record from clipboard JSON (or stdin with --stdin) and add it to the store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var account *domain.Account
			var err error

			if stdinFlag {
				data, readErr := io.ReadAll(os.Stdin)
				if readErr != nil {
					return fmt.Errorf("failed to read stdin: %w", readErr)
				}
				account, err = transfer.Import(string(data))
			} else {
				account, err = transfer.ImportFromClipboard()
			}
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.AddAccount(cmd.Context(), account); err != nil {
				return fmt.Errorf("failed to store imported account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "import", Email: account.Email})
			}
			fmt.Printf("Account imported: %s\n", account.Email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdinFlag, "stdin", false, "read the record from stdin instead of the clipboard")
	return cmd
}

func newExportCmd() *cobra.Command {
	var stdoutFlag bool

	cmd := &cobra.Command{
		Use:   "export <email>",
		Short: "Export an account to the clipboard",
		Long:  "Serialize the full account record, secrets included, as JSON and place it on the clipboard (or stdout with --stdout).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			account, err := db.GetAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if stdoutFlag {
				text, err := transfer.Export(account)
				if err != nil {
					return err
				}
				fmt.Println(text)
				return nil
			}

			if err := transfer.ExportToClipboard(account); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "export", Email: account.Email})
			}
			fmt.Printf("Account copied to clipboard: %s\n", account.Email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "write the record to stdout instead of the clipboard")
	return cmd
}
