package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iola1999/AssppWeb/internal/auth"
	"github.com/iola1999/AssppWeb/internal/domain"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage saved accounts",
	}
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountShowCmd())
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountRemoveCmd())
	cmd.AddCommand(newAccountAuthCmd())
	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			accounts, err := db.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONAccounts(accounts))
			}

			if len(accounts) == 0 {
				fmt.Println("No accounts saved. Run 'asspp account add' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tAPPLE ID\tREGION\tUSABLE")
			for _, a := range accounts {
				region := a.Store
				if country, ok := domain.StoreIDToCountry(a.Store); ok {
					region = country
				}
				usable := "yes"
				if !a.Usable() {
					usable = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Email, a.AppleID, region, usable)
			}
			return w.Flush()
		},
	}
}

func newAccountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <email>",
		Short: "Show one account",
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

			if jsonFlag {
				return printJSON(toJSONAccount(account))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Email:\t%s\n", account.Email)
			fmt.Fprintf(w, "Apple ID:\t%s\n", account.AppleID)
			fmt.Fprintf(w, "Name:\t%s\n", strings.TrimSpace(account.FirstName+" "+account.LastName))
			region := account.Store
			if country, ok := domain.StoreIDToCountry(account.Store); ok {
				region = fmt.Sprintf("%s (%s)", country, account.Store)
			}
			fmt.Fprintf(w, "Store:\t%s\n", region)
			fmt.Fprintf(w, "DSID:\t%s\n", account.DirectoryServicesIdentifier)
			fmt.Fprintf(w, "Device:\t%s\n", account.DeviceIdentifier)
			if account.Pod != "" {
				fmt.Fprintf(w, "Pod:\t%s\n", account.Pod)
			}
			fmt.Fprintf(w, "Cookies:\t%d\n", len(account.Cookies))
			return w.Flush()
		},
	}
}

func newAccountAddCmd() *cobra.Command {
	var storeFlag, deviceFlag string

	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			if email == "" {
				return fmt.Errorf("email must not be empty")
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			device := deviceFlag
			if device == "" {
				device = uuid.NewString()
			}

			account := &domain.Account{
				Email:            email,
				Password:         password,
				Store:            storeFlag,
				DeviceIdentifier: device,
			}
			account.Normalize()

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.AddAccount(cmd.Context(), account); err != nil {
				return fmt.Errorf("failed to store account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "add", Email: email})
			}
			fmt.Printf("Account added: %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeFlag, "store", "", "storefront code (e.g. 143441)")
	cmd.Flags().StringVar(&deviceFlag, "device", "", "device identifier (generated if omitted)")
	return cmd
}

func newAccountRemoveCmd() *cobra.Command {
	var yesFlag bool

	cmd := &cobra.Command{
		Use:   "remove <email>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			if !yesFlag {
				fmt.Printf("Delete %s? This cannot be undone. [y/N]: ", email)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RemoveAccount(cmd.Context(), email); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "remove", Email: email})
			}
			fmt.Printf("Account removed: %s\n", email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yesFlag, "yes", false, "skip the confirmation prompt")
	return cmd
}

func newAccountAuthCmd() *cobra.Command {
	var codeFlag string

	cmd := &cobra.Command{
		Use:   "auth <email>",
		Short: "Re-authenticate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			account, err := db.GetAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !account.Usable() {
				return fmt.Errorf("account %s has no stored password or device identifier", account.Email)
			}

			authenticator := newAuthenticator(cfg)
			ctx := cmd.Context()

			refreshed, err := authenticator.Authenticate(ctx, auth.CredentialsFor(account, codeFlag))
			if auth.CodeRequired(err) && codeFlag == "" {
				fmt.Println(err.Error())
				code, promptErr := promptLine("Verification code: ")
				if promptErr != nil {
					return promptErr
				}
				refreshed, err = authenticator.Authenticate(ctx, auth.CredentialsFor(account, code))
			}
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			if err := db.UpdateAccount(ctx, refreshed); err != nil {
				return fmt.Errorf("failed to store refreshed account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "auth", Email: refreshed.Email})
			}
			fmt.Printf("Re-authenticated: %s\n", refreshed.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&codeFlag, "code", "", "6-digit verification code")
	return cmd
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(data), nil
}

// promptLine reads a single trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
