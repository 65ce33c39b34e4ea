package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (log in once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without logging in again.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())

			if err := interactiveLogin(app, scanner, out); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nStarting interactive session...")
			fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range cmd.Parent().Commands() {
				switch subCmd.Name() {
				case "interactive", "completion", "help":
				default:
					commands[subCmd.Name()] = subCmd
				}
			}

			for {
				fmt.Fprint(out, "> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]

				switch cmdName {
				case "exit", "quit":
					fmt.Fprintln(out, "Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(out, commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Fprintf(out, "✗ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				if err := runInteractive(targetCmd, parts[1:]); err != nil {
					app.Logger.Warn("Interactive command failed", zap.String("command", cmdName), zap.Error(err))
					fmt.Fprintf(out, "✗ %s\n\n", DisplayError(err))
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}
}

// runInteractive runs a command's RunE directly, bypassing Execute so PersistentPreRunE doesn't re-initialise the app
func runInteractive(targetCmd *cobra.Command, args []string) error {
	// Reset flags left over from the previous run
	targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := targetCmd.ParseFlags(args); err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}
	args = targetCmd.Flags().Args()

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, args); err != nil {
			return err
		}
	}

	if targetCmd.RunE != nil {
		return targetCmd.RunE(targetCmd, args)
	}
	if targetCmd.Run != nil {
		targetCmd.Run(targetCmd, args)
	}
	return nil
}

// interactiveLogin logs in with the --phone and --pin flags, prompting for whichever is missing
func interactiveLogin(app *AppContext, scanner *bufio.Scanner, out io.Writer) error {
	prompt := func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("error reading input: %w", err)
			}
			return "", fmt.Errorf("no %s entered", strings.ToLower(label))
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	var err error
	if app.Phone == "" {
		if app.Phone, err = prompt("Phone"); err != nil {
			return err
		}
	}
	if app.PIN == "" {
		if app.PIN, err = prompt("PIN"); err != nil {
			return err
		}
	}

	session, err := app.RequireSession()
	if err != nil {
		return err
	}

	role := "member"
	if session.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(out, "\n✓ Logged in as %s (%s)\n", session.PhoneNumber, role)
	return nil
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-36s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintln(out, "\n  help                                 Show this help message")
	fmt.Fprintln(out, "  exit, quit                           Exit the interactive session")
	fmt.Fprintln(out)
}
