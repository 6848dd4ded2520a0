package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flyuxc/flyuxc/pkg/diagnostics"
)

// GetFlag gets an expected bool flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// GetInt gets an expected int flag, or exits if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return r
}

// printDiagnostics writes a diagnostic collection to stderr, one per line,
// followed by a count summary. The summary is wrapped in ANSI red only
// when stderr is an interactive terminal (§7).
func printDiagnostics(diags *diagnostics.Diagnostics) {
	for _, d := range diags.Items() {
		fmt.Fprintln(os.Stderr, d.Error())
	}

	summary := fmt.Sprintf("%d error(s)", len(diags.Items()))
	if term.IsTerminal(int(os.Stderr.Fd())) {
		summary = "\x1b[31m" + summary + "\x1b[0m"
	}

	fmt.Fprintln(os.Stderr, summary)
}
