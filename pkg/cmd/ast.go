package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flyuxc/flyuxc/pkg/pipeline"
)

var astCmd = &cobra.Command{
	Use:   "ast <input>",
	Short: "Print the parsed AST as indented JSON, for debugging the parser.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := loadSourceFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		prog, _, diags, err := pipeline.Parse(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := json.MarshalIndent(prog, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Println(string(out))

		if diags != nil && diags.HasErrors() {
			printDiagnostics(diags)
			os.Exit(1)
		}
	},
}
