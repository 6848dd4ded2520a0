package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flyuxc/flyuxc/pkg/pipeline"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <input>",
	Short: "Print the lexer's token stream, one token per line, for debugging the lexer.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := loadSourceFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		toks, err := pipeline.Lex(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for _, t := range toks.Tokens {
			fmt.Printf("%-12s %q\n", t.Kind, t.Lexeme)
		}
	},
}
