package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flyuxc/flyuxc/pkg/pipeline"
)

var emitIRCmd = &cobra.Command{
	Use:   "emit-ir <input>",
	Short: "Print the generated LLVM IR without linking an executable.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := loadSourceFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		ir, diags, err := pipeline.Generate(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if diags != nil && diags.HasErrors() {
			printDiagnostics(diags)
			os.Exit(1)
		}

		fmt.Print(ir)
	},
}
