package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/pipeline"
	"github.com/flyuxc/flyuxc/pkg/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile <input>",
	Short: "Compile a FLYUX source file to a native executable (the default action).",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		runCompile(cmd, args[0])
	},
}

// runCompile is shared by the bare root invocation and the `compile`
// subcommand — both take exactly one input path and the same flag set.
func runCompile(cmd *cobra.Command, input string) {
	file, err := loadSourceFile(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := pipeline.Config{
		Verbose:    GetFlag(cmd, "verbose"),
		KeepIR:     GetFlag(cmd, "keep-ir"),
		OptLevel:   GetInt(cmd, "opt"),
		ClangPath:  GetString(cmd, "clang"),
		OutputPath: GetString(cmd, "output"),
	}

	log.WithField("file", input).Debug("starting compilation")

	execPath, err := pipeline.Build(file, cfg)
	if err != nil {
		if diags, ok := err.(*diagnostics.Diagnostics); ok {
			printDiagnostics(diags)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}

	log.WithField("executable", execPath).Debug("compilation finished")
	fmt.Println(execPath)
}

func loadSourceFile(path string) (*source.File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return source.NewFile(path, contents), nil
}
