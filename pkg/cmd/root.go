// Package cmd implements the flyuxc command-line tree: a package-level
// Version string filled at link time, a root command that also serves as
// the default compile path (§6.1: `flyuxc [options] <input>`), and
// inspection subcommands (`emit-ir`, `ast`, `tokens`) carried forward from
// the original C driver's dump flags.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building via a release pipeline, but *not* when
// installing via "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "flyuxc [options] <input>",
	Short: "Ahead-of-time compiler for the FLYUX scripting language.",
	Long:  "flyuxc lowers FLYUX source through normalization, identifier remapping, lexing and parsing to LLVM IR, then links it against the embedded runtime into a native executable.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			printVersion()
			return
		}

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) == 0 {
			cmd.Help() //nolint:errcheck
			os.Exit(1)
		}

		runCompile(cmd, args[0])
	},
}

func printVersion() {
	fmt.Print("flyuxc ")

	switch {
	case Version != "":
		fmt.Printf("%s", Version)
	default:
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("%s", info.Main.Version)
		} else {
			fmt.Printf("(unknown version)")
		}
	}

	fmt.Println()
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "print version")
	rootCmd.PersistentFlags().StringP("output", "o", "", "executable output name (default: input basename)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug-level operational logging")
	rootCmd.PersistentFlags().Bool("keep-ir", false, "keep the generated .ll file next to the executable")
	rootCmd.PersistentFlags().Int("opt", 1, "clang optimization level (0-3)")
	rootCmd.PersistentFlags().String("clang", "", "path to the clang binary (default: look up \"clang\" on PATH)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(emitIRCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(tokensCmd)
}
