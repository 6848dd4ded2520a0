// Package pipeline threads a single source file through the four
// front-end stages and codegen (§2, §4), and optionally on through clang to
// a native executable (§6.2). pkg/cmd is the only caller; keeping the
// sequence here (rather than inline in the CLI) lets every subcommand
// (compile, emit-ir, ast, tokens) share the same stage wiring and stop at a
// different point.
package pipeline

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/flyuxc/flyuxc/pkg/arena"
	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/codegen"
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/lexer"
	"github.com/flyuxc/flyuxc/pkg/normalize"
	"github.com/flyuxc/flyuxc/pkg/parser"
	"github.com/flyuxc/flyuxc/pkg/runtimec"
	"github.com/flyuxc/flyuxc/pkg/source"
	"github.com/flyuxc/flyuxc/pkg/strpool"
	"github.com/flyuxc/flyuxc/pkg/varmap"
)

// Config carries every knob the CLI layer exposes, threaded explicitly
// through the pipeline rather than read from package globals.
type Config struct {
	Verbose    bool
	KeepIR     bool
	OptLevel   int
	ClangPath  string
	OutputPath string
}

// Stage result of each front-end phase, returned so inspection subcommands
// (ast, tokens) can stop early without re-running earlier stages.
type Tokens struct {
	Tokens []lexer.Token
	VarMap *varmap.Map
}

// Lex runs normalize, remap and lex, stopping before parsing. Used by the
// `tokens` subcommand and by Parse.
func Lex(file *source.File) (*Tokens, error) {
	norm, err := normalize.Normalize(file)
	if err != nil {
		return nil, err
	}

	remapped := varmap.Remap(norm.Text)

	toks, diag := lexer.Lex(remapped.Text, remapped.OffsetMap, norm.Map)
	if diag != nil {
		return nil, diag
	}

	return &Tokens{Tokens: toks, VarMap: remapped.Map}, nil
}

// Parse runs the full front end through the parser. Used by the `ast`
// subcommand and by Generate.
func Parse(file *source.File) (*ast.Program, *varmap.Map, *diagnostics.Diagnostics, error) {
	toks, err := Lex(file)
	if err != nil {
		return nil, nil, nil, err
	}

	prog, diags := parser.Parse(toks.Tokens)

	return prog, toks.VarMap, diags, nil
}

// Generate runs the full pipeline through codegen and returns the
// generated LLVM IR text. A fresh arena/string-pool pair backs the
// compilation's interned string constants (§5), discarded once this
// returns.
func Generate(file *source.File) (string, *diagnostics.Diagnostics, error) {
	prog, vm, diags, err := Parse(file)
	if err != nil {
		return "", nil, err
	}

	if diags != nil && diags.HasErrors() {
		return "", diags, nil
	}

	a := arena.New()
	pool := strpool.New(a)

	gen := codegen.New(vm, pool)

	ir, codegenDiags := gen.Generate(prog)
	for _, d := range codegenDiags.Items() {
		diags.Add(d)
	}

	return ir, diags, nil
}

// Build runs the full pipeline and links a native executable: it writes
// the generated IR to <output>.ll, compiles the embedded runtime, and
// invokes clang on both (§6.2).
func Build(file *source.File, cfg Config) (execPath string, err error) {
	ir, diags, err := Generate(file)
	if err != nil {
		return "", err
	}

	if diags != nil && diags.HasErrors() {
		return "", diags
	}

	output := cfg.OutputPath
	if output == "" {
		output = basenameWithoutExt(file.Filename)
	}

	irPath := output + ".ll"
	if err := os.WriteFile(irPath, []byte(ir), 0o644); err != nil {
		return "", fmt.Errorf("writing IR file: %w", err)
	}

	if !cfg.KeepIR {
		defer os.Remove(irPath)
	}

	runtimeObj, cleanupRuntime, err := runtimec.Compile(cfg.ClangPath)
	if err != nil {
		return "", err
	}

	defer cleanupRuntime()

	clangPath := cfg.ClangPath
	if clangPath == "" {
		clangPath = "clang"
	}

	args := []string{}
	if cfg.OptLevel > 0 {
		args = append(args, fmt.Sprintf("-O%d", cfg.OptLevel))
	}

	args = append(args, irPath, runtimeObj, "-o", output)

	cmd := exec.Command(clangPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("linking executable: %w", err)
	}

	return output, nil
}

func basenameWithoutExt(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}

	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}

	return base
}
