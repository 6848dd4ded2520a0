// Package codegen lowers a parsed program into textual LLVM IR against the
// fixed runtime ABI of pkg/runtimeabi (§4.5-§4.9). The central design
// problem is deterministic reference counting: every expression produces
// an owned %struct.Value*, and every scope exit, loop jump and function
// return must release exactly the right set of temporaries and locals.
//
// A Generator is created once, consumed via Generate, and discarded — it
// holds no state meant to survive a single compilation (§3.5, §5).
package codegen

import (
	"fmt"
	"strings"

	"github.com/flyuxc/flyuxc/pkg/ast"
	"github.com/flyuxc/flyuxc/pkg/diagnostics"
	"github.com/flyuxc/flyuxc/pkg/runtimeabi"
	"github.com/flyuxc/flyuxc/pkg/strpool"
	"github.com/flyuxc/flyuxc/pkg/varmap"
)

// Generator carries the three text buffers, the counters, and the
// bookkeeping stacks described in §3.5.
type Generator struct {
	globals      strings.Builder // string constants, type decls, nested function definitions
	topLevelDefs strings.Builder // top-level function definitions and the main wrapper
	allocas      strings.Builder // entry-block allocas of the function currently being lowered
	body         strings.Builder // current function's instruction stream

	tempCounter   int
	labelCounter  int
	stringCounter int

	scopes    *symbolTable
	scopeTop  []*scopeFrame // the current function's nested lexical frames
	loops     []*loopScope
	tempStack []string

	arrayMeta  map[string]*arrayInfo  // IR name -> known literal shape
	objectMeta map[string]*objectInfo // IR name -> known literal shape

	closures map[string]*closureInfo // IR name -> closure metadata

	// topLevelFuncs maps a top-level function's source (remapped) name to
	// its IR function name, so a Call to a plain, unshadowed identifier can
	// be lowered as a direct `call @name` instead of an indirect
	// invoke_closure dispatch (§4.8).
	topLevelFuncs map[string]string

	blockTerminated bool
	inTryCatch      bool
	currentCaptured []string
	currentVarName  string
	runtimeUsed     map[string]bool

	varmap *varmap.Map // used to resolve original names for diagnostics

	diags *diagnostics.Diagnostics

	// strPool interns string-literal and object/field-key payloads so two
	// occurrences of the same text share one emitted global constant (§5).
	strPool         *strpool.Pool
	internedStrings map[string]string // interned content -> already-emitted global name
}

type arrayInfo struct {
	length int
	ptr    string // IR name of the backing [N x Value*] array, if stack-allocated
}

type objectInfo struct {
	fields []string
}

type closureInfo struct {
	irName   string
	captures []string
}

// New constructs a Generator ready to lower a single program. pool interns
// the program's string-literal and object-key text; pass nil to disable
// interning (each occurrence then gets its own global constant).
func New(vm *varmap.Map, pool *strpool.Pool) *Generator {
	return &Generator{
		scopes:          newSymbolTable(),
		arrayMeta:       map[string]*arrayInfo{},
		objectMeta:      map[string]*objectInfo{},
		closures:        map[string]*closureInfo{},
		topLevelFuncs:   map[string]string{},
		runtimeUsed:     map[string]bool{},
		varmap:          vm,
		diags:           &diagnostics.Diagnostics{},
		strPool:         pool,
		internedStrings: map[string]string{},
	}
}

// Generate lowers prog to a complete LLVM IR module and returns it as text,
// along with any diagnostics raised (duplicate declarations, `++` on a
// non-identifier, and similar invariant violations per §7).
func (g *Generator) Generate(prog *ast.Program) (string, *diagnostics.Diagnostics) {
	g.lowerTopLevel(prog)

	return g.finalize(), g.diags
}

func (g *Generator) newTemp() string {
	g.tempCounter++
	return fmt.Sprintf("%%t%d", g.tempCounter)
}

func (g *Generator) newLabel(prefix string) string {
	g.labelCounter++
	return fmt.Sprintf("%s%d", prefix, g.labelCounter)
}

func (g *Generator) newStringConst() string {
	g.stringCounter++
	return fmt.Sprintf("@.str.%d", g.stringCounter)
}

func (g *Generator) emit(format string, args ...any) {
	fmt.Fprintf(&g.body, "  "+format+"\n", args...)
}

func (g *Generator) emitLabel(name string) {
	fmt.Fprintf(&g.body, "%s:\n", name)
	g.blockTerminated = false
}

func (g *Generator) emitAlloca(irName string) {
	fmt.Fprintf(&g.allocas, "  %%%s = alloca %%struct.Value*\n", irName)
	g.emit("store %%struct.Value* null, %%struct.Value** %%%s", irName)
}

// call emits `call <ret> @name(args…)` into a fresh temporary (when ret is
// not void) and marks the runtime entry point as used so finalization
// declares it. Calls returning a Value* are pushed onto the temp-value
// stack — see §4.6 — since every such runtime call transfers ownership to
// the caller; results of other non-void types (i32, double, i8*) are not.
func (g *Generator) call(name string, irArgs ...string) string {
	g.runtimeUsed[name] = true

	sig, ok := runtimeabi.Signatures[name]
	if !ok {
		g.errorf(0, 0, "unknown runtime function %q", name)
		return "undef"
	}

	argList := make([]string, len(irArgs))
	for i, a := range irArgs {
		argList[i] = fmt.Sprintf("%s %s", paramType(sig, i), a)
	}

	if sig.Return == "void" {
		g.emit("call void @%s(%s)", name, strings.Join(argList, ", "))
		return ""
	}

	t := g.newTemp()
	g.emit("%s = call %s @%s(%s)", t, sig.Return, name, strings.Join(argList, ", "))

	if sig.Return == runtimeabi.ValueType {
		g.pushTemp(t)
	}

	return t
}

func paramType(sig runtimeabi.Signature, i int) string {
	if i < len(sig.Params) {
		return sig.Params[i]
	}

	return "%struct.Value*"
}

func (g *Generator) errorf(line, col uint32, format string, args ...any) {
	g.diags.Add(diagnostics.New(diagnostics.StageCodegen, line, col, fmt.Sprintf(format, args...)))
}

// errorAt reports a codegen diagnostic anchored at an AST node's location,
// resolving the original (pre-remap) variable name via the varmap when one
// is supplied, per §7.
func (g *Generator) errorAt(node ast.Node, variable, format string, args ...any) {
	loc := node.Loc()
	d := diagnostics.New(diagnostics.StageCodegen, loc.Line, loc.Column, fmt.Sprintf(format, args...))

	if variable != "" {
		d.Variable = g.originalName(variable)
	}

	g.diags.Add(d)
}

func (g *Generator) originalName(mapped string) string {
	if g.varmap == nil {
		return mapped
	}

	if e, ok := g.varmap.LookupMapped(mapped); ok {
		return e.Original
	}

	return mapped
}
