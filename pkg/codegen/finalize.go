package codegen

import (
	"sort"
	"strings"

	"github.com/flyuxc/flyuxc/pkg/runtimeabi"
)

// moduleHeader is the fixed preamble every generated module shares (§4.9
// step 1): target layout/triple plus the tagged-union Value struct and
// the ObjectEntry struct the array/object literal lowering relies on. The
// exact field layout of %struct.Value is owned by the runtime; the
// generator only ever treats it as a pointer, so it is declared as an
// opaque type with no body and is never dereferenced by generated IR.
const moduleHeader = `target datalayout = "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128"
target triple = "x86_64-unknown-linux-gnu"

%struct.Value = type opaque
%ObjectEntry = type { i8*, %struct.Value* }

`

// finalize assembles the complete module text: header, declare lines for
// every runtime entry point actually referenced, the globals buffer
// (string constants and nested function definitions), and the top-level
// definitions buffer (top-level functions and the main wrapper) — §4.9.
func (g *Generator) finalize() string {
	var out strings.Builder

	out.WriteString(moduleHeader)

	names := make([]string, 0, len(g.runtimeUsed))
	for name := range g.runtimeUsed {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if decl := runtimeabi.Declare(name); decl != "" {
			out.WriteString(decl)
			out.WriteByte('\n')
		}
	}

	out.WriteByte('\n')
	out.WriteString(g.globals.String())
	out.WriteByte('\n')
	out.WriteString(g.topLevelDefs.String())

	return out.String()
}
