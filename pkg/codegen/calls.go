package codegen

import (
	"fmt"

	"github.com/flyuxc/flyuxc/pkg/ast"
)

// builtinRuntimeName maps a source-level built-in call name to the runtime
// entry point it lowers to (§4.6, §6.3). Keys are exactly varmap.BuiltinNames.
var builtinRuntimeName = map[string]string{
	"print": "value_print", "println": "value_println", "printf": "value_printf", "input": "value_input",
	"len": "value_len", "charAt": "value_char_at", "substr": "value_substr", "indexOf": "value_index_of",
	"replace": "value_replace", "split": "value_split", "join": "value_join", "trim": "value_trim",
	"upper": "value_upper", "lower": "value_lower", "startsWith": "value_starts_with", "endsWith": "value_ends_with",
	"contains": "value_contains",
	"push": "value_push", "pop": "value_pop", "shift": "value_shift", "unshift": "value_unshift",
	"slice": "value_slice", "concat": "value_concat",
	"keys": "value_keys", "values": "value_values", "entries": "value_entries", "hasField": "value_has_field",
	"deleteField": "value_delete_field",
	"toNum": "value_to_num", "toStr": "value_to_str", "toBl": "value_to_bl", "toInt": "value_to_int", "toFloat": "value_to_float",
	"abs": "value_abs", "floor": "value_floor", "ceil": "value_ceil", "round": "value_round", "sqrt": "value_sqrt",
	"pow": "value_pow", "min": "value_min", "max": "value_max", "random": "value_random", "isNaN": "value_is_nan",
	"isFinite": "value_is_finite", "clamp": "value_clamp",
	"time": "value_time", "sleep": "value_sleep", "date": "value_date", "exit": "value_exit",
	"getEnv": "value_get_env", "setEnv": "value_set_env",
	"readFile": "value_read_file", "writeFile": "value_write_file", "appendFile": "value_append_file",
	"readBytes": "value_read_bytes", "writeBytes": "value_write_bytes", "fileExists": "value_file_exists",
	"deleteFile": "value_delete_file", "getFileSize": "value_get_file_size", "readLines": "value_read_lines",
	"renameFile": "value_rename_file", "copyFile": "value_copy_file", "createDir": "value_create_dir",
	"removeDir": "value_remove_dir", "listDir": "value_list_dir", "dirExists": "value_dir_exists",
	"parseJSON": "value_parse_json", "toJSON": "value_to_json",
	"typeof": "value_typeof",
}

// fallibleBuiltins are the built-ins that set the runtime error channel on
// failure (§4.6): file I/O, JSON, numeric/env conversions, math domain
// errors, and sleep. A call to one of these gets one of the three
// error-handling prologues; any other built-in's result is used as-is.
var fallibleBuiltins = map[string]bool{
	"toNum": true, "toInt": true, "toFloat": true, "parseJSON": true,
	"sqrt": true, "pow": true, "sleep": true,
	"getEnv": true, "setEnv": true,
	"readFile": true, "writeFile": true, "appendFile": true, "readBytes": true, "writeBytes": true,
	"fileExists": true, "deleteFile": true, "getFileSize": true, "readLines": true,
	"renameFile": true, "copyFile": true, "createDir": true, "removeDir": true, "listDir": true, "dirExists": true,
}

// memberBuiltinProperty maps a bare `.prop` access (no call parens) to the
// runtime accessor it short-circuits to for known property names (§4.6):
// `.len`/`.length`, `.upper`, `.lower`, `.trim`.
var memberBuiltinProperty = map[string]string{
	"len": "value_len", "length": "value_len",
	"upper": "value_upper", "lower": "value_lower", "trim": "value_trim",
}

func (g *Generator) lowerCall(c *ast.Call) string {
	if id, ok := c.Callee.(*ast.Identifier); ok {
		if fn, ok := builtinRuntimeName[id.Name]; ok {
			return g.lowerBuiltinCall(c, id.Name, fn)
		}

		if irFn, ok := g.topLevelFuncs[id.Name]; ok {
			if _, shadowed := g.scopes.resolve(id.Name); !shadowed {
				return g.lowerDirectCall(c, irFn)
			}
		}
	}

	return g.lowerIndirectCall(c)
}

func (g *Generator) lowerArgs(args []ast.Expr) []string {
	vals := make([]string, len(args))
	for i, a := range args {
		vals[i] = g.lowerExpr(a)
	}

	return vals
}

// lowerDirectCall calls a statically known top-level function by symbol.
// Arguments are borrowed by the callee per §4.5 ("the callee must not
// release them"), so the caller releases each one after the call returns.
func (g *Generator) lowerDirectCall(c *ast.Call, irFn string) string {
	args := g.lowerArgs(c.Args)

	result := g.call(irFn, args...)

	for _, a := range args {
		g.releaseAfterUse(a)
	}

	return result
}

// lowerIndirectCall handles a call whose callee is not a statically known
// top-level function: evaluate it to a Value*, stack-allocate an argv
// array, and dispatch through invoke_closure.
func (g *Generator) lowerIndirectCall(c *ast.Call) string {
	fn := g.lowerExpr(c.Callee)
	args := g.lowerArgs(c.Args)

	argv := g.newTemp()
	g.emit("%s = alloca %%struct.Value*, i64 %d", argv, len(args))

	for i, a := range args {
		slot := g.newTemp()
		g.emit("%s = getelementptr %%struct.Value*, %%struct.Value** %s, i64 %d", slot, argv, i)
		g.emit("store %%struct.Value* %s, %%struct.Value** %s", a, slot)
	}

	result := g.call("invoke_closure", fn, argv, fmt.Sprintf("%d", len(args)))

	g.releaseAfterUse(fn)

	for _, a := range args {
		g.releaseAfterUse(a)
	}

	return result
}

// lowerBuiltinCall lowers a call to a known built-in, applying one of the
// three error-handling prologues of §4.6 when the built-in is fallible.
func (g *Generator) lowerBuiltinCall(c *ast.Call, sourceName, runtimeName string) string {
	args := g.lowerArgs(c.Args)

	result := g.call(runtimeName, args...)

	for _, a := range args {
		g.releaseAfterUse(a)
	}

	if sourceName == "typeof" {
		// value_typeof returns a raw i8*, not a Value*; box it so the
		// result behaves like every other expression value.
		return g.call("box_string", result)
	}

	if !fallibleBuiltins[sourceName] {
		return result
	}

	switch {
	case g.inTryCatch:
		// The enclosing T> block checks is_ok after every statement.
	case c.ThrowOnError:
		ok := g.call("value_is_ok")
		truthy := g.call("value_is_truthy", ok)
		g.releaseAfterUse(ok)

		cond := g.newTemp()
		g.emit("%s = icmp ne i32 %s, 0", cond, truthy)

		failLabel := g.newLabel("fatal")
		contLabel := g.newLabel("ok")
		g.emit("br i1 %s, label %%%s, label %%%s", cond, contLabel, failLabel)

		g.emitLabel(failLabel)
		g.call("value_fatal_error")
		g.emit("unreachable")

		g.emitLabel(contLabel)
	default:
		g.call("value_clear_error")
	}

	return result
}

// lowerMember lowers `.prop`/`.>prop`/`?.prop`. A recognised built-in
// property name short-circuits to a direct runtime accessor; everything
// else goes through value_get_field / value_get_field_safe. Object-literal
// metadata (objectMeta) is not consulted here, so a field of an object with
// a known literal shape is still looked up at run time.
func (g *Generator) lowerMember(m *ast.Member) string {
	obj := g.lowerExpr(m.Object)

	if fn, ok := memberBuiltinProperty[m.Property]; ok {
		result := g.call(fn, obj)
		g.releaseAfterUse(obj)

		return result
	}

	key := g.boxCString(m.Property)

	fn := "value_get_field"
	if m.IsOptional {
		fn = "value_get_field_safe"
	}

	result := g.call(fn, obj, key)
	g.releaseAfterUse(obj)

	return result
}

func (g *Generator) lowerIndex(ix *ast.Index) string {
	obj := g.lowerExpr(ix.Object)
	idx := g.lowerExpr(ix.Index)

	result := g.call("value_index", obj, idx)
	g.releaseAfterUse(obj)
	g.releaseAfterUse(idx)

	return result
}

// boxCString emits a private i8* constant for a raw Go string (an object
// key or field name), without going through box_string — callers that
// need this as a literal runtime argument (value_get_field et al.) want
// the raw pointer, not a Value*.
func (g *Generator) boxCString(s string) string {
	name := g.internStringConstant(s)

	ptr := g.newTemp()
	g.emit("%s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0", ptr, len(s)+1, len(s)+1, name)

	return ptr
}

// lowerArray allocates the literal's backing array on the entry block,
// lowers each element in order, and boxes the result (§4.6). A Spread
// element is not yet supported by the runtime array-splice primitive and
// is lowered as a single nested-array element, same as any other value.
func (g *Generator) lowerArray(a *ast.Array) string {
	n := len(a.Elements)
	if n == 0 {
		result := g.call("box_array", "null", "0")
		if g.currentVarName != "" {
			g.arrayMeta[g.currentVarName] = &arrayInfo{length: 0}
		}

		return result
	}

	backing := g.newTemp()
	fmt.Fprintf(&g.allocas, "  %s = alloca [%d x %%struct.Value*]\n", backing, n)

	for i, el := range a.Elements {
		v := g.lowerExpr(el.Value)
		g.consumeTemp(v)

		slot := g.newTemp()
		g.emit("%s = getelementptr [%d x %%struct.Value*], [%d x %%struct.Value*]* %s, i64 0, i64 %d", slot, n, n, backing, i)
		g.emit("store %%struct.Value* %s, %%struct.Value** %s", v, slot)
	}

	ptr := g.newTemp()
	g.emit("%s = bitcast [%d x %%struct.Value*]* %s to i8*", ptr, n, backing)

	result := g.call("box_array", ptr, fmt.Sprintf("%d", n))

	if g.currentVarName != "" {
		g.arrayMeta[g.currentVarName] = &arrayInfo{length: n, ptr: backing}
	}

	return result
}

// lowerObject allocates an [N x ObjectEntry] backing array, storing each
// key as a private string constant and each value from recursive lowering
// (§4.6).
func (g *Generator) lowerObject(o *ast.Object) string {
	n := len(o.Properties)
	if n == 0 {
		result := g.call("box_object", "null", "0")
		if g.currentVarName != "" {
			g.objectMeta[g.currentVarName] = &objectInfo{}
		}

		return result
	}

	backing := g.newTemp()
	g.emit("%s = alloca [%d x %%ObjectEntry]", backing, n)

	fields := make([]string, n)

	for i, prop := range o.Properties {
		fields[i] = prop.Key
		keyPtr := g.boxCString(prop.Key)

		v := g.lowerExpr(prop.Value)
		g.consumeTemp(v)

		entrySlot := g.newTemp()
		g.emit("%s = getelementptr [%d x %%ObjectEntry], [%d x %%ObjectEntry]* %s, i64 0, i64 %d", entrySlot, n, n, backing, i)

		keyField := g.newTemp()
		g.emit("%s = getelementptr %%ObjectEntry, %%ObjectEntry* %s, i32 0, i32 0", keyField, entrySlot)
		g.emit("store i8* %s, i8** %s", keyPtr, keyField)

		valField := g.newTemp()
		g.emit("%s = getelementptr %%ObjectEntry, %%ObjectEntry* %s, i32 0, i32 1", valField, entrySlot)
		g.emit("store %%struct.Value* %s, %%struct.Value** %s", v, valField)
	}

	ptr := g.newTemp()
	g.emit("%s = bitcast [%d x %%ObjectEntry]* %s to i8*", ptr, n, backing)

	result := g.call("box_object", ptr, fmt.Sprintf("%d", n))

	if g.currentVarName != "" {
		g.objectMeta[g.currentVarName] = &objectInfo{fields: fields}
	}

	return result
}
