package varmap

// ReservedWords are identifiers the remapper never rewrites and never adds
// to the variable map — keywords, type names and special literals fixed by
// the source language's grammar (§4.2). Kept as an enumerable set (rather
// than inline comparisons scattered across the remapper and codegen) so
// every stage that needs to recognise a reserved word shares one source of
// truth, per the PART D supplement to §4.2/§4.6.
var ReservedWords = map[string]bool{
	"if": true, "L": true, "R": true, "T": true, "B": true, "N": true,
	"break": true, "next": true, "return": true, "self": true,
	"num": true, "str": true, "bl": true, "obj": true, "func": true,
	"true": true, "false": true, "null": true, "undef": true, "main": true,
}

// BuiltinNames are the runtime's ~60 built-in function names, spanning
// I/O, string, math, array, object, conversion, time, system, JSON and
// file operations (§4.2, §6.3). Like ReservedWords they are never rewritten
// by the identifier remapper and never appear in the resulting Map.
var BuiltinNames = map[string]bool{
	// I/O
	"print": true, "println": true, "printf": true, "input": true,
	// strings
	"len": true, "charAt": true, "substr": true, "indexOf": true,
	"replace": true, "split": true, "join": true, "trim": true,
	"upper": true, "lower": true, "startsWith": true, "endsWith": true,
	"contains": true,
	// arrays
	"push": true, "pop": true, "shift": true, "unshift": true,
	"slice": true, "concat": true,
	// objects
	"keys": true, "values": true, "entries": true, "hasField": true,
	"deleteField": true,
	// conversions
	"toNum": true, "toStr": true, "toBl": true, "toInt": true, "toFloat": true,
	// math
	"abs": true, "floor": true, "ceil": true, "round": true, "sqrt": true,
	"pow": true, "min": true, "max": true, "random": true, "isNaN": true,
	"isFinite": true, "clamp": true,
	// time / system
	"time": true, "sleep": true, "date": true, "exit": true,
	"getEnv": true, "setEnv": true,
	// files
	"readFile": true, "writeFile": true, "appendFile": true,
	"readBytes": true, "writeBytes": true, "fileExists": true,
	"deleteFile": true, "getFileSize": true, "readLines": true,
	"renameFile": true, "copyFile": true, "createDir": true,
	"removeDir": true, "listDir": true, "dirExists": true,
	// JSON
	"parseJSON": true, "toJSON": true,
	// typeof
	"typeof": true,
}

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	return ReservedWords[name]
}

// IsBuiltin reports whether name is a built-in function name.
func IsBuiltin(name string) bool {
	return BuiltinNames[name]
}
