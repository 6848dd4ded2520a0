package runtimeabi

import "strings"

// Signature is one runtime entry point's LLVM declaration: its name,
// parameter IR types in order, and return IR type. Every generated module
// emits a `declare` line for exactly the entry points it actually calls —
// see pkg/codegen's finalization pass.
type Signature struct {
	Name    string
	Params  []string
	Return  string
}

// ValueType is the IR pointer type for the tagged-union Value struct
// (§3.5, §4.5); ValuePtrType is a pointer-to-pointer, used by the
// array/object-entry construction helpers. Exported so pkg/codegen can
// tell, without a string literal of its own, which calls return an owned
// Value* that belongs on the temp-value stack.
const (
	ValueType    = "%struct.Value*"
	ValuePtrType = "%struct.Value**"

	value  = ValueType
	valueP = ValuePtrType
)

// Signatures lists every runtime function name the code generator may
// reference, keyed by name for declaration lookup during finalization.
var Signatures = buildSignatures()

func buildSignatures() map[string]Signature {
	sigs := []Signature{
		// Boxing (§6.3).
		{"box_number", []string{"double"}, value},
		{"box_bool", []string{"i32"}, value},
		{"box_string_with_length", []string{"i8*", "i64"}, value},
		{"box_string", []string{"i8*"}, value},
		{"box_null", nil, value},
		{"box_undef", nil, value},
		{"box_null_typed", []string{"i32"}, value},
		{"box_null_preserve_type", []string{value}, value},
		{"box_array", []string{"i8*", "i64"}, value},
		{"box_object", []string{"i8*", "i64"}, value},
		{"box_function", []string{"i8*", valueP, "i32", "i32", "i32"}, value},

		// Unboxing.
		{"unbox_number", []string{value}, "double"},
		{"unbox_string", []string{value}, "i8*"},

		// invoke_closure is the symmetric counterpart box_function's
		// existence implies but §6.3 never names: something has to call a
		// function Value* that isn't a statically known top-level symbol
		// (a closure stored in a variable, passed as a callback). Every
		// other boxed kind has an unboxing accessor; first-class function
		// values need an invocation entry point or storing them would be
		// pointless. argv is a stack-allocated Value*[] of length argc.
		{"invoke_closure", []string{value, valueP, "i64"}, value},

		// Refcount and truthiness.
		{"value_retain", []string{value}, "void"},
		{"value_release", []string{value}, "void"},
		{"value_is_truthy", []string{value}, "i32"},
		{"value_typeof", []string{value}, "i8*"},

		// Arithmetic / compare.
		{"value_add", []string{value, value}, value},
		{"value_subtract", []string{value, value}, value},
		{"value_multiply", []string{value, value}, value},
		{"value_divide", []string{value, value}, value},
		{"value_power", []string{value, value}, value},
		{"value_equals", []string{value, value}, value},
		{"value_less_than", []string{value, value}, value},
		{"value_greater_than", []string{value, value}, value},

		// Collections.
		{"value_array_length", []string{value}, "i64"},
		{"value_array_get", []string{value, "i64"}, value},
		{"value_index", []string{value, value}, value},
		{"value_set_index", []string{value, value, value}, "void"},
		{"value_get_field", []string{value, "i8*"}, value},
		{"value_get_field_safe", []string{value, "i8*"}, value},
		{"value_set_field", []string{value, "i8*", value}, "void"},
		{"value_has_field", []string{value, "i8*"}, value},
		{"value_delete_field", []string{value, "i8*"}, value},
		{"value_keys", []string{value}, value},
		{"value_values", []string{value}, value},
		{"value_entries", []string{value}, value},

		// Built-in library.
		{"value_len", []string{value}, value},
		{"value_char_at", []string{value, value}, value},
		{"value_substr", []string{value, value, value}, value},
		{"value_index_of", []string{value, value}, value},
		{"value_replace", []string{value, value, value}, value},
		{"value_split", []string{value, value}, value},
		{"value_join", []string{value, value}, value},
		{"value_trim", []string{value}, value},
		{"value_upper", []string{value}, value},
		{"value_lower", []string{value}, value},
		{"value_starts_with", []string{value, value}, value},
		{"value_ends_with", []string{value, value}, value},
		{"value_contains", []string{value, value}, value},
		{"value_push", []string{value, value}, value},
		{"value_pop", []string{value}, value},
		{"value_shift", []string{value}, value},
		{"value_unshift", []string{value, value}, value},
		{"value_slice", []string{value, value, value}, value},
		{"value_concat", []string{value, value}, value},
		{"value_to_num", []string{value}, value},
		{"value_to_str", []string{value}, value},
		{"value_to_bl", []string{value}, value},
		{"value_to_int", []string{value}, value},
		{"value_to_float", []string{value}, value},
		{"value_abs", []string{value}, value},
		{"value_floor", []string{value}, value},
		{"value_ceil", []string{value}, value},
		{"value_round", []string{value}, value},
		{"value_sqrt", []string{value}, value},
		{"value_pow", []string{value, value}, value},
		{"value_min", []string{value, value}, value},
		{"value_max", []string{value, value}, value},
		{"value_random", nil, value},
		{"value_is_nan", []string{value}, value},
		{"value_is_finite", []string{value}, value},
		{"value_clamp", []string{value, value, value}, value},
		{"value_time", nil, value},
		{"value_sleep", []string{value}, value},
		{"value_date", nil, value},
		{"value_exit", []string{value}, "void"},
		{"value_get_env", []string{value}, value},
		{"value_set_env", []string{value, value}, value},
		{"value_read_file", []string{value}, value},
		{"value_write_file", []string{value, value}, value},
		{"value_append_file", []string{value, value}, value},
		{"value_read_bytes", []string{value}, value},
		{"value_write_bytes", []string{value, value}, value},
		{"value_file_exists", []string{value}, value},
		{"value_delete_file", []string{value}, value},
		{"value_get_file_size", []string{value}, value},
		{"value_read_lines", []string{value}, value},
		{"value_rename_file", []string{value, value}, value},
		{"value_copy_file", []string{value, value}, value},
		{"value_create_dir", []string{value}, value},
		{"value_remove_dir", []string{value}, value},
		{"value_list_dir", []string{value}, value},
		{"value_dir_exists", []string{value}, value},
		{"value_parse_json", []string{value}, value},
		{"value_to_json", []string{value}, value},
		{"value_input", nil, value},
		{"value_print", []string{value}, "void"},
		{"value_println", []string{value}, "void"},
		{"value_printf", []string{"i8*"}, "void"},

		// Error channel.
		{"value_clear_error", nil, "void"},
		{"value_is_ok", nil, value},
		{"value_last_error", nil, value},
		{"value_last_status", nil, value},
		{"value_fatal_error", nil, "void"},
		{"create_error_object", []string{value, value, value}, value},
		{"update_closure_captured", []string{value, "i32", value}, "void"},
		{"bind_method", []string{value, value}, value},
	}

	m := make(map[string]Signature, len(sigs))
	for _, s := range sigs {
		m[s.Name] = s
	}

	return m
}

// Declare renders the LLVM `declare` line for a named runtime entry point.
// Callers pass only the names their module actually references; an
// unknown name returns the empty string so finalization can skip it
// rather than panic on a codegen bug.
func Declare(name string) string {
	sig, ok := Signatures[name]
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString("declare ")
	b.WriteString(sig.Return)
	b.WriteString(" @")
	b.WriteString(sig.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(sig.Params, ", "))
	b.WriteByte(')')

	return b.String()
}
