// Package lexer implements the UTF-8-aware tokenizer of §4.3: it scans the
// identifier-remapped text and emits tokens that carry both their position
// in the mapped stream and — via the composed offset/source maps — their
// full original-file span.
package lexer

// Kind enumerates every token kind the lexer can produce.
type Kind uint8

// Token kinds.
const (
	EOF Kind = iota
	// literals
	Num
	Str
	Bool
	Null
	Undef
	// names
	Ident
	KwIdent     // reserved word used as a keyword (if, L, R, T, B, N, break, next, return, self, main)
	TypeIdent   // num | str | bl | obj | func as a type annotation
	BuiltinFunc // a name from varmap.BuiltinNames
	// digraphs
	DigL        // L>
	DigR        // R>
	DigT        // T>
	DigB        // B>
	DigN        // N>
	DigChain    // .>
	DigDeclare  // :=
	DigTypeOpen // :<
	Eq          // ==
	NotEq       // !=
	LtEq        // <=
	GtEq        // >=
	AndAnd      // &&
	OrOr        // ||
	Pow         // **
	Inc         // ++
	Dec         // --
	// punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Semicolon
	Colon
	Assign
	Lt
	Gt
	Bang
	Amp
	Pipe
	Caret
	Question
	Dot
)

var kindNames = [...]string{
	"EOF", "Num", "Str", "Bool", "Null", "Undef",
	"Ident", "KwIdent", "TypeIdent", "BuiltinFunc",
	"DigL", "DigR", "DigT", "DigB", "DigN", "DigChain", "DigDeclare", "DigTypeOpen",
	"Eq", "NotEq", "LtEq", "GtEq", "AndAnd", "OrOr", "Pow", "Inc", "Dec",
	"Plus", "Minus", "Star", "Slash", "Percent",
	"LParen", "RParen", "LBracket", "RBracket", "LBrace", "RBrace",
	"Comma", "Semicolon", "Colon", "Assign", "Lt", "Gt", "Bang",
	"Amp", "Pipe", "Caret", "Question", "Dot",
}

// String renders a Kind by name, used by the `tokens` debug subcommand.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// Token is one lexical unit, carrying its lexeme and its position both in
// the mapped stream the lexer scanned and (composed via the offset/source
// maps) in the original source file, per §3.3.
type Token struct {
	Kind Kind
	// Lexeme is the escape-decoded text of the token. For string literals
	// this may contain embedded NUL bytes; LexemeLength is authoritative.
	Lexeme       string
	LexemeLength int
	NormLine     uint32
	NormColumn   uint32
	OrigLine     uint32
	OrigColumn   uint32
	OrigLength   uint32
}
