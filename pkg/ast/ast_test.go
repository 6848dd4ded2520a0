package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyuxc/flyuxc/pkg/source"
)

func TestEmbeddedLocationIsPromotedToLoc(t *testing.T) {
	loc := source.Location{Line: 4, Column: 7}

	n := &Num{Location: loc, Value: 3}

	require.Equal(t, loc, n.Loc())
}

func TestProgramSatisfiesStmtInterface(t *testing.T) {
	var s Stmt = &Program{Statements: []Stmt{&ExprStmt{Value: &Num{Value: 1}}}}

	require.IsType(t, &Program{}, s)
}

func TestBinaryAndUnaryNodesSatisfyExprInterface(t *testing.T) {
	var exprs []Expr = []Expr{
		&Binary{Op: OpAdd, Left: &Num{Value: 1}, Right: &Num{Value: 2}},
		&Unary{Op: OpNeg, Operand: &Num{Value: 1}},
		&Ternary{Cond: &Bool{Value: true}, Then: &Num{Value: 1}, Else: &Num{Value: 2}},
		&Call{Callee: &Identifier{Name: "f"}},
		&Member{Object: &Identifier{Name: "o"}, Property: "p"},
		&Index{Object: &Identifier{Name: "a"}, Index: &Num{Value: 0}},
		&Str{Value: "x"},
		&Null{},
		&Undef{},
	}

	require.Len(t, exprs, 9)
}

func TestVarDeclConstFlagReflectsParenAnnotation(t *testing.T) {
	d := &VarDecl{
		Name:        "count",
		Type:        &TypeAnnotation{Name: "num", IsConst: true},
		Initializer: &Num{Value: 1},
		IsConst:     true,
	}

	require.True(t, d.IsConst)
	require.Equal(t, "num", d.Type.Name)
}
