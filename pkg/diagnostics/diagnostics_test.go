package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnosticErrorWithoutVariable(t *testing.T) {
	d := New(StageLex, 3, 7, "unexpected byte in input")

	require.Equal(t, `lex:3:7: unexpected byte in input`, d.Error())
}

func TestDiagnosticErrorIncludesVariableWhenSet(t *testing.T) {
	d := &Diagnostic{Stage: StageCodegen, Line: 1, Column: 1, Message: "undeclared variable", Variable: "count"}

	require.Equal(t, `codegen:1:1: undeclared variable (variable "count")`, d.Error())
}

func TestDiagnosticsAccumulateInReportOrder(t *testing.T) {
	var diags Diagnostics

	require.False(t, diags.HasErrors())

	diags.Add(New(StageParse, 1, 1, "first"))
	diags.Add(New(StageParse, 2, 1, "second"))

	require.True(t, diags.HasErrors())
	require.Len(t, diags.Items(), 2)
	require.Equal(t, "parse:1:1: first\nparse:2:1: second", diags.Error())
}

func TestStageStringCoversAllStages(t *testing.T) {
	cases := map[Stage]string{
		StageIO: "io", StageNormalize: "normalize", StageRemap: "remap",
		StageLex: "lex", StageParse: "parse", StageCodegen: "codegen",
	}

	for stage, want := range cases {
		require.Equal(t, want, stage.String())
	}
}
