package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalTableDriven(t *testing.T) {
	t.Parallel()

	scope := Scope{
		"os":         "linux",
		"os.family":  "linux",
		"user.name":  "root",
		"vars.debug": "",
	}

	cases := []struct {
		name string
		expr string
		want bool
	}{
		{"bare true", "true", true},
		{"bare false", "false", false},
		{"string equality match", `os == "linux"`, true},
		{"string equality mismatch", `os == "windows"`, false},
		{"not equal", `os != "windows"`, true},
		{"and both true", `os == "linux" && user.name == "root"`, true},
		{"and short circuits false", `os == "windows" && user.name == "root"`, false},
		{"or true", `os == "windows" || user.name == "root"`, true},
		{"negation", `!(os == "windows")`, true},
		{"missing key compares false", `vars.nonexistent == "x"`, false},
		{"missing key truthy is false", `vars.nonexistent`, false},
		{"empty string value is falsy", "vars.debug", false},
		{"parenthesized precedence", `(os == "linux" || os == "macos") && user.name == "root"`, true},
		{"single quoted literal", `os == 'linux'`, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Eval(tc.expr, scope)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEvalReportsSyntaxErrors(t *testing.T) {
	t.Parallel()

	cases := []string{
		`os ==`,
		`(os == "linux"`,
		`os == "linux")`,
		`"unterminated`,
	}

	for _, expression := range cases {
		_, err := Eval(expression, Scope{})
		require.Error(t, err, expression)
	}
}

func TestEvalGuardRobustnessAgainstMissingKeys(t *testing.T) {
	t.Parallel()

	// Testable property 8: a variants condition referencing a missing
	// context key is non-matching, not an error.
	got, err := Eval(`os.family == "plan9" && user.name == "root"`, Scope{"user.name": "root"})
	require.NoError(t, err)
	require.False(t, got)
}
