package ast_test

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/mna/ember/lang/parser"
	"github.com/stretchr/testify/require"
)

// TestPrettyPrintRoundTrip checks that pretty-printing a parsed program and
// re-parsing the result yields a structurally identical AST, i.e.
// parse(print(parse(src))).String() == parse(src).String().
func TestPrettyPrintRoundTrip(t *testing.T) {
	srcs := []string{
		`let a = 5;`,
		`let add = fn(a, b) { a + b };`,
		`if (x < y) { x } else { y }`,
		`if (a) { a }`,
		`fn(x, y) { return x + y; }`,
		`let a = [1, 2, 3]; a[1] + len(a);`,
		`let h = {"one": 1, "two": 2}; h["two"];`,
		`!!5;`,
		`fn(){}();`,
		`let a = 5; let b = a * 2; b + 1;`,
		`if (10 > 1) { if (10 > 1) { return 10; } return 1; }`,
		`foo; bar; baz;`,
	}

	for _, src := range srcs {
		first, err := parser.Parse([]byte(src))
		require.NoError(t, err, src)
		printed := first.String()

		second, err := parser.Parse([]byte(printed))
		require.NoErrorf(t, err, "re-parsing printed form %q: %v", printed, err)

		if patch := diff.Diff(first.String(), second.String()); patch != "" {
			t.Fatalf("round trip mismatch for %q (printed as %q):\n%s", src, printed, patch)
		}
	}
}
