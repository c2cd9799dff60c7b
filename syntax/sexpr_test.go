package syntax

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input string
		typ   NodeType
		text  string
	}{
		{"foo", NodeSymbol, "foo"},
		{"42", NodeInteger, "42"},
		{"-7", NodeInteger, "-7"},
		{"3.25", NodeFloat, "3.25"},
		{"1e3", NodeFloat, "1e3"},
		{`"a \"b\"\n"`, NodeString, "a \"b\"\n"},
		{"<=", NodeSymbol, "<="},
		{"-", NodeSymbol, "-"},
		{"&&", NodeSymbol, "&&"},
		{"_", NodeSymbol, "_"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			n, err := Parse(test.input)
			be.Err(t, err, nil)
			be.Equal(t, n.Type, test.typ)
			be.Equal(t, n.Text, test.text)
		})
	}
}

func TestParseListWithMeta(t *testing.T) {
	n, err := Parse("(var int a ^{dims: [3 4], line: 2} ^{line: 5})")
	be.Err(t, err, nil)

	be.Equal(t, n.Head(), "var")
	be.Equal(t, len(n.Items), 3)
	be.Equal(t, n.MetaKeys, []string{"dims", "line"})
	be.Equal(t, n.Meta("line").Text, "5")
	be.Equal(t, n.Meta("dims").String(), "[3 4]")
	be.True(t, n.Meta("col") == nil)
	be.Equal(t, n.String(), "(^{dims: [3 4], line: 5} var int a)")
}

func TestParseCommentsAndLines(t *testing.T) {
	n, err := Parse("; header\n(a\n  ; inner\n  (b c))")
	be.Err(t, err, nil)

	be.Equal(t, n.Line, 2)
	be.Equal(t, n.Items[1].Line, 4)
	be.Equal(t, n.String(), "(a (b c))")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"(a b", "line 1: expected ')' but got EOF"},
		{"(a) b", "line 1: expected EOF but got symbol"},
		{"\n(a $)", "line 2: unexpected character '$'"},
		{`"abc`, "line 1: unterminated string"},
		{"(a ^[1])", "line 1: expected '{' after '^' but got '['"},
		{"{1: 2}", "line 1: expected symbol for map key but got integer"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := Parse(test.input)
			be.Err(t, err, test.err)
		})
	}
}
