package spawk_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linsomniac/spawk"
)

func TestEvalExprDedup(t *testing.T) {
	src := spawk.NewReaderSource(strings.NewReader("a\na\nb\n"))
	data := map[string]any{"lastline": "", "emitted": []int(nil)}
	eng := spawk.New(src, data, nil)

	if _, err := eng.EvalExpr(`data.lastline != line`,
		func(c *spawk.Context[map[string]any], line spawk.Line) error {
			c.Data["lastline"] = line.Text
			c.Data["emitted"] = append(c.Data["emitted"].([]int), line.Number)
			return nil
		}); err != nil {
		t.Fatalf("EvalExpr() error = %v", err)
	}
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	emitted := data["emitted"].([]int)
	if len(emitted) != 2 || emitted[0] != 1 || emitted[1] != 3 {
		t.Errorf("emitted lines = %v, want [1 3]", emitted)
	}
	if data["lastline"] != "b" {
		t.Errorf("lastline = %q, want %q", data["lastline"], "b")
	}
}

func TestEvalExpr(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		split bool
		want  []int // line numbers the rule fires on
	}{
		{
			name: "lineno",
			expr: `lineno == 2`,
			want: []int{2},
		},
		{
			name: "line contents",
			expr: `line.contains("b")`,
			want: []int{2},
		},
		{
			name:  "fields",
			expr:  `fields.size() > 0 && fields[0] == "c"`,
			split: true,
			want:  []int{3},
		},
		{
			name: "non-boolean result is no match",
			expr: `lineno`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := spawk.NewReaderSource(strings.NewReader("a one\nb two\nc three\n"))
			eng := spawk.New(src, &[]int{}, nil)
			if tt.split {
				eng.Split("", -1)
			}
			if _, err := eng.EvalExpr(tt.expr,
				func(c *spawk.Context[*[]int], line spawk.Line) error {
					*c.Data = append(*c.Data, line.Number)
					return nil
				}); err != nil {
				t.Fatalf("EvalExpr(%q) error = %v", tt.expr, err)
			}
			if err := eng.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got := *eng.Context().Data
			if len(got) != len(tt.want) {
				t.Fatalf("fired on lines %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("fired on lines %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestEvalExprBadExpression(t *testing.T) {
	eng := spawk.New(spawk.NewReaderSource(strings.NewReader("")), struct{}{}, nil)

	_, err := eng.EvalExpr(`line ==`, nil)
	if err == nil {
		t.Fatal("EvalExpr() with a malformed expression should fail at registration")
	}
	var ee *spawk.ExprError
	if !errors.As(err, &ee) {
		t.Errorf("EvalExpr() error = %T, want *ExprError", err)
	}

	if _, err := eng.EvalExpr(`nosuchvar == 1`, nil); err == nil {
		t.Error("EvalExpr() referencing an undeclared variable should fail")
	}
}
