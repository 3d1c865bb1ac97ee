package schema

import "testing"

func TestClassifyExpression(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantClass ExpressionClass
		wantText  string
		wantCheck CheckKind
		wantCalc  CalcKind
	}{
		{"empty", "", ExprNone, "", CheckUndefined, CalcUndefined},
		{"blank", "   ", ExprNone, "", CheckUndefined, CalcUndefined},
		{"parentheses", "(x > 0)", ExprAttributePersisted, "x > 0", CheckAttribute, CalcPersistedAttribute},
		{"brackets", "[x > 0]", ExprTable, "x > 0", CheckTable, CalcInlineTable},
		{"braces", "{x > 0}", ExprTablePersisted, "x > 0", CheckTable, CalcPersistedTable},
		{"bare", "x > 0", ExprDirect, "x > 0", CheckDirect, CalcInlineAttribute},
		{"unbalanced open", "(x > 0", ExprDirect, "(x > 0", CheckDirect, CalcInlineAttribute},
		{"mismatched pair", "[x > 0)", ExprDirect, "[x > 0)", CheckDirect, CalcInlineAttribute},
		{"single bracket", "(", ExprDirect, "(", CheckDirect, CalcInlineAttribute},
		{"outer blanks", "  [a + b]  ", ExprTable, "a + b", CheckTable, CalcInlineTable},
		{"nested parentheses", "((a > 0) AND (b < 10))", ExprAttributePersisted, "(a > 0) AND (b < 10)", CheckAttribute, CalcPersistedAttribute},
		{"joined parentheses", "(a > 0) AND (b < 10)", ExprDirect, "(a > 0) AND (b < 10)", CheckDirect, CalcInlineAttribute},
		{"joined parentheses short", "(a) AND (b)", ExprDirect, "(a) AND (b)", CheckDirect, CalcInlineAttribute},
		{"joined brackets", "[a] OR [b]", ExprDirect, "[a] OR [b]", CheckDirect, CalcInlineAttribute},
		{"adjacent braces", "{x}{y}", ExprDirect, "{x}{y}", CheckDirect, CalcInlineAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyExpression(tt.raw)
			if got.Class != tt.wantClass {
				t.Errorf("class = %v, want %v", got.Class, tt.wantClass)
			}
			if got.Text != tt.wantText {
				t.Errorf("text = %q, want %q", got.Text, tt.wantText)
			}
			if got.CheckKind() != tt.wantCheck {
				t.Errorf("check kind = %v, want %v", got.CheckKind(), tt.wantCheck)
			}
			if got.CalcKind() != tt.wantCalc {
				t.Errorf("calc kind = %v, want %v", got.CalcKind(), tt.wantCalc)
			}
		})
	}
}
