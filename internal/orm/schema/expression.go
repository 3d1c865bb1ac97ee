package schema

import "strings"

// ExpressionClass is the bracket shape of a check or computed expression
type ExpressionClass int

const (
	ExprNone               ExpressionClass = iota // empty
	ExprDirect                                    // bare text
	ExprAttributePersisted                        // (text)
	ExprTable                                     // [text]
	ExprTablePersisted                            // {text}
)

// String returns the string representation of the expression class
func (c ExpressionClass) String() string {
	switch c {
	case ExprDirect:
		return "direct"
	case ExprAttributePersisted:
		return "attribute_persisted"
	case ExprTable:
		return "table"
	case ExprTablePersisted:
		return "table_persisted"
	default:
		return "none"
	}
}

// Expression is a classified expression with its wrapping stripped
type Expression struct {
	Class ExpressionClass
	Text  string
}

var expressionWrappers = []struct {
	open, close byte
	class       ExpressionClass
}{
	{'(', ')', ExprAttributePersisted},
	{'[', ']', ExprTable},
	{'{', '}', ExprTablePersisted},
}

// ClassifyExpression classifies raw expression text by its outer brackets.
// Text that is not wrapped in a single matching pair, such as "(a) AND (b)",
// is a direct expression and is returned unchanged.
func ClassifyExpression(raw string) Expression {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Expression{Class: ExprNone}
	}

	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		for _, w := range expressionWrappers {
			if first == w.open && last == w.close && closesAtEnd(trimmed, w.open, w.close) {
				return Expression{
					Class: w.class,
					Text:  strings.TrimSpace(trimmed[1 : len(trimmed)-1]),
				}
			}
		}
	}

	return Expression{Class: ExprDirect, Text: raw}
}

// closesAtEnd reports whether the bracket opening s is closed by its last
// byte and not earlier
func closesAtEnd(s string, left, right byte) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

// CheckKind maps the expression class onto a check kind
func (e Expression) CheckKind() CheckKind {
	switch e.Class {
	case ExprDirect:
		return CheckDirect
	case ExprAttributePersisted:
		return CheckAttribute
	case ExprTable, ExprTablePersisted:
		return CheckTable
	default:
		return CheckUndefined
	}
}

// CalcKind maps the expression class onto a calc kind
func (e Expression) CalcKind() CalcKind {
	switch e.Class {
	case ExprDirect:
		return CalcInlineAttribute
	case ExprAttributePersisted:
		return CalcPersistedAttribute
	case ExprTable:
		return CalcInlineTable
	case ExprTablePersisted:
		return CalcPersistedTable
	default:
		return CalcUndefined
	}
}
