package ast

import "strings"

// Serialize renders a node back to Lucene query text. It is the
// counterpart to the parser: Serialize(Parse(Tokenize(s))) reproduces s
// modulo insignificant whitespace between tokens.
func Serialize(n Node) string {
	var b strings.Builder
	serialize(n, &b)
	return b.String()
}

func serialize(n Node, b *strings.Builder) {
	switch v := n.(type) {
	case *Word:
		b.WriteString(v.Value)
	case *Phrase:
		b.WriteString(v.Value)
	case *Regex:
		b.WriteString(v.Value)
	case *SearchField:
		b.WriteString(v.Name)
		b.WriteString(": ")
		serialize(v.Expr, b)
	case *FieldGroup:
		b.WriteString("(")
		serialize(v.Expr, b)
		b.WriteString(")")
	case *Group:
		b.WriteString("(")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(" ")
			}
			serialize(c, b)
		}
		b.WriteString(")")
	case *Range:
		if v.IncludeLow {
			b.WriteString("[")
		} else {
			b.WriteString("{")
		}
		b.WriteString(v.Low)
		b.WriteString(" TO ")
		b.WriteString(v.High)
		if v.IncludeHigh {
			b.WriteString("]")
		} else {
			b.WriteString("}")
		}
	case *Fuzzy:
		b.WriteString(v.Term)
		b.WriteString("~")
		b.WriteString(v.Degree)
	case *Proximity:
		b.WriteString(v.Phrase)
		b.WriteString("~")
		b.WriteString(v.Distance)
	case *AndOperation:
		joinOperands(v.Operands, " AND ", b)
	case *OrOperation:
		joinOperands(v.Operands, " OR ", b)
	case *Not:
		b.WriteString("NOT ")
		serialize(v.Operand, b)
	case *Plus:
		b.WriteString("+")
		serialize(v.Operand, b)
	case *Prohibit:
		b.WriteString("-")
		serialize(v.Operand, b)
	case *UnknownOperation:
		joinOperands(v.Operands, " ", b)
	default:
		panic("ast: unreachable node type")
	}
}

func joinOperands(operands []Node, sep string, b *strings.Builder) {
	for i, o := range operands {
		if i > 0 {
			b.WriteString(sep)
		}
		serialize(o, b)
	}
}
