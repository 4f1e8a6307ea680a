// Package fields walks a parsed Lucene query AST and flattens it into
// an ordered list of addressable Field records.
package fields

import (
	"fmt"
	"strings"

	"github.com/loglens/lucenequery/internal/lucene/ast"
)

// FullTextSentinel is the reserved field name assigned to a clause that
// is not attached to any explicit "name:" prefix.
const FullTextSentinel = "*"

// Operator string constants. These are part of the Field contract: a
// caller matches on them to decide how to render or re-execute a
// clause, so they must stay stable once published.
const (
	OpWordMatch    = "~="
	OpPhraseMatch  = "="
	OpFieldGroup   = "()"
	OpNot          = "NOT"
	OpPlus         = "+"
	OpProhibit     = "-"
)

// comparisonOperators are checked in this order so the two-character
// forms are matched before their one-character prefixes.
var comparisonOperators = []string{">=", "<=", ">", "<"}

// Field is one addressable clause extracted from a query.
type Field struct {
	Pos      int
	Name     string
	Type     ast.Kind
	Operator string
	Value    string
}

// UnknownOperatorError reports that the tree being walked contains an
// UnknownOperation node: two atoms with no explicit operator between
// them. It is not raised by a well-formed parse; recovery from it is
// the repair pipeline's job (package repair), not the extractor's.
type UnknownOperatorError struct {
	Pos int
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator at position %d", e.Pos)
}

// Extract walks root and returns its Field list in left-to-right AST
// order, with duplicate names disambiguated as name(1), name(2), ….
// An empty or nil root yields an empty, non-nil slice.
func Extract(root ast.Node) ([]Field, error) {
	if root == nil {
		return []Field{}, nil
	}

	result, err := walk(root)
	if err != nil {
		return nil, err
	}

	return dedupeNames(result), nil
}

func walk(n ast.Node) ([]Field, error) {
	switch v := n.(type) {
	case *ast.Word:
		return []Field{wordField(v)}, nil

	case *ast.Phrase:
		return []Field{{
			Pos:      v.Pos,
			Name:     FullTextSentinel,
			Type:     ast.KindPhrase,
			Operator: OpPhraseMatch,
			Value:    v.Value,
		}}, nil

	case *ast.Regex:
		return []Field{{
			Pos:      v.Pos,
			Name:     FullTextSentinel,
			Type:     ast.KindRegex,
			Operator: OpWordMatch,
			Value:    ast.Serialize(v),
		}}, nil

	case *ast.Fuzzy:
		return []Field{{
			Pos:      v.Pos,
			Name:     FullTextSentinel,
			Type:     ast.KindFuzzy,
			Operator: OpWordMatch,
			Value:    ast.Serialize(v),
		}}, nil

	case *ast.Proximity:
		return []Field{{
			Pos:      v.Pos,
			Name:     FullTextSentinel,
			Type:     ast.KindProximity,
			Operator: OpWordMatch,
			Value:    ast.Serialize(v),
		}}, nil

	case *ast.SearchField:
		inner, err := walk(v.Expr)
		if err != nil {
			return nil, err
		}
		// SearchField always wraps a single addressable clause: its
		// name overwrites whatever the inner walk produced.
		f := inner[0]
		f.Pos = v.Pos
		f.Name = v.Name
		return []Field{f}, nil

	case *ast.FieldGroup:
		return []Field{{
			Pos:      v.Pos,
			Name:     "",
			Type:     ast.KindFieldGroup,
			Operator: OpFieldGroup,
			Value:    "(" + ast.Serialize(v.Expr) + ")",
		}}, nil

	case *ast.Group:
		return walkAll(v.Children)

	case *ast.Range:
		return []Field{{
			Pos:      v.Pos,
			Name:     FullTextSentinel,
			Type:     ast.KindRange,
			Operator: rangeOperator(v),
			Value:    ast.Serialize(v),
		}}, nil

	case *ast.AndOperation:
		return walkAll(v.Operands)

	case *ast.OrOperation:
		return walkAll(v.Operands)

	case *ast.Not:
		return unaryField(v.Pos, OpNot, ast.KindNot, v.Operand)

	case *ast.Plus:
		return unaryField(v.Pos, OpPlus, ast.KindPlus, v.Operand)

	case *ast.Prohibit:
		return unaryField(v.Pos, OpProhibit, ast.KindProhibit, v.Operand)

	case *ast.UnknownOperation:
		return nil, &UnknownOperatorError{Pos: v.Pos}

	default:
		return nil, fmt.Errorf("fields: unhandled node kind %T", n)
	}
}

func walkAll(nodes []ast.Node) ([]Field, error) {
	var out []Field
	for _, n := range nodes {
		fs, err := walk(n)
		if err != nil {
			return nil, err
		}
		out = append(out, fs...)
	}
	return out, nil
}

// unaryField extracts the operand's value and reattaches it under the
// unary operator's own name, position, and type, matching the way the
// Python parser's parsing_not/parsing_plus/parsing_prohibit only ever
// look at the operand's rendered value.
func unaryField(pos int, op string, kind ast.Kind, operand ast.Node) ([]Field, error) {
	inner, err := walk(operand)
	if err != nil {
		return nil, err
	}
	return []Field{{
		Pos:      pos,
		Name:     FullTextSentinel,
		Type:     kind,
		Operator: op,
		Value:    inner[0].Value,
	}}, nil
}

// wordField lifts a leading comparison operator out of a bare word, per
// the field-extraction contract: ">=100" becomes operator ">=", value
// "100".
func wordField(w *ast.Word) Field {
	f := Field{
		Pos:      w.Pos,
		Name:     FullTextSentinel,
		Type:     ast.KindWord,
		Operator: OpWordMatch,
		Value:    w.Value,
	}
	for _, op := range comparisonOperators {
		if strings.HasPrefix(w.Value, op) {
			f.Operator = op
			f.Value = strings.TrimPrefix(w.Value, op)
			break
		}
	}
	return f
}

func rangeOperator(r *ast.Range) string {
	low := "{"
	if r.IncludeLow {
		low = "["
	}
	high := "}"
	if r.IncludeHigh {
		high = "]"
	}
	return low + high
}

// dedupeNames renames colliding Field.Name occurrences to name(1),
// name(2), … in traversal order. Names that occur exactly once are
// left untouched.
func dedupeNames(in []Field) []Field {
	counts := make(map[string]int, len(in))
	for _, f := range in {
		counts[f.Name]++
	}

	seen := make(map[string]int, len(in))
	out := make([]Field, len(in))
	for i, f := range in {
		if counts[f.Name] > 1 {
			seen[f.Name]++
			f.Name = fmt.Sprintf("%s(%d)", f.Name, seen[f.Name])
		}
		out[i] = f
	}
	return out
}
