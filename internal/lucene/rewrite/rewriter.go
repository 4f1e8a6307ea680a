// Package rewrite replaces individual nodes of a parsed Lucene query by
// source position and re-serializes the result, preserving the
// original query's leading and trailing whitespace.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/loglens/lucenequery/internal/lucene/ast"
	"github.com/loglens/lucenequery/internal/lucene/lexer"
	"github.com/loglens/lucenequery/internal/lucene/parser"
)

// EditDirective identifies an AST node by its source byte position and
// supplies a replacement literal for it.
type EditDirective struct {
	Pos   int
	Value string
}

// NotAddressableError reports that a directive's position resolved to
// a node kind the public rewrite API cannot replace.
type NotAddressableError struct {
	Pos int
}

func (e *NotAddressableError) Error() string {
	return fmt.Sprintf("rewrite: node at position %d is not addressable", e.Pos)
}

// NotFoundError reports that no node in the tree sits at a directive's
// position.
type NotFoundError struct {
	Pos int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rewrite: no node at position %d", e.Pos)
}

// Rewrite applies edits to query in order and re-emits the result. Each
// directive is resolved against the tree produced by the previous
// directive, so edits addressing freshly-introduced positions only make
// sense relative to the original query's own offsets.
func Rewrite(query string, edits []EditDirective) (string, error) {
	lead, _, trail := splitWhitespace(query)

	root, err := parseString(query)
	if err != nil {
		return "", err
	}

	for _, e := range edits {
		if root == nil {
			return "", &NotFoundError{Pos: e.Pos}
		}
		newRoot, found, err := replaceAt(root, e)
		if err != nil {
			return "", err
		}
		if !found {
			return "", &NotFoundError{Pos: e.Pos}
		}
		root = newRoot
	}

	out := ""
	if root != nil {
		out = ast.Serialize(root)
	}
	return lead + out + trail, nil
}

func parseString(q string) (ast.Node, error) {
	l := lexer.New(q)
	toks, lexErrs := l.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, &lexErrs[0]
	}
	p := parser.New(toks)
	return p.Parse()
}

// splitWhitespace separates leading and trailing whitespace from the
// query body so the rewriter can restore it verbatim around whatever
// the parser/serializer round trip produces.
func splitWhitespace(q string) (lead, body, trail string) {
	trimmedLeft := strings.TrimLeft(q, " \t\n\r")
	lead = q[:len(q)-len(trimmedLeft)]
	trimmed := strings.TrimRight(trimmedLeft, " \t\n\r")
	trail = trimmedLeft[len(trimmed):]
	return lead, trimmed, trail
}

// replaceAt walks n looking for the node at pos, replaces it per the
// rules in resolveReplacement, and returns the (possibly new) tree plus
// whether a match was found anywhere in it.
//
// Only Word and SearchField are addressable by the public rewrite API,
// so those are the only kinds checked as a positional match before
// recursing into children. Composite nodes (AndOperation, OrOperation,
// UnknownOperation) take on the byte position of their first operand,
// which would otherwise collide with that operand's own position;
// trying the addressable kinds first and recursing into every other
// kind resolves a collision to the innermost addressable node rather
// than the non-addressable wrapper around it. If nothing addressable
// turns up anywhere below a node that itself sits at e.Pos, that node
// is reported as the (non-addressable) match via NotAddressableError.
func replaceAt(n ast.Node, e EditDirective) (ast.Node, bool, error) {
	if n == nil {
		return nil, false, nil
	}

	switch v := n.(type) {
	case *ast.Word:
		if v.Pos == e.Pos {
			replacement, err := resolveReplacement(v, e.Value)
			return replacement, err == nil, err
		}
		return n, false, nil

	case *ast.SearchField:
		if v.Pos == e.Pos {
			replacement, err := resolveReplacement(v, e.Value)
			return replacement, err == nil, err
		}
		child, found, err := replaceAt(v.Expr, e)
		if err != nil || found {
			return &ast.SearchField{Name: v.Name, Expr: child, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.FieldGroup:
		child, found, err := replaceAt(v.Expr, e)
		if err != nil || found {
			return &ast.FieldGroup{Expr: child, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.Group:
		children, found, err := replaceInSlice(v.Children, e)
		if err != nil || found {
			return &ast.Group{Children: children, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.AndOperation:
		operands, found, err := replaceInSlice(v.Operands, e)
		if err != nil || found {
			return &ast.AndOperation{Operands: operands, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.OrOperation:
		operands, found, err := replaceInSlice(v.Operands, e)
		if err != nil || found {
			return &ast.OrOperation{Operands: operands, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.UnknownOperation:
		operands, found, err := replaceInSlice(v.Operands, e)
		if err != nil || found {
			return &ast.UnknownOperation{Operands: operands, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.Not:
		child, found, err := replaceAt(v.Operand, e)
		if err != nil || found {
			return &ast.Not{Operand: child, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.Plus:
		child, found, err := replaceAt(v.Operand, e)
		if err != nil || found {
			return &ast.Plus{Operand: child, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	case *ast.Prohibit:
		child, found, err := replaceAt(v.Operand, e)
		if err != nil || found {
			return &ast.Prohibit{Operand: child, Pos: v.Pos}, found, err
		}
		return notAddressableIfHere(n, e)

	default:
		// Phrase, Regex, Range, Fuzzy, Proximity: leaves with no
		// addressable children.
		return notAddressableIfHere(n, e)
	}
}

// notAddressableIfHere reports whether n itself sits at e.Pos; if so,
// the position genuinely resolved to a real node, just not one the
// rewrite API can replace. Otherwise the position simply isn't present
// in this subtree.
func notAddressableIfHere(n ast.Node, e EditDirective) (ast.Node, bool, error) {
	if n.Location() == e.Pos {
		return n, false, &NotAddressableError{Pos: e.Pos}
	}
	return n, false, nil
}

func replaceInSlice(nodes []ast.Node, e EditDirective) ([]ast.Node, bool, error) {
	out := make([]ast.Node, len(nodes))
	copy(out, nodes)
	for i, n := range nodes {
		child, found, err := replaceAt(n, e)
		if err != nil {
			return nil, false, err
		}
		if found {
			out[i] = child
			return out, true, nil
		}
	}
	return nodes, false, nil
}

// resolveReplacement implements the two addressable shapes from the
// public rewrite contract: a SearchField wrapping a bare Word, or a
// bare Word on its own. Anything else at a matched position is
// rejected as not addressable.
func resolveReplacement(n ast.Node, value string) (ast.Node, error) {
	switch v := n.(type) {
	case *ast.SearchField:
		word, ok := v.Expr.(*ast.Word)
		if !ok {
			return nil, &NotAddressableError{Pos: v.Pos}
		}
		fragment := v.Name + ": " + value
		if operator := leadingComparisonOperator(word); operator != "" {
			fragment = v.Name + ": " + operator + value
		}
		return parseString(fragment)

	case *ast.Word:
		return &ast.Word{Value: value, Pos: v.Pos}, nil

	default:
		return nil, &NotAddressableError{Pos: n.Location()}
	}
}

// leadingComparisonOperator reports the comparison operator, if any,
// already present on a field's word value, so the rewrite preserves it
// exactly as field extraction would have surfaced it.
func leadingComparisonOperator(w *ast.Word) string {
	for _, op := range []string{">=", "<=", ">", "<"} {
		if strings.HasPrefix(w.Value, op) {
			return op
		}
	}
	return ""
}
