// Package lucenequery is the public facade over the Lucene query
// core: field extraction, repair, and rewriting. It exposes the three
// pure entry points ParseFields, Rewrite, and Repair, plus
// RepairWithBudget (Repair with a caller-chosen iteration budget) and
// Diagnostics (structured errors for a repair result); everything else
// (lexing, parsing, the AST, the inspector chain) is an internal
// implementation detail.
package lucenequery

import (
	"strings"

	"github.com/loglens/lucenequery/internal/lucene/ast"
	"github.com/loglens/lucenequery/internal/lucene/errors"
	"github.com/loglens/lucenequery/internal/lucene/fields"
	"github.com/loglens/lucenequery/internal/lucene/lexer"
	"github.com/loglens/lucenequery/internal/lucene/parser"
	"github.com/loglens/lucenequery/internal/lucene/repair"
	"github.com/loglens/lucenequery/internal/lucene/rewrite"
)

// Field is one addressable clause extracted from a query: a name, the
// AST node kind it came from, its operator, and its literal value.
type Field = fields.Field

// EditDirective identifies a node to replace by its source byte
// position, together with its replacement literal.
type EditDirective = rewrite.EditDirective

// RepairResult is the outcome of running the repair pipeline to
// completion or to its iteration budget.
type RepairResult = repair.Result

// QueryError is a structured, JSON-serializable description of a
// query defect: a stable code, category, and severity, in addition to
// the plain message every core error type already carries. ParseError
// produces one from whichever typed error the core raised; Diagnostics
// produces one per line of a RepairResult's Message.
type QueryError = errors.QueryError

// ParseError is returned by ParseFields and Rewrite when a query
// cannot be parsed, its fields cannot be extracted, or an edit cannot
// be applied. It wraps whichever error the core produced; repair.Repair
// never returns one, since repairing an unparseable query is exactly
// its job.
type ParseError struct {
	cause error
	query string
}

func (e *ParseError) Error() string { return e.cause.Error() }
func (e *ParseError) Unwrap() error { return e.cause }

// AsQueryError maps the underlying typed error to a structured
// QueryError, for callers (the lucenectl CLI's --json mode, in
// particular) that want a stable code and category rather than a
// string to match against.
func (e *ParseError) AsQueryError() *QueryError {
	var qe *QueryError
	switch cause := e.cause.(type) {
	case *lexer.LexError:
		qe = errors.NewIllegalCharacter(cause.Pos, cause.Char)
	case *parser.ParseSyntaxError:
		qe = errors.NewUnexpectedToken(cause.Pos, cause.Unexpected)
	case *parser.UnmatchedParenthesisError:
		qe = errors.NewUnmatchedParenthesis(0)
	case *fields.UnknownOperatorError:
		qe = errors.NewRepairDiagnostic("unknown operator").WithSuggestion("Join adjacent terms with AND or OR")
		qe.Pos = cause.Pos
	default:
		qe = errors.NewUnexpectedToken(0, e.cause.Error())
	}
	return qe.WithQuery(e.query)
}

// ParseFields parses query and flattens it into its Field list, in
// left-to-right order with duplicate names disambiguated as name(1),
// name(2), …. An empty query yields an empty, non-nil slice.
func ParseFields(query string) ([]Field, error) {
	root, err := parseQuery(query)
	if err != nil {
		return nil, &ParseError{cause: err, query: query}
	}

	fs, err := fields.Extract(root)
	if err != nil {
		return nil, &ParseError{cause: err, query: query}
	}
	return fs, nil
}

// Rewrite applies edits to query, resolving each directive's position
// against the node it addresses, and re-emits a syntactically valid
// query string with the original leading/trailing whitespace
// preserved.
func Rewrite(query string, edits []EditDirective) (string, error) {
	out, err := rewrite.Rewrite(query, edits)
	if err != nil {
		return "", &ParseError{cause: err, query: query}
	}
	return out, nil
}

// Repair runs the fixed, ordered inspector chain over query, iterating
// to a fixed point (or to its iteration budget), and returns the
// aggregated diagnostics together with the repaired keyword. Unlike
// ParseFields and Rewrite, Repair never returns an error: every defect
// the parser or field extractor can raise is caught by some inspector
// and recorded as a diagnostic on the result instead.
func Repair(query string) RepairResult {
	return repair.Repair(query)
}

// RepairWithBudget runs the repair pipeline like Repair, but bounds
// its fixed-point search to maxResolveTimes iterations instead of
// repair.MaxResolveTimes, letting a caller trade thoroughness for a
// tighter bound on deeply malformed input.
func RepairWithBudget(query string, maxResolveTimes int) RepairResult {
	return repair.RepairWithBudget(query, maxResolveTimes)
}

// Diagnostics splits a RepairResult's newline-joined Message into one
// QueryError per diagnostic, each carrying the stable code for its
// defect class and the repaired keyword for context. It returns an
// empty, non-nil slice for a RepairResult with no diagnostics.
func Diagnostics(result RepairResult) []QueryError {
	diags := make([]QueryError, 0)
	if result.Message == "" {
		return diags
	}
	for _, line := range strings.Split(result.Message, "\n") {
		qe := errors.NewRepairDiagnostic(line).WithQuery(result.Keyword)
		diags = append(diags, *qe)
	}
	return diags
}

func parseQuery(query string) (ast.Node, error) {
	l := lexer.New(query)
	toks, lexErrs := l.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, &lexErrs[0]
	}
	p := parser.New(toks)
	return p.Parse()
}
