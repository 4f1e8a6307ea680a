// Package repair implements the ordered inspector chain that detects
// and fixes common syntactic mistakes in a Lucene query string,
// iterating the chain to a fixed point.
package repair

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/loglens/lucenequery/internal/lucene/ast"
	"github.com/loglens/lucenequery/internal/lucene/fields"
	"github.com/loglens/lucenequery/internal/lucene/lexer"
	"github.com/loglens/lucenequery/internal/lucene/parser"
)

// Diagnostic identifiers. Each inspector emits one of these as its
// InspectResult.Message; callers branch on the stable string, not on
// inspector type.
const (
	MessageChinesePunctuation = "Chinese punctuation anomaly"
	MessageIllegalCharacter   = "illegal character"
	MessageIllegalRangeSyntax = "illegal RANGE syntax"
	MessageMismatchedBrackets = "mismatched brackets"
	MessageStrayColon         = "stray colon"
	MessageUnknownOperator    = "unknown operator"
	MessageUnknownException   = "unknown exception"
)

// InspectResult is the verdict an inspector reaches about one pass over
// a keyword: legal and unchanged, or illegal with a diagnostic.
type InspectResult struct {
	IsLegal bool
	Message string
}

func legal() InspectResult { return InspectResult{IsLegal: true} }

func illegal(message string) InspectResult {
	return InspectResult{IsLegal: false, Message: message}
}

// Inspector detects and, where possible, fixes one class of syntactic
// defect. It returns the (possibly rewritten) keyword together with the
// verdict for this pass; the pipeline re-runs the whole chain until a
// pass leaves every inspector legal or MaxResolveTimes is exhausted.
type Inspector interface {
	Inspect(keyword string) (string, InspectResult)
}

// parseString re-lexes and re-parses keyword from scratch. Inspectors
// use this to decide whether the defect they look for is still
// present; the pipeline, not the inspector, owns the iteration.
func parseString(keyword string) (ast.Node, error) {
	l := lexer.New(keyword)
	toks, lexErrs := l.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, &lexErrs[0]
	}
	p := parser.New(toks)
	return p.Parse()
}

func isUnmatchedParenthesis(err error) bool {
	_, ok := err.(*parser.UnmatchedParenthesisError)
	return ok
}

func removeAt(s string, pos, n int) string {
	if pos < 0 || n < 0 || pos+n > len(s) {
		return s
	}
	return s[:pos] + s[pos+n:]
}

// ChinesePunctuationInspector normalizes Chinese curly quotes to plain
// ASCII double quotes so the lexer can recognize phrase boundaries.
// It must run first: every later inspector parses the keyword, and the
// lexer treats a curly quote as an illegal character rather than a
// phrase delimiter.
type ChinesePunctuationInspector struct{}

var chineseQuotePairRe = regexp.MustCompile(`“.*?”`)

func (ChinesePunctuationInspector) Inspect(keyword string) (string, InspectResult) {
	matches := chineseQuotePairRe.FindAllStringIndex(keyword, -1)
	if len(matches) == 0 {
		return keyword, legal()
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(keyword[last:m[0]])
		inner := keyword[m[0]:m[1]]
		_, openLen := utf8.DecodeRuneInString(inner)
		_, closeLen := utf8.DecodeLastRuneInString(inner)
		b.WriteString(`"`)
		b.WriteString(inner[openLen : len(inner)-closeLen])
		b.WriteString(`"`)
		last = m[1]
	}
	b.WriteString(keyword[last:])

	return b.String(), illegal(MessageChinesePunctuation)
}

// IllegalRangeSyntaxInspector repairs a "[ TO x]" style range missing
// its low endpoint, which the parser reports as an unexpected TO. Once
// triggered, it rewrites every "[...TO...]" span, substituting "*" for
// any empty endpoint. A query whose only defect is a missing high
// endpoint ("[x TO ]") fails on an unexpected "]" instead and is left
// unchanged by this inspector.
// It must run before IllegalCharacterInspector: a bare TO token inside
// a malformed range would otherwise look like a stray identifier to
// delete rather than a range to repair.
type IllegalRangeSyntaxInspector struct{}

var (
	rangeSpanRe   = regexp.MustCompile(`\[.*?TO.*?\]`)
	singleRangeRe = regexp.MustCompile(`\[(.*)TO(.*)\]`)
)

func (IllegalRangeSyntaxInspector) Inspect(keyword string) (string, InspectResult) {
	_, err := parseString(keyword)
	syntaxErr, ok := err.(*parser.ParseSyntaxError)
	if !ok || syntaxErr.Unexpected != "TO" {
		return keyword, legal()
	}

	spans := rangeSpanRe.FindAllStringIndex(keyword, -1)
	if len(spans) == 0 {
		return keyword, legal()
	}

	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(keyword[last:span[0]])
		segment := keyword[span[0]:span[1]]
		if m := singleRangeRe.FindStringSubmatch(segment); m != nil {
			low := strings.TrimSpace(m[1])
			high := strings.TrimSpace(m[2])
			if low == "" {
				low = "*"
			}
			if high == "" {
				high = "*"
			}
			fmt.Fprintf(&b, "[%s TO %s]", low, high)
		} else {
			b.WriteString(segment)
		}
		last = span[1]
	}
	b.WriteString(keyword[last:])

	return b.String(), illegal(MessageIllegalRangeSyntax)
}

// IllegalCharacterInspector deletes the single character or token that
// the lexer or parser rejected. It relies on the parser's structured
// error types for the offending position and width rather than
// re-parsing a diagnostic string, since both carry that data directly.
type IllegalCharacterInspector struct{}

func (IllegalCharacterInspector) Inspect(keyword string) (string, InspectResult) {
	_, err := parseString(keyword)
	switch e := err.(type) {
	case *lexer.LexError:
		return removeAt(keyword, e.Pos, utf8.RuneLen(e.Char)), illegal(MessageIllegalCharacter)
	case *parser.ParseSyntaxError:
		return removeAt(keyword, e.Pos, len(e.Unexpected)), illegal(MessageIllegalCharacter)
	default:
		return keyword, legal()
	}
}

// IllegalColonInspector drops a trailing field-separator colon that has
// no expression after it, e.g. "status:" -> "status".
type IllegalColonInspector struct{}

func (IllegalColonInspector) Inspect(keyword string) (string, InspectResult) {
	_, err := parseString(keyword)
	if !isUnmatchedParenthesis(err) {
		return keyword, legal()
	}

	if strings.HasSuffix(keyword, ":") {
		return keyword[:len(keyword)-1], illegal(MessageStrayColon)
	}
	return keyword, legal()
}

// IllegalBracketInspector repairs one mismatched bracket per call via a
// left-to-right stack scan, removing exactly one character so the
// pipeline can re-run the chain and converge incrementally rather than
// guessing a whole-query fix in one shot.
type IllegalBracketInspector struct{}

var bracketPairs = map[byte]byte{'(': ')', '[': ']', '{': '}'}

func isOpenBracket(b byte) bool {
	_, ok := bracketPairs[b]
	return ok
}

func isCloseBracket(b byte) bool {
	for _, closer := range bracketPairs {
		if closer == b {
			return true
		}
	}
	return false
}

type bracketEntry struct {
	symbol byte
	index  int
}

func (IllegalBracketInspector) Inspect(keyword string) (string, InspectResult) {
	_, err := parseString(keyword)
	if !isUnmatchedParenthesis(err) {
		return keyword, legal()
	}

	var stack []bracketEntry
	for i := 0; i < len(keyword); i++ {
		sym := keyword[i]
		switch {
		case isOpenBracket(sym):
			stack = append(stack, bracketEntry{sym, i})

		case isCloseBracket(sym):
			if n := len(stack); n > 0 && sym == bracketPairs[stack[n-1].symbol] {
				stack = stack[:n-1]
				continue
			}
			stack = append(stack, bracketEntry{sym, i})
			if len(stack) >= 2 && stack[len(stack)-1].symbol == bracketPairs[stack[0].symbol] {
				removeIdx := stack[len(stack)-2].index
				return removeAt(keyword, removeIdx, 1), illegal(MessageMismatchedBrackets)
			}
			removeIdx := stack[len(stack)-1].index
			return removeAt(keyword, removeIdx, 1), illegal(MessageMismatchedBrackets)
		}
	}

	if len(stack) == 0 {
		return keyword, legal()
	}
	removeIdx := stack[len(stack)-1].index
	return removeAt(keyword, removeIdx, 1), illegal(MessageMismatchedBrackets)
}

// UnknownOperatorInspector rewrites every UnknownOperation node left by
// two juxtaposed atoms into an explicit AndOperation, then re-emits the
// query text.
type UnknownOperatorInspector struct{}

func (UnknownOperatorInspector) Inspect(keyword string) (string, InspectResult) {
	root, err := parseString(keyword)
	if err != nil || root == nil {
		return keyword, legal()
	}
	if !containsUnknownOperation(root) {
		return keyword, legal()
	}

	resolved := resolveUnknownOperations(root)
	return ast.Serialize(resolved), illegal(MessageUnknownOperator)
}

func containsUnknownOperation(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.UnknownOperation:
		return true
	case *ast.SearchField:
		return containsUnknownOperation(v.Expr)
	case *ast.FieldGroup:
		return containsUnknownOperation(v.Expr)
	case *ast.Group:
		return anyContainsUnknownOperation(v.Children)
	case *ast.AndOperation:
		return anyContainsUnknownOperation(v.Operands)
	case *ast.OrOperation:
		return anyContainsUnknownOperation(v.Operands)
	case *ast.Not:
		return containsUnknownOperation(v.Operand)
	case *ast.Plus:
		return containsUnknownOperation(v.Operand)
	case *ast.Prohibit:
		return containsUnknownOperation(v.Operand)
	default:
		return false
	}
}

func anyContainsUnknownOperation(nodes []ast.Node) bool {
	for _, n := range nodes {
		if containsUnknownOperation(n) {
			return true
		}
	}
	return false
}

// resolveUnknownOperations rebuilds the tree, turning every
// UnknownOperation into an AndOperation over its (recursively
// resolved) operands. Leaf kinds with no children are returned as-is.
func resolveUnknownOperations(n ast.Node) ast.Node {
	switch v := n.(type) {
	case *ast.UnknownOperation:
		return &ast.AndOperation{Operands: resolveAll(v.Operands), Pos: v.Pos}
	case *ast.SearchField:
		return &ast.SearchField{Name: v.Name, Expr: resolveUnknownOperations(v.Expr), Pos: v.Pos}
	case *ast.FieldGroup:
		return &ast.FieldGroup{Expr: resolveUnknownOperations(v.Expr), Pos: v.Pos}
	case *ast.Group:
		return &ast.Group{Children: resolveAll(v.Children), Pos: v.Pos}
	case *ast.AndOperation:
		return &ast.AndOperation{Operands: resolveAll(v.Operands), Pos: v.Pos}
	case *ast.OrOperation:
		return &ast.OrOperation{Operands: resolveAll(v.Operands), Pos: v.Pos}
	case *ast.Not:
		return &ast.Not{Operand: resolveUnknownOperations(v.Operand), Pos: v.Pos}
	case *ast.Plus:
		return &ast.Plus{Operand: resolveUnknownOperations(v.Operand), Pos: v.Pos}
	case *ast.Prohibit:
		return &ast.Prohibit{Operand: resolveUnknownOperations(v.Operand), Pos: v.Pos}
	default:
		return n
	}
}

func resolveAll(nodes []ast.Node) []ast.Node {
	out := make([]ast.Node, len(nodes))
	for i, n := range nodes {
		out[i] = resolveUnknownOperations(n)
	}
	return out
}

// DefaultInspector is the final guard: it attempts a full parse and a
// full field extraction, and flags the keyword illegal if either step
// still fails. Running last, after every targeted repair has had a
// chance to run, means a message from this inspector alone signals
// "something is still wrong that none of the specific inspectors know
// how to name".
type DefaultInspector struct{}

func (DefaultInspector) Inspect(keyword string) (string, InspectResult) {
	root, err := parseString(keyword)
	if err != nil {
		return keyword, illegal(MessageUnknownException)
	}
	if _, err := fields.Extract(root); err != nil {
		return keyword, illegal(MessageUnknownException)
	}
	return keyword, legal()
}
