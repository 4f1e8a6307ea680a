package parser

import (
	"testing"

	"github.com/loglens/lucenequery/internal/lucene/ast"
	"github.com/loglens/lucenequery/internal/lucene/lexer"
)

func mustScan(t *testing.T, q string) []lexer.Token {
	t.Helper()
	l := lexer.New(q)
	toks, errs := l.ScanTokens()
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	return toks
}

func TestParse_Empty(t *testing.T) {
	node, err := New(mustScan(t, "")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node != nil {
		t.Errorf("expected nil node, got %v", node)
	}
}

func TestParse_SingleWord(t *testing.T) {
	node, err := New(mustScan(t, "foo")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, ok := node.(*ast.Word)
	if !ok {
		t.Fatalf("expected *ast.Word, got %T", node)
	}
	if w.Value != "foo" || w.Pos != 0 {
		t.Errorf("unexpected word: %+v", w)
	}
}

func TestParse_AndOperation(t *testing.T) {
	node, err := New(mustScan(t, "foo AND bar")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	and, ok := node.(*ast.AndOperation)
	if !ok {
		t.Fatalf("expected *ast.AndOperation, got %T", node)
	}
	if len(and.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(and.Operands))
	}
}

func TestParse_OrBindsWeakerThanAnd(t *testing.T) {
	node, err := New(mustScan(t, "a OR b AND c")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	or, ok := node.(*ast.OrOperation)
	if !ok {
		t.Fatalf("expected top-level *ast.OrOperation, got %T", node)
	}
	if len(or.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(or.Operands))
	}
	if _, ok := or.Operands[1].(*ast.AndOperation); !ok {
		t.Errorf("expected second OR operand to be an AndOperation, got %T", or.Operands[1])
	}
}

func TestParse_ImplicitAndBecomesUnknownOperation(t *testing.T) {
	node, err := New(mustScan(t, "foo bar")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unk, ok := node.(*ast.UnknownOperation)
	if !ok {
		t.Fatalf("expected *ast.UnknownOperation, got %T", node)
	}
	if len(unk.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(unk.Operands))
	}
}

func TestParse_NotPrefix(t *testing.T) {
	node, err := New(mustScan(t, "NOT foo")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node.(*ast.Not); !ok {
		t.Fatalf("expected *ast.Not, got %T", node)
	}
}

func TestParse_SearchField(t *testing.T) {
	node, err := New(mustScan(t, "status: active")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sf, ok := node.(*ast.SearchField)
	if !ok {
		t.Fatalf("expected *ast.SearchField, got %T", node)
	}
	if sf.Name != "status" {
		t.Errorf("expected name status, got %q", sf.Name)
	}
	if _, ok := sf.Expr.(*ast.Word); !ok {
		t.Errorf("expected word expr, got %T", sf.Expr)
	}
}

func TestParse_FieldGroup(t *testing.T) {
	node, err := New(mustScan(t, "status:(active OR pending)")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sf, ok := node.(*ast.SearchField)
	if !ok {
		t.Fatalf("expected *ast.SearchField, got %T", node)
	}
	if _, ok := sf.Expr.(*ast.FieldGroup); !ok {
		t.Errorf("expected field group expr, got %T", sf.Expr)
	}
}

func TestParse_Range(t *testing.T) {
	node, err := New(mustScan(t, "[1 TO 10]")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := node.(*ast.Range)
	if !ok {
		t.Fatalf("expected *ast.Range, got %T", node)
	}
	if !r.IncludeLow || !r.IncludeHigh || r.Low != "1" || r.High != "10" {
		t.Errorf("unexpected range: %+v", r)
	}
}

func TestParse_MixedBracketRange(t *testing.T) {
	node, err := New(mustScan(t, "[1 TO 10}")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := node.(*ast.Range)
	if !ok {
		t.Fatalf("expected *ast.Range, got %T", node)
	}
	if !r.IncludeLow || r.IncludeHigh {
		t.Errorf("unexpected inclusivity: %+v", r)
	}
}

func TestParse_Fuzzy(t *testing.T) {
	node, err := New(mustScan(t, "roam~2")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := node.(*ast.Fuzzy)
	if !ok {
		t.Fatalf("expected *ast.Fuzzy, got %T", node)
	}
	if f.Term != "roam" || f.Degree != "2" {
		t.Errorf("unexpected fuzzy: %+v", f)
	}
}

func TestParse_Proximity(t *testing.T) {
	node, err := New(mustScan(t, `"a b"~5`)).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := node.(*ast.Proximity)
	if !ok {
		t.Fatalf("expected *ast.Proximity, got %T", node)
	}
	if p.Distance != "5" {
		t.Errorf("unexpected proximity: %+v", p)
	}
}

func TestParse_BoostIsConsumedNotRepresented(t *testing.T) {
	node, err := New(mustScan(t, "foo^2")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, ok := node.(*ast.Word)
	if !ok {
		t.Fatalf("expected *ast.Word, got %T", node)
	}
	if w.Value != "foo" {
		t.Errorf("unexpected word: %+v", w)
	}
}

func TestParse_UnmatchedOpenParenthesis(t *testing.T) {
	_, err := New(mustScan(t, "(a AND b")).Parse()
	if _, ok := err.(*UnmatchedParenthesisError); !ok {
		t.Fatalf("expected *UnmatchedParenthesisError, got %T (%v)", err, err)
	}
}

func TestParse_MalformedRangeProducesToAsUnexpected(t *testing.T) {
	_, err := New(mustScan(t, "ts: [ TO 100]")).Parse()
	se, ok := err.(*ParseSyntaxError)
	if !ok {
		t.Fatalf("expected *ParseSyntaxError, got %T (%v)", err, err)
	}
	if se.Unexpected != "TO" {
		t.Errorf("expected unexpected token TO, got %q", se.Unexpected)
	}
}

func TestParse_TrailingGarbageIsSyntaxError(t *testing.T) {
	_, err := New(mustScan(t, "foo)")).Parse()
	if _, ok := err.(*UnmatchedParenthesisError); !ok {
		t.Fatalf("expected *UnmatchedParenthesisError, got %T (%v)", err, err)
	}
}
