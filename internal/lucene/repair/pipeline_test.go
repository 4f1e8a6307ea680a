package repair

import "testing"

func TestRepair_Empty(t *testing.T) {
	r := Repair("")
	if !r.IsLegal || !r.IsResolved || r.Message != "" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestRepair_WellFormedQueryUnchanged(t *testing.T) {
	r := Repair("level: ERROR AND status: 500")
	if r.Keyword != "level: ERROR AND status: 500" {
		t.Errorf("expected unchanged keyword, got %q", r.Keyword)
	}
	if !r.IsLegal || !r.IsResolved || r.Message != "" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestRepair_TrailingColon(t *testing.T) {
	r := Repair("foo:")
	if r.Keyword != "foo" {
		t.Errorf("expected foo, got %q", r.Keyword)
	}
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
	if r.Message != MessageStrayColon {
		t.Errorf("expected stray colon diagnostic, got %q", r.Message)
	}
}

func TestRepair_ChinesePunctuation(t *testing.T) {
	r := Repair(`name: “bob”`)
	if r.Keyword != `name: "bob"` {
		t.Errorf("expected quotes normalized, got %q", r.Keyword)
	}
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
	if r.Message != MessageChinesePunctuation {
		t.Errorf("expected Chinese punctuation diagnostic, got %q", r.Message)
	}
}

func TestRepair_IllegalRangeSyntax(t *testing.T) {
	r := Repair("ts: [ TO 100]")
	if r.Keyword != "ts: [* TO 100]" {
		t.Errorf("expected range endpoint filled, got %q", r.Keyword)
	}
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
	if r.Message != MessageIllegalRangeSyntax {
		t.Errorf("expected illegal range syntax diagnostic, got %q", r.Message)
	}
}

func TestRepair_MismatchedBrackets(t *testing.T) {
	r := Repair("((a AND b)")
	if r.Keyword != "(a AND b)" {
		t.Errorf("expected one paren removed, got %q", r.Keyword)
	}
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
	if r.Message != MessageMismatchedBrackets {
		t.Errorf("expected mismatched brackets diagnostic, got %q", r.Message)
	}
}

func TestRepair_UnmatchedOpenBracket(t *testing.T) {
	r := Repair("(a AND b")
	if r.Keyword != "a AND b" {
		t.Errorf("expected open paren removed, got %q", r.Keyword)
	}
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
}

func TestRepair_UnknownOperator(t *testing.T) {
	r := Repair("foo bar")
	if r.Keyword != "foo AND bar" {
		t.Errorf("expected explicit AND, got %q", r.Keyword)
	}
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
	if r.Message != MessageUnknownOperator {
		t.Errorf("expected unknown operator diagnostic, got %q", r.Message)
	}
}

func TestRepair_IllegalCharacterDeleted(t *testing.T) {
	r := Repair("foo\x01 AND bar")
	if !r.IsResolved {
		t.Errorf("expected resolved: %+v", r)
	}
	if r.Message != MessageIllegalCharacter {
		t.Errorf("expected illegal character diagnostic, got %q", r.Message)
	}
}

func TestRepair_UnresolvableWithinBudgetStillReportsDiagnostics(t *testing.T) {
	r := Repair("(((((((((((")
	if r.IsLegal {
		t.Errorf("expected illegal result for unrecoverable input: %+v", r)
	}
}
