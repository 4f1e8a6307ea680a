package lucenequery

import "testing"

func TestParseFields_SingleWord(t *testing.T) {
	fs, err := ParseFields("foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs) != 1 || fs[0].Value != "foo" {
		t.Errorf("unexpected fields: %+v", fs)
	}
}

func TestParseFields_Empty(t *testing.T) {
	fs, err := ParseFields("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs) != 0 {
		t.Errorf("expected no fields, got %v", fs)
	}
}

func TestParseFields_UnparseableQueryReturnsParseError(t *testing.T) {
	_, err := ParseFields("status:")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("expected *ParseError, got %T", err)
	}
}

func TestRewrite_PlainWord(t *testing.T) {
	out, err := Rewrite("foo", []EditDirective{{Pos: 0, Value: "bar"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "bar" {
		t.Errorf("expected bar, got %q", out)
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
}

func TestRepair_WellFormedQueryIsLegalAndUnchanged(t *testing.T) {
	r := Repair("status: active")
	if r.Keyword != "status: active" || !r.IsLegal || !r.IsResolved {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestParseError_AsQueryError(t *testing.T) {
	_, err := ParseFields("status:")
	if err == nil {
		t.Fatal("expected an error")
	}
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	qe := parseErr.AsQueryError()
	if qe.Code == "" {
		t.Error("expected a non-empty error code")
	}
	if qe.Query != "status:" {
		t.Errorf("expected query to be carried onto the QueryError, got %q", qe.Query)
	}
}

func TestDiagnostics_OneQueryErrorPerMessageLine(t *testing.T) {
	r := Repair("name: “bob”")
	diags := Diagnostics(r)
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	for _, d := range diags {
		if d.Code == "" {
			t.Errorf("expected every diagnostic to carry a code: %+v", d)
		}
		if d.Query != r.Keyword {
			t.Errorf("expected diagnostic query to be the repaired keyword, got %q", d.Query)
		}
	}
}

func TestDiagnostics_EmptyForLegalQuery(t *testing.T) {
	r := Repair("status: active")
	diags := Diagnostics(r)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics for a well-formed query, got %+v", diags)
	}
}

func TestRepairWithBudget_LowerBudgetCanLeaveDeeplyMalformedInputUnresolved(t *testing.T) {
	input := "(((foo" // 3 unmatched opens; the bracket inspector fixes one per pass

	full := Repair(input)
	if !full.IsResolved || full.Keyword != "foo" {
		t.Fatalf("expected the default budget to fully resolve this input: %+v", full)
	}

	limited := RepairWithBudget(input, 1)
	if limited.IsResolved {
		t.Errorf("expected a 1-pass budget to leave this input unresolved: %+v", limited)
	}
}
