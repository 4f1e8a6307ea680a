package repair

import "strings"

// MaxResolveTimes bounds how many times the full inspector chain is
// re-run in search of a fixed point. Each inspector only ever removes
// or substitutes a bounded piece of the keyword, so this caps total
// work at O(MaxResolveTimes * n) passes over the query.
const MaxResolveTimes = 10

// chain is the fixed, load-bearing inspector order. ChinesePunctuation
// must precede everything else so later inspectors see ASCII quotes.
// IllegalRangeSyntax must precede IllegalCharacter so a bare TO inside
// a malformed range is repaired as a range, not deleted as a stray
// token. UnknownOperator and Default run last because both require a
// tree that at least parses.
var chain = []Inspector{
	ChinesePunctuationInspector{},
	IllegalRangeSyntaxInspector{},
	IllegalCharacterInspector{},
	IllegalColonInspector{},
	IllegalBracketInspector{},
	UnknownOperatorInspector{},
	DefaultInspector{},
}

// Result is the outcome of running the repair pipeline to completion:
// either a clean fixed point, or the best-effort keyword after
// MaxResolveTimes passes together with every diagnostic collected along
// the way.
type Result struct {
	IsLegal    bool
	IsResolved bool
	Message    string
	Keyword    string
}

// Repair runs the inspector chain over keyword repeatedly until one
// full pass leaves every inspector legal, or MaxResolveTimes passes
// have run. It never returns a parser error: every failure mode the
// parser or field extractor can raise is caught by some inspector and
// turned into a diagnostic instead.
func Repair(keyword string) Result {
	return RepairWithBudget(keyword, MaxResolveTimes)
}

// RepairWithBudget runs the same fixed-point search as Repair, but
// bounds it to maxResolveTimes passes instead of the MaxResolveTimes
// default. A caller-supplied budget below 1 behaves as 1: the chain
// always runs at least one full pass.
func RepairWithBudget(keyword string, maxResolveTimes int) Result {
	if maxResolveTimes < 1 {
		maxResolveTimes = 1
	}

	messages := make([]string, 0)
	seen := make(map[string]bool)
	addMessage := func(m string) {
		if !seen[m] {
			seen[m] = true
			messages = append(messages, m)
		}
	}

	isResolved := false
	for i := 0; i < maxResolveTimes; i++ {
		allLegal := true
		for _, inspector := range chain {
			next, result := inspector.Inspect(keyword)
			keyword = next
			if !result.IsLegal {
				allLegal = false
				addMessage(result.Message)
			}
		}
		if allLegal {
			isResolved = true
			break
		}
	}

	if isResolved {
		filtered := messages[:0]
		for _, m := range messages {
			if m != MessageUnknownException {
				filtered = append(filtered, m)
			}
		}
		messages = filtered
	}

	return Result{
		IsLegal:    len(messages) == 0,
		IsResolved: isResolved,
		Message:    strings.Join(messages, "\n"),
		Keyword:    keyword,
	}
}
