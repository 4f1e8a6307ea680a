package errors

import "fmt"

// Lexical error codes (LEX001-099).
const (
	// ErrIllegalCharacter indicates the lexer encountered a character
	// no token can start with.
	ErrIllegalCharacter ErrorCode = "LEX001"
)

// Syntax error codes (SYN100-199).
const (
	// ErrUnexpectedToken indicates the parser encountered a token the
	// grammar did not expect at that position.
	ErrUnexpectedToken ErrorCode = "SYN100"
	// ErrUnmatchedParenthesis indicates the input ended while a group,
	// field group, or range was still open.
	ErrUnmatchedParenthesis ErrorCode = "SYN101"
)

// Repair diagnostic codes (REP200-299), one per inspector in the
// pipeline. These are warnings, not errors: each names a defect an
// inspector detected and rewrote. A result that did not reach a legal
// form within its budget also carries them, and REP299 appears only on
// such a result.
const (
	ErrChinesePunctuation  ErrorCode = "REP200"
	ErrIllegalRangeSyntax  ErrorCode = "REP201"
	ErrRepairedIllegalChar ErrorCode = "REP202"
	ErrStrayColon          ErrorCode = "REP203"
	ErrMismatchedBrackets  ErrorCode = "REP204"
	ErrUnknownOperator     ErrorCode = "REP205"
	ErrUnknownException    ErrorCode = "REP299"
)

// NewIllegalCharacter creates a LEX001 error for a character the lexer
// refused to start a token with.
func NewIllegalCharacter(pos int, char rune) *QueryError {
	return newError(
		ErrIllegalCharacter,
		"illegal_character",
		CategoryLex,
		SeverityError,
		fmt.Sprintf("Illegal character %q", char),
		pos,
	).WithSuggestion("Remove or escape the character, or quote it inside a phrase")
}

// NewUnexpectedToken creates a SYN100 error for a token the grammar
// could not place at the current parse position.
func NewUnexpectedToken(pos int, found string) *QueryError {
	return newError(
		ErrUnexpectedToken,
		"unexpected_token",
		CategorySyntax,
		SeverityError,
		fmt.Sprintf("Unexpected token '%s'", found),
		pos,
	)
}

// NewUnmatchedParenthesis creates a SYN101 error for input that ended
// with an open group, field group, or range.
func NewUnmatchedParenthesis(pos int) *QueryError {
	return newError(
		ErrUnmatchedParenthesis,
		"unmatched_parenthesis",
		CategorySyntax,
		SeverityError,
		"Unexpected end of expression, a bracket or parenthesis was never closed",
		pos,
	).WithSuggestion("Add the missing closing bracket or parenthesis")
}

// repairCodeForMessage maps a repair-pipeline diagnostic identifier
// (package repair's Message constants) to its stable error code, so a
// caller that already has a repair.Result can attach codes to its
// messages without the errors package importing the repair package.
func repairCodeForMessage(message string) (ErrorCode, string) {
	switch message {
	case "Chinese punctuation anomaly":
		return ErrChinesePunctuation, "chinese_punctuation"
	case "illegal RANGE syntax":
		return ErrIllegalRangeSyntax, "illegal_range_syntax"
	case "illegal character":
		return ErrRepairedIllegalChar, "illegal_character_repaired"
	case "stray colon":
		return ErrStrayColon, "stray_colon"
	case "mismatched brackets":
		return ErrMismatchedBrackets, "mismatched_brackets"
	case "unknown operator":
		return ErrUnknownOperator, "unknown_operator"
	case "unknown exception":
		return ErrUnknownException, "unknown_exception"
	default:
		return "", "repair_diagnostic"
	}
}

// NewRepairDiagnostic wraps one diagnostic message produced by the
// repair pipeline as a structured, JSON-serializable QueryError.
func NewRepairDiagnostic(message string) *QueryError {
	code, typ := repairCodeForMessage(message)
	return newError(code, typ, CategoryRepair, SeverityWarning, message, 0)
}
