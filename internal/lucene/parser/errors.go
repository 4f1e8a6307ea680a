// Package parser builds a typed Lucene query AST from a token stream,
// using recursive descent that stops at the first error.
package parser

import (
	"fmt"

	"github.com/loglens/lucenequery/internal/lucene/lexer"
)

// ParseSyntaxError reports an unexpected token encountered mid-parse.
//
// The repair pipeline's IllegalRangeSyntaxInspector and
// IllegalCharacterInspector read the offending token text and position
// directly from the Unexpected and Pos fields.
type ParseSyntaxError struct {
	Unexpected string
	Pos        int
}

// Error implements the error interface.
func (e *ParseSyntaxError) Error() string {
	return fmt.Sprintf("Syntax error in input : unexpected  '%s' at position %d", e.Unexpected, e.Pos)
}

// UnmatchedParenthesisError reports input that ended while a group was
// still open.
//
// The message is a fixed literal, not a template. The repair
// pipeline's IllegalColonInspector and IllegalBracketInspector both key
// off this error type to distinguish "ran out of input" from any other
// syntax error.
type UnmatchedParenthesisError struct{}

// Error implements the error interface.
func (e *UnmatchedParenthesisError) Error() string {
	return "Syntax error in input : unexpected end of expression (maybe due to unmatched parenthesis) at the end!"
}

// UnknownOperatorError reports that the tree contains an UnknownOperation
// node: two atoms were juxtaposed with no explicit operator between
// them. Unlike the other parse errors, this one is discovered by
// walking a successfully parsed tree, not during parsing itself, so it
// carries the offending node's position rather than a token.
type UnknownOperatorError struct {
	Pos int
}

// Error implements the error interface.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator at position %d", e.Pos)
}

// LexErrors reports one or more illegal characters surfaced by the
// lexer before parsing even began.
type LexErrors struct {
	Errors []lexer.LexError
}

// Error implements the error interface, reporting the first offense;
// callers that need every occurrence should inspect Errors directly.
func (e *LexErrors) Error() string {
	if len(e.Errors) == 0 {
		return "lex error"
	}
	return e.Errors[0].Error()
}
