package beatlang

import "fmt"

type ErrorCode uint8

const (
	ErrUnbalancedParens ErrorCode = iota + 1
	ErrUnterminatedBracket
	ErrMissingColon
	ErrIllegalTermination
	ErrIllegalAssignment
	ErrIllegalVariable
	ErrNumberParse
	ErrUnexpectedCharacter
	ErrMissingOutput

	numErrorCodes
)

var errorDescriptions = [numErrorCodes]string{
	0:                      "no error",
	ErrUnbalancedParens:    "mismatched parentheses",
	ErrUnterminatedBracket: "missing closing bracket",
	ErrMissingColon:        "missing ':' in ternary expression",
	ErrIllegalTermination:  "';' is only allowed between top level statements",
	ErrIllegalAssignment:   "can only assign to a variable, memory or a channel",
	ErrIllegalVariable:     "uppercase letters are reserved for operators",
	ErrNumberParse:         "expected a number",
	ErrUnexpectedCharacter: "unexpected character",
	ErrMissingOutput:       "program never writes an output channel",
}

func (c ErrorCode) Description() string {
	if c < numErrorCodes {
		return errorDescriptions[c]
	}
	return "unknown compile error"
}

func (c ErrorCode) String() string {
	return c.Description()
}

// ErrorCodes lists every compile error code, for display.
func ErrorCodes() []ErrorCode {
	ret := make([]ErrorCode, 0, numErrorCodes-1)
	for c := ErrorCode(1); c < numErrorCodes; c++ {
		ret = append(ret, c)
	}
	return ret
}

type CompileError struct {
	Code ErrorCode
	// byte offset into the source where the error was detected
	Offset int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Code.Description(), e.Offset)
}

// Is matches another *CompileError with the same code, so errors.Is works with a code-only target.
func (e *CompileError) Is(target error) bool {
	t, ok := target.(*CompileError)
	return ok && t.Code == e.Code
}
