package beatvm

// RuntimeError is returned by Run. It is a plain integer so returning it through the error interface does not allocate.
type RuntimeError uint8

const (
	ErrDivideByZero RuntimeError = iota + 1
	ErrMissingOperand
	ErrMissingOpcode
	ErrInconsistentStack
	ErrEmptyProgram
	ErrChannelReadOutOfBounds
	ErrChannelWriteOutOfBounds

	numRuntimeErrors
)

var runtimeErrorDescriptions = [numRuntimeErrors]string{
	0:                          "no error",
	ErrDivideByZero:            "divide by zero",
	ErrMissingOperand:          "missing operand",
	ErrMissingOpcode:           "missing opcode",
	ErrInconsistentStack:       "inconsistent stack",
	ErrEmptyProgram:            "empty program",
	ErrChannelReadOutOfBounds:  "channel read out of bounds",
	ErrChannelWriteOutOfBounds: "channel write out of bounds",
}

func (e RuntimeError) Error() string {
	return e.Description()
}

func (e RuntimeError) Description() string {
	if e < numRuntimeErrors {
		return runtimeErrorDescriptions[e]
	}
	return "unknown runtime error"
}

// RuntimeErrors lists every runtime error code, for display.
func RuntimeErrors() []RuntimeError {
	ret := make([]RuntimeError, 0, numRuntimeErrors-1)
	for e := RuntimeError(1); e < numRuntimeErrors; e++ {
		ret = append(ret, e)
	}
	return ret
}
