package beatvm

// Run executes the program once. channels holds the input samples on entry and the output samples on return,
// its length is the channel count. On error, execution stops at the failing instruction and channel writes
// already done are kept. The evaluation stack is always empty when Run returns.
func (p *Program) Run(channels []Value) error {
	if len(p.ops) == 0 {
		return ErrEmptyProgram
	}
	e := p.run(channels)
	p.stack = p.stack[:0]
	if e != 0 {
		return e
	}
	return nil
}

func (p *Program) run(channels []Value) RuntimeError {
	for _, op := range p.ops {
		n := len(p.stack)

		switch op.Code {

		case OpPushConst:
			p.stack = append(p.stack, op.Value)

		case OpDiscard:
			if n < 1 {
				return ErrMissingOperand
			}
			p.stack = p.stack[:n-1]
			if n-1 != 0 {
				return ErrInconsistentStack
			}

		case OpPeek, OpGetChannel,
			OpNeg, OpBitNot, OpNot,
			OpSine, OpSquare, OpTriangle, OpFrequency, OpRandom,
			OpCC, OpVC:
			if n < 1 {
				return ErrMissingOperand
			}
			r, e := p.unary(op.Code, p.stack[n-1], channels)
			if e != 0 {
				return e
			}
			p.stack[n-1] = r

		case OpPoke, OpSetChannel,
			OpMul, OpDiv, OpMod, OpAdd, OpSub,
			OpShl, OpShr, OpAnd, OpOr, OpXor,
			OpLt, OpGt:
			if n < 2 {
				return ErrMissingOperand
			}
			r, e := p.binary(op.Code, p.stack[n-2], p.stack[n-1], channels)
			if e != 0 {
				return e
			}
			p.stack = p.stack[:n-1]
			p.stack[n-2] = r

		case OpSelect:
			if n < 3 {
				return ErrMissingOperand
			}
			p.stack[n-3] = selectValue(p.stack[n-3], p.stack[n-2], p.stack[n-1])
			p.stack = p.stack[:n-2]

		default:
			return ErrMissingOpcode
		}
	}

	if len(p.stack) > 1 {
		return ErrInconsistentStack
	}
	return 0
}

func (p *Program) unary(code OpCode, a Value, channels []Value) (r Value, e RuntimeError) {
	switch code {

	case OpPeek:
		r = p.Peek(a)

	case OpGetChannel:
		if a == ChannelAll {
			for _, c := range channels {
				r += c
			}
		} else if a >= Value(len(channels)) {
			e = ErrChannelReadOutOfBounds
		} else {
			r = channels[a]
		}

	case OpNeg:
		r = -a
	case OpBitNot:
		r = ^a
	case OpNot:
		if a == 0 {
			r = 1
		}

	case OpSine:
		r = Sine(a, p.Get('w'))
	case OpSquare:
		r = Square(a, p.Get('w'))
	case OpTriangle:
		r = Triangle(a, p.Get('w'))
	case OpFrequency:
		r = Frequency(a, p.Get('~'))
	case OpRandom:
		r = Random(p.rand, a)

	case OpCC:
		r = p.GetCC(a)
	case OpVC:
		r = p.GetVC(a)

	default:
		e = ErrMissingOpcode
	}
	return
}

func (p *Program) binary(code OpCode, a, b Value, channels []Value) (r Value, e RuntimeError) {
	switch code {

	case OpPoke:
		p.Poke(a, b)
		r = b

	case OpSetChannel:
		if a == ChannelAll {
			for i := range channels {
				channels[i] = b
			}
		} else if a >= Value(len(channels)) {
			e = ErrChannelWriteOutOfBounds
			return
		} else {
			channels[a] = b
		}
		r = b

	case OpMul:
		r = a * b
	case OpDiv:
		if b == 0 {
			e = ErrDivideByZero
			return
		}
		r = a / b
	case OpMod:
		if b == 0 {
			e = ErrDivideByZero
			return
		}
		r = a % b
	case OpAdd:
		r = a + b
	case OpSub:
		r = a - b

	case OpShl:
		r = a << (b % 64)
	case OpShr:
		r = a >> (b % 64)
	case OpAnd:
		r = a & b
	case OpOr:
		r = a | b
	case OpXor:
		r = a ^ b

	case OpLt:
		if a < b {
			r = 1
		}
	case OpGt:
		if a > b {
			r = 1
		}

	default:
		e = ErrMissingOpcode
	}
	return
}

func selectValue(cond, then, otherwise Value) Value {
	if cond != 0 {
		return then
	}
	return otherwise
}
