package beatvm

// Expression evaluates a program as a tree instead of a linear instruction list.
// It shares memory with the Program it was built from. Every operand of every node is evaluated,
// including both arms of a select, so it produces the same side effects as Run.
type Expression struct {
	program    *Program
	statements []*node
}

type node struct {
	op   Op
	args []*node
}

// NewExpression lifts the instruction list of p into a tree.
// Instruction lists that would leave values behind a discard are rejected, since the tree could not keep their order.
func NewExpression(p *Program) (*Expression, error) {
	if len(p.ops) == 0 {
		return nil, ErrEmptyProgram
	}
	var stack []*node
	var statements []*node
	for _, op := range p.ops {
		if op.Code == OpJump || op.Code == 0 || op.Code >= numOpCodes {
			return nil, ErrMissingOpcode
		}
		arity := op.Code.Arity()
		if len(stack) < arity {
			return nil, ErrMissingOperand
		}
		n := &node{
			op:   op,
			args: append([]*node(nil), stack[len(stack)-arity:]...),
		}
		stack = stack[:len(stack)-arity]
		if op.Code == OpDiscard {
			if len(stack) != 0 {
				return nil, ErrInconsistentStack
			}
			statements = append(statements, n)
			continue
		}
		stack = append(stack, n)
	}
	if len(stack) > 1 {
		return nil, ErrInconsistentStack
	}
	statements = append(statements, stack...)
	return &Expression{
		program:    p,
		statements: statements,
	}, nil
}

func (e *Expression) Program() *Program {
	return e.program
}

// Eval evaluates every statement once, in order.
func (e *Expression) Eval(channels []Value) error {
	for _, stmt := range e.statements {
		if _, err := e.eval(stmt, channels); err != 0 {
			return err
		}
	}
	return nil
}

func (e *Expression) eval(n *node, channels []Value) (Value, RuntimeError) {
	var args [3]Value
	for i, arg := range n.args {
		v, err := e.eval(arg, channels)
		if err != 0 {
			return 0, err
		}
		args[i] = v
	}
	switch len(n.args) {
	case 0:
		return n.op.Value, 0
	case 1:
		if n.op.Code == OpDiscard {
			return args[0], 0
		}
		return e.program.unary(n.op.Code, args[0], channels)
	case 2:
		return e.program.binary(n.op.Code, args[0], args[1], channels)
	case 3:
		return selectValue(args[0], args[1], args[2]), 0
	}
	return 0, ErrMissingOpcode
}
