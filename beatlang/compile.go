package beatlang

import (
	"strconv"
	"strings"

	"github.com/reusee/beat/beatvm"
)

// Compile translates source into a program whose user memory holds userMemorySize values.
// The returned error is a *CompileError.
func Compile(source string, userMemorySize int) (*beatvm.Program, error) {
	ops, err := CompileOps(source, userMemorySize)
	if err != nil {
		return nil, err
	}
	return beatvm.NewProgram(ops, userMemorySize), nil
}

// CompileOps is Compile without binding the instructions to a program.
func CompileOps(source string, userMemorySize int) ([]beatvm.Op, error) {
	if userMemorySize < 0 {
		userMemorySize = 0
	}
	p := &parser{
		src:            source,
		userMemorySize: userMemorySize,
	}
	if err := p.parseProgram(); err != nil {
		return nil, err
	}
	return p.ops, nil
}

type parser struct {
	src            string
	pos            int
	userMemorySize int
	ops            []beatvm.Op
}

func (p *parser) parseProgram() error {
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if err := p.parseStatement(0); err != nil {
			return err
		}
		// statements are separated by ';' only
		if p.lastCode() != beatvm.OpDiscard {
			break
		}
	}

	p.skipSpace()
	if !p.eof() {
		if p.peek() == ')' {
			return p.fail(ErrUnbalancedParens)
		}
		return p.fail(ErrUnexpectedCharacter)
	}

	for _, op := range p.ops {
		if op.Code == beatvm.OpSetChannel {
			return nil
		}
	}
	return p.fail(ErrMissingOutput)
}

// parseStatement parses one assignment level expression and its optional ';' terminator.
// A ';' is legal only at depth 0.
func (p *parser) parseStatement(depth int) error {
	if err := p.parseAssignment(depth); err != nil {
		return err
	}
	if p.lastCode() == beatvm.OpDiscard {
		// terminated by the right side of an assignment
		return nil
	}
	p.skipSpace()
	if p.peek() == ';' {
		if depth > 0 {
			return p.fail(ErrIllegalTermination)
		}
		p.pos++
		p.emit(beatvm.OpDiscard.Op())
	}
	return nil
}

func (p *parser) parseAssignment(depth int) error {
	if err := p.parseTernary(depth); err != nil {
		return err
	}
	p.skipSpace()
	if p.peek() != '=' {
		return nil
	}

	var write beatvm.OpCode
	switch p.lastCode() {
	case beatvm.OpPeek:
		write = beatvm.OpPoke
	case beatvm.OpGetChannel:
		write = beatvm.OpSetChannel
	default:
		return p.fail(ErrIllegalAssignment)
	}
	p.pos++
	// the address or channel index stays on the stack
	p.ops = p.ops[:len(p.ops)-1]

	// same depth: the right side may end the statement with ';'
	if err := p.parseStatement(depth); err != nil {
		return err
	}
	if p.lastCode() == beatvm.OpDiscard {
		p.ops[len(p.ops)-1] = write.Op()
		p.emit(beatvm.OpDiscard.Op())
		return nil
	}
	p.emit(write.Op())
	return nil
}

// parseTernary compiles both arms unconditionally, followed by a select.
func (p *parser) parseTernary(depth int) error {
	if err := p.parseBinary(depth, 0); err != nil {
		return err
	}
	p.skipSpace()
	if p.peek() != '?' {
		return nil
	}
	p.pos++
	if err := p.parseAssignment(depth); err != nil {
		return err
	}
	p.skipSpace()
	switch p.peek() {
	case ':':
	case ';':
		return p.fail(ErrIllegalTermination)
	default:
		return p.fail(ErrMissingColon)
	}
	p.pos++
	if err := p.parseAssignment(depth); err != nil {
		return err
	}
	p.emit(beatvm.OpSelect.Op())
	return nil
}

type binaryOperator struct {
	token string
	codes []beatvm.OpCode
}

// binary operator levels, loosest first. Longer tokens come before their prefixes.
var binaryLevels = [][]binaryOperator{
	{
		{"|", []beatvm.OpCode{beatvm.OpOr}},
	},
	{
		{"^", []beatvm.OpCode{beatvm.OpXor}},
	},
	{
		{"&", []beatvm.OpCode{beatvm.OpAnd}},
	},
	{
		{"<<", []beatvm.OpCode{beatvm.OpShl}},
		{">>", []beatvm.OpCode{beatvm.OpShr}},
		{"<=", []beatvm.OpCode{beatvm.OpGt, beatvm.OpNot}},
		{">=", []beatvm.OpCode{beatvm.OpLt, beatvm.OpNot}},
		{"<", []beatvm.OpCode{beatvm.OpLt}},
		{">", []beatvm.OpCode{beatvm.OpGt}},
	},
	{
		{"+", []beatvm.OpCode{beatvm.OpAdd}},
		{"-", []beatvm.OpCode{beatvm.OpSub}},
	},
	{
		{"*", []beatvm.OpCode{beatvm.OpMul}},
		{"/", []beatvm.OpCode{beatvm.OpDiv}},
		{"%", []beatvm.OpCode{beatvm.OpMod}},
	},
}

// parseBinary parses one precedence level, left associative.
func (p *parser) parseBinary(depth int, level int) error {
	if level == len(binaryLevels) {
		return p.parseUnary(depth)
	}
	if err := p.parseBinary(depth, level+1); err != nil {
		return err
	}
	for {
		p.skipSpace()
		op, ok := p.matchBinary(binaryLevels[level])
		if !ok {
			return nil
		}
		p.pos += len(op.token)
		if err := p.parseBinary(depth, level+1); err != nil {
			return err
		}
		for _, code := range op.codes {
			p.emit(code.Op())
		}
	}
}

func (p *parser) matchBinary(ops []binaryOperator) (binaryOperator, bool) {
	rest := p.src[p.pos:]
	for _, op := range ops {
		if len(rest) >= len(op.token) && rest[:len(op.token)] == op.token {
			return op, true
		}
	}
	return binaryOperator{}, false
}

var unaryOperators = map[byte]beatvm.OpCode{
	'@': beatvm.OpPeek,
	'F': beatvm.OpFrequency,
	'#': beatvm.OpSquare,
	'$': beatvm.OpSine,
	'T': beatvm.OpTriangle,
	'+': 0,
	'-': beatvm.OpNeg,
	'~': beatvm.OpBitNot,
	'!': beatvm.OpNot,
	'C': beatvm.OpCC,
	'V': beatvm.OpVC,
	'R': beatvm.OpRandom,
}

// parseUnary collects prefix operators and emits them innermost first, so $Fn is sine of frequency of n.
func (p *parser) parseUnary(depth int) error {
	var prefix []beatvm.OpCode
	for {
		p.skipSpace()
		code, ok := unaryOperators[p.peek()]
		if !ok || p.eof() {
			break
		}
		p.pos++
		if code != 0 {
			prefix = append(prefix, code)
		}
	}
	if err := p.parseAtom(depth); err != nil {
		return err
	}
	for i := len(prefix) - 1; i >= 0; i-- {
		p.emit(prefix[i].Op())
	}
	return nil
}

func (p *parser) parseAtom(depth int) error {
	p.skipSpace()
	c := p.peek()
	switch {

	case c == '(':
		p.pos++
		if err := p.parseStatement(depth + 1); err != nil {
			return err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return p.fail(ErrUnbalancedParens)
		}
		p.pos++

	case c == '[':
		p.pos++
		p.skipSpace()
		if p.peek() == '*' {
			p.pos++
			p.emit(beatvm.OpPushConst.With(beatvm.ChannelAll))
		} else if err := p.parseStatement(depth + 1); err != nil {
			return err
		}
		p.skipSpace()
		if p.peek() != ']' {
			return p.fail(ErrUnterminatedBracket)
		}
		p.pos++
		p.emit(beatvm.OpGetChannel.Op())

	case c >= 'a' && c <= 'z':
		p.pos++
		p.emit(beatvm.OpPushConst.With(beatvm.VarAddress(p.userMemorySize, c)))
		p.emit(beatvm.OpPeek.Op())

	case c >= 'A' && c <= 'Z':
		return p.fail(ErrIllegalVariable)

	default:
		return p.parseNumber()
	}
	return nil
}

// parseNumber accepts decimal, 0x hex and 0 octal literals.
func (p *parser) parseNumber() error {
	start := p.pos
	if p.eof() || !isDigit(p.peek()) {
		return p.fail(ErrNumberParse)
	}
	for !p.eof() && isLiteralChar(p.peek()) {
		p.pos++
	}
	literal := p.src[start:p.pos]
	if !isPlainLiteral(literal) {
		return &CompileError{
			Code:   ErrNumberParse,
			Offset: start,
		}
	}
	v, err := strconv.ParseUint(literal, 0, 64)
	if err != nil {
		return &CompileError{
			Code:   ErrNumberParse,
			Offset: start,
		}
	}
	p.emit(beatvm.OpPushConst.With(v))
	return nil
}

// isPlainLiteral rejects the 0b, 0o and digit separator forms that strconv also accepts.
func isPlainLiteral(s string) bool {
	if strings.Contains(s, "_") {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'b', 'B', 'o', 'O':
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLiteralChar(c byte) bool {
	return isDigit(c) ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c == '_'
}

// skipSpace skips whitespace and // comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) emit(op beatvm.Op) {
	p.ops = append(p.ops, op)
}

func (p *parser) lastCode() beatvm.OpCode {
	if len(p.ops) == 0 {
		return 0
	}
	return p.ops[len(p.ops)-1].Code
}

func (p *parser) fail(code ErrorCode) error {
	return &CompileError{
		Code:   code,
		Offset: p.pos,
	}
}
