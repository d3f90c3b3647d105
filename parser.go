package jsonk

// Parser turns JSON text into a refcounted Value tree. It is the Go
// analogue of jsonk_parser (include/jsonk.h) / jsonk_parse_value
// (src/jsonk.c), generalized from the teacher's recursive-descent shape in
// json/parser.go (parseVal/parseObj/parseArr) but driven off the scanner
// type in scanner.go instead of index-juggling inline, since jsonk's grammar is
// small enough that a dedicated scanner keeps the recursive descent
// readable.
//
// A Parser is not safe for concurrent use — spec.md §5 states the core has
// no internal locking, matching jsonk_parser's lack of any synchronization
// in the C source. Each goroutine that parses concurrently needs its own
// Parser (or none: Parse is a plain function, a Parser only matters if you
// want a custom memory cap or Logger). Each call to Parser.Parse starts a
// fresh budget.
type Parser struct {
	MaxMemory int
	Logger    Logger
}

func (p *Parser) logger() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return defaultLogger
}

// Parse parses src into a new Value tree. It enforces MaxDepth, MaxArraySize,
// MaxObjectMembers, MaxStringLength, MaxKeyLength and the parser's memory
// budget, and fails closed (releasing any partially-built subtree) on the
// first violation — the same fail-fast contract jsonk_parse_value has, since
// a half-built tree left with live slab nodes would leak fixed-size pool
// objects the module can't reclaim any other way. A failure is reported
// through the Parser's Logger before being returned, the diagnostic-output
// path spec.md §6/§7 calls for around error conditions.
func (p *Parser) Parse(src string) (*Value, error) {
	b := newBudget(p.MaxMemory)
	s := newScanner(src, b)
	s.skipSpace()
	v, err := parseValue(s, b, 0)
	if err != nil {
		p.logger().Warnf("jsonk: parse failed at offset %d: %v", s.pos, err)
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		v.Release()
		err := wrapf(ErrSyntax, "trailing data at offset %d", s.pos)
		p.logger().Warnf("jsonk: parse failed: %v", err)
		return nil, err
	}
	return v, nil
}

// Parse is the package-level convenience entry point: parse src with
// default limits and no logger.
func Parse(src string) (*Value, error) {
	p := Parser{}
	return p.Parse(src)
}

func parseValue(s *scanner, b *budget, depth int) (*Value, error) {
	s.skipSpace()
	if s.eof() {
		return nil, wrapf(ErrSyntax, "unexpected end of input at offset %d", s.pos)
	}
	switch c := s.peek(); {
	case c == '{':
		return parseObject(s, b, depth)
	case c == '[':
		return parseArray(s, b, depth)
	case c == '"':
		str, err := s.scanString()
		if err != nil {
			return nil, err
		}
		return NewString(b, str)
	case c == 't':
		if err := s.scanLiteral("true"); err != nil {
			return nil, err
		}
		return NewBool(b, true)
	case c == 'f':
		if err := s.scanLiteral("false"); err != nil {
			return nil, err
		}
		return NewBool(b, false)
	case c == 'n':
		if err := s.scanLiteral("null"); err != nil {
			return nil, err
		}
		return NewNull(b)
	case c == '-' || isDigit(c):
		n, err := s.scanNumber()
		if err != nil {
			return nil, err
		}
		return NewNumber(b, n)
	default:
		return nil, wrapf(ErrSyntax, "unexpected byte %q at offset %d", c, s.pos)
	}
}

func parseObject(s *scanner, b *budget, depth int) (*Value, error) {
	// The opening brace itself is one level of nesting below whatever
	// enclosed it — count it here, at the token that actually descends,
	// rather than only when content recurses. Otherwise an outer value's
	// check never sees the level its own container introduces.
	depth++
	if depth > MaxDepth {
		return nil, wrapf(ErrDepth, "nesting exceeds %d", MaxDepth)
	}
	if err := s.expect('{'); err != nil {
		return nil, err
	}
	obj, err := NewObject(b)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.peek() == '}' {
		s.pos++
		return obj, nil
	}
	for {
		s.skipSpace()
		if s.peek() != '"' {
			obj.Release()
			return nil, wrapf(ErrSyntax, "expected object key at offset %d", s.pos)
		}
		key, err := s.scanString()
		if err != nil {
			obj.Release()
			return nil, err
		}
		if len(key) > MaxKeyLength {
			obj.Release()
			return nil, wrapf(ErrLimit, "key length %d exceeds %d", len(key), MaxKeyLength)
		}
		s.skipSpace()
		if err := s.expect(':'); err != nil {
			obj.Release()
			return nil, err
		}
		val, err := parseValue(s, b, depth)
		if err != nil {
			obj.Release()
			return nil, err
		}
		if err := obj.Set(b, key, val); err != nil {
			val.Release()
			obj.Release()
			return nil, err
		}
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
			continue
		case '}':
			s.pos++
			return obj, nil
		default:
			obj.Release()
			return nil, wrapf(ErrSyntax, "expected ',' or '}' at offset %d", s.pos)
		}
	}
}

func parseArray(s *scanner, b *budget, depth int) (*Value, error) {
	depth++
	if depth > MaxDepth {
		return nil, wrapf(ErrDepth, "nesting exceeds %d", MaxDepth)
	}
	if err := s.expect('['); err != nil {
		return nil, err
	}
	arr, err := NewArray(b)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.peek() == ']' {
		s.pos++
		return arr, nil
	}
	for {
		val, err := parseValue(s, b, depth)
		if err != nil {
			arr.Release()
			return nil, err
		}
		if err := arr.Append(b, val); err != nil {
			val.Release()
			arr.Release()
			return nil, err
		}
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
			continue
		case ']':
			s.pos++
			return arr, nil
		default:
			arr.Release()
			return nil, wrapf(ErrSyntax, "expected ',' or ']' at offset %d", s.pos)
		}
	}
}
