package jsonk

// scanner is the lexical layer: whitespace skipping, string unescaping and
// number-grammar validation, grounded on the teacher's rawStr/rawStrSlow and
// hexRune/encRune (json/parser.go) for string handling, and on
// jsonk_parse_string/jsonk_parse_number/jsonk_next_token (src/jsonk.c) for
// the exact escape set and number grammar jsonk's kernel module accepts.
type scanner struct {
	src string
	pos int
	b   *budget
}

func newScanner(src string, b *budget) *scanner {
	return &scanner{src: src, b: b}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// expect consumes c or fails with ErrSyntax, the way jsonk_next_token's
// caller checks a single structural byte before recursing.
func (s *scanner) expect(c byte) error {
	if s.eof() || s.src[s.pos] != c {
		return wrapf(ErrSyntax, "expected %q at offset %d", c, s.pos)
	}
	s.pos++
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// scanLiteral matches the literal word lit (e.g. "true") starting at the
// current position and advances past it, or fails with ErrSyntax.
func (s *scanner) scanLiteral(lit string) error {
	if s.pos+len(lit) > len(s.src) || s.src[s.pos:s.pos+len(lit)] != lit {
		return wrapf(ErrSyntax, "invalid literal at offset %d", s.pos)
	}
	s.pos += len(lit)
	return nil
}

// scanString consumes a JSON string starting at the opening quote (which
// must be the current byte) and returns its unescaped content. The fast
// path — no backslash, no control byte — returns a zero-copy slice of src,
// the same optimization the teacher's rawStr takes before falling back to
// rawStrSlow. The slow path unescapes into a pooled scratch buffer and
// copies once into an owned string, matching
// jsonk_value_create_string_tracked's escape handling: the eight short
// escapes plus \uXXXX, which (per src/jsonk.c) is copied through as its
// literal 6-byte source form rather than decoded to a rune — the kernel
// module has no UTF-8 codec, and this port preserves that behavior rather
// than "fixing" it into full Unicode escape support.
func (s *scanner) scanString() (string, error) {
	if err := s.expect('"'); err != nil {
		return "", err
	}
	start := s.pos
	i := s.pos
	for i < len(s.src) {
		c := s.src[i]
		if c == '"' {
			str := s.src[start:i]
			if len(str) > MaxStringLength {
				return "", wrapf(ErrLimit, "string length %d exceeds %d", len(str), MaxStringLength)
			}
			s.pos = i + 1
			return str, nil
		}
		if c == '\\' || c < 0x20 {
			return s.scanStringSlow(start)
		}
		i++
	}
	return "", wrapf(ErrSyntax, "unterminated string at offset %d", start)
}

func (s *scanner) scanStringSlow(start int) (string, error) {
	buf, err := acquireScratch(s.b, len(s.src)-start)
	if err != nil {
		return "", err
	}
	defer releaseScratch(buf)

	i := start
	for {
		if i >= len(s.src) {
			return "", wrapf(ErrSyntax, "unterminated string at offset %d", start)
		}
		c := s.src[i]
		switch {
		case c == '"':
			s.pos = i + 1
			if len(buf) > MaxStringLength {
				return "", wrapf(ErrLimit, "string length %d exceeds %d", len(buf), MaxStringLength)
			}
			return string(buf), nil
		case c == '\\':
			i++
			if i >= len(s.src) {
				return "", wrapf(ErrSyntax, "unterminated escape at offset %d", i)
			}
			switch s.src[i] {
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			case '/':
				buf = append(buf, '/')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'u':
				if i+4 >= len(s.src) {
					return "", wrapf(ErrSyntax, "truncated \\u escape at offset %d", i)
				}
				for j := i + 1; j <= i+4; j++ {
					if _, ok := hexVal(s.src[j]); !ok {
						return "", wrapf(ErrSyntax, "invalid \\u escape at offset %d", i)
					}
				}
				// Copied through literally, not decoded: see doc comment.
				buf = append(buf, '\\', 'u')
				buf = append(buf, s.src[i+1:i+5]...)
				i += 4
			default:
				return "", wrapf(ErrSyntax, "invalid escape %q at offset %d", s.src[i], i)
			}
			i++
		case c < 0x20:
			return "", wrapf(ErrSyntax, "unescaped control byte at offset %d", i)
		default:
			buf = append(buf, c)
			i++
		}
		if len(buf) > MaxStringLength {
			return "", wrapf(ErrLimit, "string length %d exceeds %d", len(buf), MaxStringLength)
		}
	}
}

// scanNumber matches the strict JSON number grammar and returns a Number
// with the same integer/fraction split jsonk_value_create_number builds:
// integer magnitude saturates at the signed 64-bit boundary rather than
// wrapping, the fraction keeps at most 9 digits, and a decimal exponent is
// recognized syntactically but discarded numerically (no floating point in
// the target environment) — all per src/jsonk.c's number constructor.
func (s *scanner) scanNumber() (Number, error) {
	start := s.pos
	neg := false
	if s.peek() == '-' {
		neg = true
		s.pos++
	}
	if s.eof() || !isDigit(s.peek()) {
		return Number{}, wrapf(ErrSyntax, "invalid number at offset %d", start)
	}
	if s.peek() == '0' {
		s.pos++
	} else {
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
		}
	}
	// Saturate at the 64-bit signed magnitude boundary — S64_MAX (2^63-1)
	// for a positive literal, the magnitude of S64_MIN (2^63) for a
	// negative one — matching jsonk_value_create_number's S64_MAX clamp
	// (src/jsonk.c) rather than wrapping at the full uint64 range.
	maxMagnitude := uint64(1<<63 - 1)
	if neg {
		maxMagnitude = uint64(1 << 63)
	}
	var integer uint64
	saturated := false
	for _, c := range s.src[start:s.pos] {
		if c == '-' {
			continue
		}
		d := uint64(c - '0')
		if saturated || integer > (maxMagnitude-d)/10 {
			saturated = true
			integer = maxMagnitude
			continue
		}
		integer = integer*10 + d
	}
	// An overflowing integer literal saturates and is still a whole
	// number: isInteger stays true here regardless of magnitude.
	isInteger := true

	var fraction uint32
	var fractionDigits uint8
	if !s.eof() && s.peek() == '.' {
		isInteger = false
		s.pos++
		fracStart := s.pos
		if s.eof() || !isDigit(s.peek()) {
			return Number{}, wrapf(ErrSyntax, "invalid fraction at offset %d", s.pos)
		}
		for !s.eof() && isDigit(s.peek()) {
			if s.pos-fracStart < 9 {
				fraction = fraction*10 + uint32(s.src[s.pos]-'0')
				fractionDigits++
			}
			s.pos++
		}
	}

	if !s.eof() && (s.peek() == 'e' || s.peek() == 'E') {
		// A literal with an exponent is never is-integer, even when the
		// exponent is non-negative and the magnitude is whole (e.g.
		// "5e3") — per spec.md §4.3 it is distinguished from a plain
		// integer literal like "5000".
		isInteger = false
		s.pos++
		if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
			s.pos++
		}
		expStart := s.pos
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
		}
		if s.pos == expStart {
			return Number{}, wrapf(ErrSyntax, "invalid exponent at offset %d", expStart)
		}
		// Exponent is syntactically consumed, numerically discarded: see
		// doc comment.
	}

	return Number{Integer: integer, Fraction: fraction, FractionDigits: fractionDigits, Negative: neg, IsInteger: isInteger}, nil
}
