package lox

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// lexFn is a lexer state function. Each lexFn lexes a token, sends it on the
// supplied channel, and returns the next lexFn to use.
type lexFn func(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int)

// Scan converts source text into a sequence of tokens. The final token is
// always an EOF token carrying the last line of the source. If the source
// contains a lexical error, Scan returns a *LexError and no tokens.
func Scan(src io.Reader) ([]Token, error) {
	tokens := make(chan Token)
	go lex(bufio.NewReader(src), tokens)
	var r []Token
	var err error
	for tok := range tokens {
		if tok.Kind == badToken {
			err = tok.err
			continue
		}
		r = append(r, tok)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// lex converts a source into a stream of tokens.
func lex(src *bufio.Reader, tokens chan<- Token) {
	state := eatSpace
	line, col := 1, 1
	for state != nil {
		state, line, col = state(src, tokens, line, col)
	}
	close(tokens)
}

// accept appends the next run of characters in src which satisfy the predicate
// to b. Returns b after appending, the first rune which did not satisfy the
// predicate, and any error that occurred. If there was no such error, the
// last rune is unread.
func accept(src *bufio.Reader, predicate func(rune) bool, b []byte) ([]byte, rune, error) {
	r, _, err := src.ReadRune()
	for {
		if err != nil {
			return b, r, err
		}
		if !predicate(r) {
			break
		}
		b = append(b, string(r)...)
		r, _, err = src.ReadRune()
	}
	src.UnreadRune()
	return b, r, nil
}

// lexsend is a shortcut for sending a token with error checking. It returns
// eatSpace as the default lexing function.
func lexsend(err error, tokens chan<- Token, good Token) lexFn {
	if err != nil && err != io.EOF {
		tokens <- Token{Kind: badToken, Lexeme: good.Lexeme, err: err, Line: good.Line, Col: good.Col}
		return nil
	}
	tokens <- good
	return eatSpace
}

// lexfail sends a bad token for a lexical error and stops lexing.
func lexfail(tokens chan<- Token, kind LexErrorKind, text string, line, col int) lexFn {
	tokens <- Token{
		Kind:   badToken,
		Lexeme: text,
		err:    &LexError{Kind: kind, Text: text, Line: line, Col: col},
		Line:   line,
		Col:    col,
	}
	return nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlpha(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// eatSpace consumes space and decides the next lexFn to use.
func eatSpace(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	for {
		eaten, r, err := accept(src, func(r rune) bool { return strings.ContainsRune(" \r\f\t\v", r) }, nil)
		col += len(eaten)
		if err != nil {
			if err != io.EOF {
				return lexsend(err, tokens, Token{Line: line, Col: col}), line, col
			}
			tokens <- Token{Kind: eofToken, Line: line, Col: col}
			return nil, line, col
		}
		if r != '\n' {
			break
		}
		src.ReadRune()
		line++
		col = 1
	}
	r, _, _ := src.ReadRune()
	src.UnreadRune()
	switch {
	case isAlpha(r):
		return lexIdent, line, col
	case isDigit(r):
		return lexNumber, line, col
	case r == '"', r == '\'':
		return lexString, line, col
	case r == '/':
		peek, _ := src.Peek(2)
		if len(peek) > 1 {
			switch peek[1] {
			case '/':
				return lexLineComment, line, col
			case '*':
				return lexBlockComment, line, col
			}
		}
		return lexOp, line, col
	case strings.ContainsRune("+-*%!=<>", r):
		return lexOp, line, col
	}
	if kind, ok := punctuation[r]; ok {
		src.ReadRune()
		tokens <- Token{Kind: kind, Lexeme: string(r), Line: line, Col: col}
		return eatSpace, line, col + 1
	}
	return lexfail(tokens, InvalidCharacter, string(r), line, col), line, col
}

// lexIdent lexes an identifier or keyword, which consists of a-z, A-Z, 0-9,
// and _, not starting with a digit.
func lexIdent(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return isAlpha(r) || isDigit(r) }, nil)
	ncol := col + len(b)
	kind, ok := keywords[string(b)]
	if !ok {
		kind = identifierToken
	}
	return lexsend(err, tokens, Token{Kind: kind, Lexeme: string(b), Line: line, Col: col}), line, ncol
}

// lexOp lexes an operator. Every operator is one character, optionally
// followed by '='.
func lexOp(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	r, _, _ := src.ReadRune()
	b := []byte{byte(r)}
	if peek, _ := src.Peek(1); len(peek) == 1 && peek[0] == '=' {
		src.ReadRune()
		b = append(b, '=')
	}
	tok := Token{Kind: operators[string(b)], Lexeme: string(b), Line: line, Col: col}
	return lexsend(nil, tokens, tok), line, col + len(b)
}

// lexLineComment skips a // comment. Comments do not produce tokens.
func lexLineComment(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return r != '\n' }, nil)
	if err != nil && err != io.EOF {
		return lexsend(err, tokens, Token{Line: line, Col: col}), line, col
	}
	return eatSpace, line, col + len(b)
}

// lexBlockComment skips a /* */ comment, which may nest.
func lexBlockComment(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	var pr rune
	depth := 0
	nline := line
	ncol := col
	closed := false
	pred := func(r rune) bool {
		ncol++
		if pr == '*' && r == '/' {
			depth--
			pr = 0
			if depth <= 0 {
				closed = true
				return false
			}
			return true
		} else if pr == '/' && r == '*' {
			depth++
			pr = 0
			return true
		} else if r == '\n' {
			nline++
			ncol = 1
		}
		pr = r
		return true
	}
	b, _, err := accept(src, pred, nil)
	if !closed {
		if err == nil || err == io.EOF {
			return lexfail(tokens, UnterminatedComment, string(b), line, col), nline, ncol
		}
		return lexsend(err, tokens, Token{Line: line, Col: col}), nline, ncol
	}
	src.ReadRune() // Re-read the / that accept unreads.
	return eatSpace, nline, ncol
}

// lexNumber lexes a number, which is a run of digits optionally followed by a
// fractional part. A trailing '.' without digits is not part of the number.
func lexNumber(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	b, r, err := accept(src, isDigit, nil)
	if err == nil && r == '.' {
		if peek, _ := src.Peek(2); len(peek) == 2 && isDigit(rune(peek[1])) {
			src.ReadRune()
			b = append(b, '.')
			b, _, err = accept(src, isDigit, b)
		}
	}
	// The lexeme is only digits and at most one dot, so parsing cannot fail
	// except by range, in which case ParseFloat gives ±Inf as Lox wants.
	f, _ := strconv.ParseFloat(string(b), 64)
	tok := Token{Kind: numberToken, Lexeme: string(b), Literal: f, Line: line, Col: col}
	return lexsend(err, tokens, tok), line, col + len(b)
}

// lexString lexes a string delimited by either single or double quotes.
// Strings may span lines. The escapes \n, \t, \r, \\, \' and \" are decoded;
// any other backslash is kept literally.
func lexString(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	q, _, _ := src.ReadRune()
	raw := []byte{byte(q)}
	var val strings.Builder
	nline, ncol := line, col+1
	escaped := false
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err == io.EOF {
				return lexfail(tokens, UnterminatedString, string(raw), line, col), nline, ncol
			}
			return lexsend(err, tokens, Token{Lexeme: string(raw), Line: line, Col: col}), nline, ncol
		}
		if r >= 0x80 {
			return lexfail(tokens, InvalidCharacter, string(r), nline, ncol), nline, ncol
		}
		raw = append(raw, byte(r))
		ncol++
		if r == '\n' {
			nline++
			ncol = 1
		}
		if escaped {
			escaped = false
			switch r {
			case 'n':
				val.WriteByte('\n')
			case 't':
				val.WriteByte('\t')
			case 'r':
				val.WriteByte('\r')
			case '\\', '\'', '"':
				val.WriteRune(r)
			default:
				val.WriteByte('\\')
				val.WriteRune(r)
			}
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case q:
			tok := Token{Kind: stringToken, Lexeme: string(raw), Literal: val.String(), Line: line, Col: col}
			return lexsend(nil, tokens, tok), nline, ncol
		default:
			val.WriteRune(r)
		}
	}
}
