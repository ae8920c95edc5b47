package lox

import "fmt"

// A Token is a single lexical element. Tokens are immutable once the scanner
// produces them.
type Token struct {
	Kind   TokenKind
	Lexeme string
	// Literal holds the decoded value of number (float64) and string (string)
	// literals. It is nil for every other kind.
	Literal interface{}

	Line, Col int

	// err is set on bad tokens.
	err error
}

// TokenKind classifies a Token.
type TokenKind int

const (
	badToken TokenKind = iota

	// Punctuation.
	leftParenToken    // (
	rightParenToken   // )
	leftBraceToken    // {
	rightBraceToken   // }
	leftBracketToken  // [
	rightBracketToken // ]
	commaToken        // ,
	dotToken          // .
	semicolonToken    // ;
	colonToken        // :

	// Operators.
	minusToken        // -
	plusToken         // +
	slashToken        // /
	starToken         // *
	percentToken      // %
	minusEqualToken   // -=
	plusEqualToken    // +=
	slashEqualToken   // /=
	starEqualToken    // *=
	percentEqualToken // %=
	bangToken         // !
	bangEqualToken    // !=
	equalToken        // =
	equalEqualToken   // ==
	greaterToken      // >
	greaterEqualToken // >=
	lessToken         // <
	lessEqualToken    // <=

	// Literals.
	identifierToken
	stringToken // 'single' or "double" quoted
	numberToken

	// Keywords.
	andToken
	breakToken
	classToken
	constToken
	continueToken
	elseToken
	falseToken
	forToken
	funToken
	ifToken
	nilToken
	orToken
	printToken
	printlnToken
	returnToken
	superToken
	thisToken
	trueToken
	varToken
	whileToken

	eofToken
)

var tokenNames = [...]string{
	badToken:          "bad token",
	leftParenToken:    "'('",
	rightParenToken:   "')'",
	leftBraceToken:    "'{'",
	rightBraceToken:   "'}'",
	leftBracketToken:  "'['",
	rightBracketToken: "']'",
	commaToken:        "','",
	dotToken:          "'.'",
	semicolonToken:    "';'",
	colonToken:        "':'",
	minusToken:        "'-'",
	plusToken:         "'+'",
	slashToken:        "'/'",
	starToken:         "'*'",
	percentToken:      "'%'",
	minusEqualToken:   "'-='",
	plusEqualToken:    "'+='",
	slashEqualToken:   "'/='",
	starEqualToken:    "'*='",
	percentEqualToken: "'%='",
	bangToken:         "'!'",
	bangEqualToken:    "'!='",
	equalToken:        "'='",
	equalEqualToken:   "'=='",
	greaterToken:      "'>'",
	greaterEqualToken: "'>='",
	lessToken:         "'<'",
	lessEqualToken:    "'<='",
	identifierToken:   "identifier",
	stringToken:       "string",
	numberToken:       "number",
	andToken:          "'and'",
	breakToken:        "'break'",
	classToken:        "'class'",
	constToken:        "'const'",
	continueToken:     "'continue'",
	elseToken:         "'else'",
	falseToken:        "'false'",
	forToken:          "'for'",
	funToken:          "'fun'",
	ifToken:           "'if'",
	nilToken:          "'nil'",
	orToken:           "'or'",
	printToken:        "'print'",
	printlnToken:      "'println'",
	returnToken:       "'return'",
	superToken:        "'super'",
	thisToken:         "'this'",
	trueToken:         "'true'",
	varToken:          "'var'",
	whileToken:        "'while'",
	eofToken:          "end of input",
}

// String returns a human-readable name of the token kind, suitable for error
// messages.
func (k TokenKind) String() string {
	if k < badToken || k > eofToken {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenNames[k]
}

var keywords = map[string]TokenKind{
	"and":      andToken,
	"break":    breakToken,
	"class":    classToken,
	"const":    constToken,
	"continue": continueToken,
	"else":     elseToken,
	"false":    falseToken,
	"for":      forToken,
	"fun":      funToken,
	"if":       ifToken,
	"nil":      nilToken,
	"or":       orToken,
	"print":    printToken,
	"println":  printlnToken,
	"return":   returnToken,
	"super":    superToken,
	"this":     thisToken,
	"true":     trueToken,
	"var":      varToken,
	"while":    whileToken,
}

// operators maps each operator spelling to its kind. Two-character operators
// are only ever a one-character operator followed by '='.
var operators = map[string]TokenKind{
	"-":  minusToken,
	"+":  plusToken,
	"/":  slashToken,
	"*":  starToken,
	"%":  percentToken,
	"-=": minusEqualToken,
	"+=": plusEqualToken,
	"/=": slashEqualToken,
	"*=": starEqualToken,
	"%=": percentEqualToken,
	"!":  bangToken,
	"!=": bangEqualToken,
	"=":  equalToken,
	"==": equalEqualToken,
	">":  greaterToken,
	">=": greaterEqualToken,
	"<":  lessToken,
	"<=": lessEqualToken,
}

var punctuation = map[rune]TokenKind{
	'(': leftParenToken,
	')': rightParenToken,
	'{': leftBraceToken,
	'}': rightBraceToken,
	'[': leftBracketToken,
	']': rightBracketToken,
	',': commaToken,
	'.': dotToken,
	';': semicolonToken,
	':': colonToken,
}
