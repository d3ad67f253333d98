package search

import "regexp"

// Pattern is a compiled literal search. The literal is always matched
// verbatim; WholeWord adds word-boundary assertions on both sides.
type Pattern struct {
	Literal   string
	WholeWord bool
	re        *regexp.Regexp
}

// Compile turns a literal text fragment into a pattern.
// QuoteMeta escapes every metacharacter, so compilation cannot fail.
func Compile(literal string, wholeWord bool) *Pattern {
	expr := regexp.QuoteMeta(literal)
	if wholeWord {
		expr = `\b` + expr + `\b`
	}
	return &Pattern{
		Literal:   literal,
		WholeWord: wholeWord,
		re:        regexp.MustCompile(expr),
	}
}

// String returns the underlying expression
func (p *Pattern) String() string {
	return p.re.String()
}

// MatchString reports whether text contains the pattern
func (p *Pattern) MatchString(text string) bool {
	return p.re.MatchString(text)
}
