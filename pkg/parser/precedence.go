package parser

// assoc is the associativity of a binary operator.
type assoc int

const (
	assocLeft assoc = iota
	assocRight
	assocNone // non-associative: chaining at equal precedence is ambiguous
)

type opInfo struct {
	precedence int
	assoc      assoc
}

// binaryOps is the Pratt precedence table, keyed by operator token
// text, lowest precedence first. Ties at assocNone must be
// parenthesized by the author; chaining them without parens is a
// parse-failure.
//
// This table is a documented convention of this formatter, not a
// transcription of any single real-world grammar.
var binaryOps = map[string]opInfo{
	"=": {10, assocRight},
	"!": {10, assocRight},

	"orelse": {20, assocLeft},

	"andalso": {30, assocLeft},

	"==":  {40, assocNone},
	"/=":  {40, assocNone},
	"=<":  {40, assocNone},
	"<":   {40, assocNone},
	">=":  {40, assocNone},
	">":   {40, assocNone},
	"=:=": {40, assocNone},
	"=/=": {40, assocNone},

	"++": {50, assocRight},
	"--": {50, assocRight},

	"+":    {60, assocLeft},
	"-":    {60, assocLeft},
	"bor":  {60, assocLeft},
	"bxor": {60, assocLeft},
	"bsl":  {60, assocLeft},
	"bsr":  {60, assocLeft},
	"or":   {60, assocLeft},

	"*":    {70, assocLeft},
	"/":    {70, assocLeft},
	"div":  {70, assocLeft},
	"rem":  {70, assocLeft},
	"band": {70, assocLeft},
	"and":  {70, assocLeft},

	"::": {80, assocLeft}, // type annotation, binds tighter than value operators
}

// unaryOps are prefix operators, binding tighter than any binary
// operator above.
var unaryOps = map[string]bool{
	"+": true, "-": true, "bnot": true, "not": true,
}

const catchPrecedence = 5 // lower than '=' / '!'
