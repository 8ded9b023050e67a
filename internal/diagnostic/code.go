package diagnostic

// Code is a stable diagnostic identifier. Once assigned, a code is
// never reused for a different meaning (§6.3) — ranges are a
// compatibility promise, not an implementation detail.
type Code string

// Lexical / syntactic errors (E1xxx), produced by the parser
// collaborator and passed through the diagnostic stream unchanged.
const (
	E1001UnterminatedLiteral Code = "E1001"
	E1002UnclosedDelimiter   Code = "E1002"
	E1003InvalidNumber       Code = "E1003"
	E1004UnexpectedToken     Code = "E1004"
	E1005InvalidEscape       Code = "E1005"
)

// Type errors (E2xxx).
const (
	E2001TypeMismatch          Code = "E2001"
	E2002ArityMismatch         Code = "E2002"
	E2003UnknownType           Code = "E2003"
	E2004UnknownField          Code = "E2004"
	E2005UnknownMethod         Code = "E2005"
	E2006NotCallable           Code = "E2006"
	E2007NotIndexable          Code = "E2007"
	E2008NotIterable           Code = "E2008"
	E2009InfiniteType          Code = "E2009"
	E2010CannotInfer           Code = "E2010"
	E2011UnresolvedProjection  Code = "E2011"
	E2012PatternTypeMismatch   Code = "E2012"
	E2013UnsatisfiedBound      Code = "E2013"
	E2014MissingCapability     Code = "E2014"
	E2015AmbiguousMethod       Code = "E2015"
	E2016DuplicateNamedArg     Code = "E2016"
	E2017UnknownNamedArg       Code = "E2017"
	E2018InvalidTryOperand     Code = "E2018"
	E2019DoubleEndedOnly       Code = "E2019"
	E2020FloatRangeNotIterable Code = "E2020"
)

// Semantic / analysis errors (E3xxx). E3006 is an error-range code that
// defaults to Warning severity — a redundant pattern never blocks a
// match from compiling, unlike the rest of this range.
const (
	E3001NonExhaustiveMatch  Code = "E3001"
	E3002BreakOutsideLoop    Code = "E3002"
	E3003ContinueOutsideLoop Code = "E3003"
	E3004SelfOutsideMethod   Code = "E3004"
	E3005ReturnOutsideFunc   Code = "E3005"
	E3006RedundantPattern    Code = "E3006"
)

// Warnings (W2xxx).
const (
	W2001UnusedVariable       Code = "W2001"
	W2002UnusedFunction       Code = "W2002"
	W2003UnreachableCode      Code = "W2003"
	W2004InfiniteIteratorUsed Code = "W2004"
)

// DefaultSeverity returns the severity a code carries absent an
// explicit override (warnings are always Warning; E3006 is an error
// code with warning severity; everything else in the error ranges
// defaults to Error).
func (c Code) DefaultSeverity() Severity {
	if c == E3006RedundantPattern {
		return Warning
	}
	if len(c) > 0 && c[0] == 'W' {
		return Warning
	}
	return Error
}
