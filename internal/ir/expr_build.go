package ir

import "github.com/sigil-lang/ori/internal/span"

// This file collects constructor helpers for every ExprKind. Each
// function allocates any side-table payload it needs and returns a
// ready-to-store Expr value; callers still call Arena.AllocExpr
// themselves so construction and allocation stay separate operations
// (mirrors the teacher's `ast.New*` constructors, one per node kind).

func NewIntLit(a *Arena, v int64, sp span.Span) Expr {
	return Expr{Kind: ExprIntLit, Span: sp, A: a.addInt(v)}
}

func NewFloatLit(a *Arena, v float64, sp span.Span) Expr {
	return Expr{Kind: ExprFloatLit, Span: sp, A: a.addFloat(v)}
}

func NewBoolLit(v bool, sp span.Span) Expr {
	var a uint32
	if v {
		a = 1
	}
	return Expr{Kind: ExprBoolLit, Span: sp, A: a}
}

func NewStringLit(n ident, sp span.Span) Expr {
	return Expr{Kind: ExprStringLit, Span: sp, Name: n}
}

func NewCharLit(r rune, sp span.Span) Expr {
	return Expr{Kind: ExprCharLit, Span: sp, A: uint32(r)}
}

func NewDurationLit(a *Arena, v DurationLit, sp span.Span) Expr {
	return Expr{Kind: ExprDurationLit, Span: sp, A: a.addDuration(v)}
}

func NewSizeLit(a *Arena, v SizeLit, sp span.Span) Expr {
	return Expr{Kind: ExprSizeLit, Span: sp, A: a.addSize(v)}
}

func NewUnitLit(sp span.Span) Expr { return Expr{Kind: ExprUnitLit, Span: sp} }
func NewNilLit(sp span.Span) Expr  { return Expr{Kind: ExprNilLit, Span: sp} }

func NewIdent(n ident, sp span.Span) Expr {
	return Expr{Kind: ExprIdent, Span: sp, Name: n}
}

func NewFuncRef(n ident, sp span.Span) Expr {
	return Expr{Kind: ExprFuncRef, Span: sp, Name: n}
}

func NewConfigRef(n ident, sp span.Span) Expr {
	return Expr{Kind: ExprConfigRef, Span: sp, Name: n}
}

func NewSelfRef(sp span.Span) Expr { return Expr{Kind: ExprSelfRef, Span: sp} }

func NewUnary(op UnaryOp, operand ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprUnary, Span: sp, Op: uint16(op), A: uint32(operand)}
}

func NewBinary(op BinaryOp, left, right ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprBinary, Span: sp, Op: uint16(op), A: uint32(left), B: uint32(right)}
}

// NewIf builds an if/then/else. elseBranch may be NoExpr.
func NewIf(cond, then, elseBranch ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprIf, Span: sp, A: uint32(cond), B: uint32(then), C: uint32(elseBranch)}
}

// NewMatch builds a match expression over a pre-allocated arm range.
func NewMatch(scrutinee ExprId, arms ArmRange, sp span.Span) Expr {
	return Expr{Kind: ExprMatch, Span: sp, A: uint32(scrutinee), B: arms.Start, Len: arms.Len}
}

// NewBlock builds a block. result may be NoExpr (a block of pure
// statements has type Unit).
func NewBlock(stmts StmtRange, result ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprBlock, Span: sp, A: stmts.Start, Len: stmts.Len, B: uint32(result)}
}

// NewForIn builds a for-in loop. guard may be NoExpr.
func NewForIn(a *Arena, binder ident, iterable, guard, body ExprId, yield bool, sp span.Span) Expr {
	idx := a.addForIn(ForInData{Binder: binder, Iterable: iterable, Guard: guard, Body: body, Yield: yield})
	return Expr{Kind: ExprForIn, Span: sp, A: idx}
}

func NewLoop(body ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprLoop, Span: sp, A: uint32(body)}
}

// NewBreak builds a break, optionally carrying a value (NoExpr if bare).
func NewBreak(value ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprBreak, Span: sp, A: uint32(value)}
}

func NewContinue(sp span.Span) Expr { return Expr{Kind: ExprContinue, Span: sp} }

// NewLet builds a simple `let name = value` binding.
func NewLet(a *Arena, binder ident, annot ParsedTypeId, value ExprId, sp span.Span) Expr {
	idx := a.addLet(LetData{Binder: binder, Pattern: NoPattern, Annotation: annot, Value: value})
	return Expr{Kind: ExprLet, Span: sp, A: idx}
}

// NewLetPattern builds a destructuring `let (a, b) = value` binding.
func NewLetPattern(a *Arena, pattern MatchPatternId, annot ParsedTypeId, value ExprId, sp span.Span) Expr {
	idx := a.addLet(LetData{Pattern: pattern, Annotation: annot, Value: value})
	return Expr{Kind: ExprLet, Span: sp, A: idx}
}

func NewAssign(target, value ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprAssign, Span: sp, A: uint32(target), B: uint32(value)}
}

// NewCall builds a positional call: callee applied to args (an
// ExprRange allocated by the caller via Arena.AllocExprList).
func NewCall(callee ExprId, args ExprRange, sp span.Span) Expr {
	return Expr{Kind: ExprCall, Span: sp, A: uint32(callee), B: args.Start, Len: args.Len}
}

// NewCallNamed builds a call whose arguments may carry names (a
// CallArgRange allocated by the caller).
func NewCallNamed(callee ExprId, args CallArgRange, sp span.Span) Expr {
	return Expr{Kind: ExprCallNamed, Span: sp, A: uint32(callee), B: args.Start, Len: args.Len}
}

func NewMethodCall(receiver ExprId, method ident, args ExprRange, sp span.Span) Expr {
	return Expr{Kind: ExprMethodCall, Span: sp, Name: method, A: uint32(receiver), B: args.Start, Len: args.Len}
}

func NewMethodCallNamed(receiver ExprId, method ident, args CallArgRange, sp span.Span) Expr {
	return Expr{Kind: ExprMethodCallNamed, Span: sp, Name: method, A: uint32(receiver), B: args.Start, Len: args.Len}
}

func NewField(receiver ExprId, field ident, sp span.Span) Expr {
	return Expr{Kind: ExprField, Span: sp, Name: field, A: uint32(receiver)}
}

func NewIndex(receiver, index ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprIndex, Span: sp, A: uint32(receiver), B: uint32(index)}
}

// NewRangeLit builds `lo..hi` or `lo..=hi` (Op bit 0 set means inclusive).
func NewRangeLit(lo, hi ExprId, inclusive bool, sp span.Span) Expr {
	var op uint16
	if inclusive {
		op = 1
	}
	return Expr{Kind: ExprRangeLit, Span: sp, A: uint32(lo), B: uint32(hi), Op: op}
}

func NewListLit(elems ExprRange, sp span.Span) Expr {
	return Expr{Kind: ExprListLit, Span: sp, A: elems.Start, Len: elems.Len}
}

func NewSetLit(elems ExprRange, sp span.Span) Expr {
	return Expr{Kind: ExprSetLit, Span: sp, A: elems.Start, Len: elems.Len}
}

func NewTupleLit(elems ExprRange, sp span.Span) Expr {
	return Expr{Kind: ExprTupleLit, Span: sp, A: elems.Start, Len: elems.Len}
}

func NewMapLit(entries MapEntryRange, sp span.Span) Expr {
	return Expr{Kind: ExprMapLit, Span: sp, A: entries.Start, Len: entries.Len}
}

// NewStructLit builds a struct literal; typeName is the struct's
// declared name and fields is a FieldInitRange possibly containing
// spread entries (§4.7 StructWithSpread).
func NewStructLit(typeName ident, fields FieldInitRange, sp span.Span) Expr {
	return Expr{Kind: ExprStructLit, Span: sp, Name: typeName, A: fields.Start, Len: fields.Len}
}

// NewListSpread builds `[a, b, ...c, d]` from a CallArgRange whose
// entries reuse CallArg's {Value, IsSpread} shape with Name always empty.
func NewListSpread(items CallArgRange, sp span.Span) Expr {
	return Expr{Kind: ExprListSpread, Span: sp, A: items.Start, Len: items.Len}
}

// NewMapSpread builds `%{...a, "k" => v}` from a MapEntryRange whose
// spread entries use MapEntry.IsSpread().
func NewMapSpread(entries MapEntryRange, sp span.Span) Expr {
	return Expr{Kind: ExprMapSpread, Span: sp, A: entries.Start, Len: entries.Len}
}

// NewStructSpread is syntactically identical to NewStructLit — the
// presence of a spread is determined by walking the FieldInitRange — so
// it is kept as a distinct Kind purely to let earlier passes recognize
// "this literal definitely contains a spread" without re-scanning fields.
func NewStructSpread(typeName ident, fields FieldInitRange, sp span.Span) Expr {
	return Expr{Kind: ExprStructSpread, Span: sp, Name: typeName, A: fields.Start, Len: fields.Len}
}

// NewTemplateLit builds an interpolated string from alternating text and
// expression parts (all stored as an ExprRange; text chunks are
// themselves ExprStringLit nodes).
func NewTemplateLit(parts ExprRange, sp span.Span) Expr {
	return Expr{Kind: ExprTemplateLit, Span: sp, A: parts.Start, Len: parts.Len}
}

// NewTemplateComplete builds a template literal with no interpolated
// parts at all — already a single constant string.
func NewTemplateComplete(text ident, sp span.Span) Expr {
	return Expr{Kind: ExprTemplateComplete, Span: sp, Name: text}
}

func NewTry(operand ExprId, sp span.Span) Expr {
	return Expr{Kind: ExprTry, Span: sp, A: uint32(operand)}
}

// NewLambda builds an anonymous function.
func NewLambda(a *Arena, params ParamRange, body ExprId, ret ParsedTypeId, sp span.Span) Expr {
	idx := a.addLambda(LambdaData{Params: params, Body: body, ReturnAnnot: ret})
	return Expr{Kind: ExprLambda, Span: sp, A: idx}
}
