package canon

import (
	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/types"
)

// PatternResolutionKind/PatternResolution mirror internal/infer's
// disambiguation result (§4.4.3); canon depends only on this narrow
// shape rather than importing internal/infer wholesale, since the two
// packages sit on either side of one pipeline stage and shouldn't need
// each other's full APIs.
type PatternResolutionKind uint8

const (
	ResBinding PatternResolutionKind = iota
	ResUnitVariant
)

type PatternResolution struct {
	Kind         PatternResolutionKind
	TypeName     name.Name
	VariantIndex int
}

// Canonicalizer lowers one type-checked ExprArena into a CanArena
// (§4.7): it owns no registries of its own beyond read-only access to
// the ones inference already populated, since lowering never needs to
// resolve a new method or type — only to rewrite what inference has
// already fully resolved.
type Canonicalizer struct {
	Arena    *ir.Arena
	Pool     *types.Pool
	Interner *name.Interner
	Types    *registry.TypeRegistry

	ExprTypes map[ir.ExprId]types.Idx
	Patterns  map[ir.MatchPatternId]PatternResolution

	Can    *CanArena
	Consts *ConstValueTable

	// Sigs resolves a callee or method name to its declared parameter
	// list (§4.7's "callee signature" / "impl-method signatures") so
	// CallNamed/MethodCallNamed can be reordered and defaulted for
	// real rather than falling back to source order. Function names
	// and method names share this table since both are looked up by
	// plain name.Name; an overload of the same name across two
	// receiver types with different parameter orders is a known
	// limitation (see DESIGN.md) rather than something this table
	// disambiguates by receiver.
	Sigs map[name.Name]ir.ParamRange

	concatName name.Name
	mergeName  name.Name
	toStrName  name.Name
}

// New returns a Canonicalizer ready to lower expressions out of arena,
// using exprTypes/patterns as produced by a prior inference pass and
// sigs as the name -> parameter-list table built from the module's
// declarations (functions, tests, configs, trait/impl/extend methods).
func New(arena *ir.Arena, pool *types.Pool, interner *name.Interner, types_ *registry.TypeRegistry,
	exprTypes map[ir.ExprId]types.Idx, patterns map[ir.MatchPatternId]PatternResolution,
	sigs map[name.Name]ir.ParamRange) *Canonicalizer {
	return &Canonicalizer{
		Arena:      arena,
		Pool:       pool,
		Interner:   interner,
		Types:      types_,
		ExprTypes:  exprTypes,
		Patterns:   patterns,
		Can:        NewCanArena(),
		Consts:     NewConstValueTable(),
		Sigs:       sigs,
		concatName: interner.Intern("concat"),
		mergeName:  interner.Intern("merge"),
		toStrName:  interner.Intern("to_str"),
	}
}

func (c *Canonicalizer) typeOf(id ir.ExprId) types.Idx {
	if ty, ok := c.ExprTypes[id]; ok {
		return ty
	}
	return types.IdxError
}

func (c *Canonicalizer) alloc(e CanExpr, ty types.Idx) CanId {
	return c.Can.allocExpr(e, ty)
}

// Lower is the canonicalizer's single entry point (§4.7): children are
// always lowered before their parent decides whether to fold, so the
// whole pass is single bottom-up sweep with no fixpoint iteration.
func (c *Canonicalizer) Lower(id ir.ExprId) CanId {
	if !id.Valid() {
		return NoCan
	}
	expr := c.Arena.Expr(id)
	ty := c.typeOf(id)

	switch expr.Kind {
	case ir.ExprIntLit, ir.ExprFloatLit, ir.ExprBoolLit, ir.ExprStringLit,
		ir.ExprCharLit, ir.ExprDurationLit, ir.ExprSizeLit, ir.ExprUnitLit:
		return c.lowerLiteral(expr, ty)
	case ir.ExprNilLit:
		// None has no constant representation of its own; it lowers to
		// a plain identifier reference to a synthesized "None" name,
		// which the backend recognizes by its Option type.
		return c.alloc(CanExpr{Kind: CanIdent, Span: expr.Span, Name: c.Interner.Intern(config.NoneLiteralName)}, ty)

	case ir.ExprIdent, ir.ExprFuncRef, ir.ExprConfigRef, ir.ExprSelfRef:
		nm := expr.Name
		if expr.Kind == ir.ExprSelfRef {
			nm = c.Interner.Intern("self")
		}
		return c.alloc(CanExpr{Kind: CanIdent, Span: expr.Span, Name: nm}, ty)

	case ir.ExprUnary:
		return c.lowerUnary(id, expr, ty)
	case ir.ExprBinary:
		return c.lowerBinary(id, expr, ty)

	case ir.ExprIf:
		return c.lowerIf(expr, ty)
	case ir.ExprMatch:
		return c.lowerMatch(expr, ty)
	case ir.ExprBlock:
		return c.lowerBlock(expr, ty)
	case ir.ExprForIn:
		return c.lowerForIn(expr, ty)
	case ir.ExprLoop:
		return c.alloc(CanExpr{Kind: CanLoop, Span: expr.Span, A: uint32(c.Lower(ir.ExprId(expr.A)))}, ty)
	case ir.ExprBreak:
		value := NoCan
		if v := ir.ExprId(expr.A); v.Valid() {
			value = c.Lower(v)
		}
		return c.alloc(CanExpr{Kind: CanBreak, Span: expr.Span, A: uint32(value)}, ty)
	case ir.ExprContinue:
		return c.alloc(CanExpr{Kind: CanContinue, Span: expr.Span}, ty)
	case ir.ExprLet:
		return c.lowerLet(expr, ty)
	case ir.ExprAssign:
		target := c.Lower(ir.ExprId(expr.A))
		value := c.Lower(ir.ExprId(expr.B))
		return c.alloc(CanExpr{Kind: CanAssign, Span: expr.Span, A: uint32(target), B: uint32(value)}, ty)

	case ir.ExprCall:
		return c.lowerCall(expr, ty)
	case ir.ExprCallNamed:
		return c.lowerCallNamed(expr, ty)
	case ir.ExprMethodCall:
		return c.lowerMethodCall(expr, ty)
	case ir.ExprMethodCallNamed:
		return c.lowerMethodCallNamed(expr, ty)
	case ir.ExprField:
		receiver := c.Lower(ir.ExprId(expr.A))
		return c.alloc(CanExpr{Kind: CanField, Span: expr.Span, Name: expr.Name, A: uint32(receiver)}, ty)
	case ir.ExprIndex:
		receiver := c.Lower(ir.ExprId(expr.A))
		index := c.Lower(ir.ExprId(expr.B))
		return c.alloc(CanExpr{Kind: CanIndex, Span: expr.Span, A: uint32(receiver), B: uint32(index)}, ty)

	case ir.ExprRangeLit:
		lo := c.Lower(ir.ExprId(expr.A))
		hiId := ir.ExprId(expr.B)
		var callee name.Name
		var argIds []CanId
		switch {
		case !hiId.Valid():
			// `start..` — an unbounded range (§4.4.4 infinite iterator source).
			callee = c.Interner.Intern("RangeFrom")
			argIds = []CanId{lo}
		case expr.Op&1 != 0:
			callee = c.Interner.Intern("RangeInclusive")
			argIds = []CanId{lo, c.Lower(hiId)}
		default:
			callee = c.Interner.Intern("Range")
			argIds = []CanId{lo, c.Lower(hiId)}
		}
		calleeExpr := c.alloc(CanExpr{Kind: CanIdent, Span: expr.Span, Name: callee}, types.IdxError)
		args := c.Can.allocExprList(argIds)
		return c.alloc(CanExpr{Kind: CanCall, Span: expr.Span, A: uint32(calleeExpr), B: args.Start, Len: args.Len}, ty)

	case ir.ExprListLit:
		return c.lowerListLit(expr, ty)
	case ir.ExprSetLit:
		return c.lowerSetLit(expr, ty)
	case ir.ExprTupleLit:
		return c.lowerTupleLit(expr, ty)
	case ir.ExprMapLit:
		return c.lowerMapLit(expr, ty)
	case ir.ExprStructLit, ir.ExprStructSpread:
		return c.lowerStructLit(expr, ty)
	case ir.ExprListSpread:
		return c.lowerListSpread(expr, ty)
	case ir.ExprMapSpread:
		return c.lowerMapSpread(expr, ty)

	case ir.ExprTemplateLit:
		return c.lowerTemplateLit(expr, ty)
	case ir.ExprTemplateComplete:
		return c.internStr(expr.Name, expr.Span)

	case ir.ExprTry:
		// `?` is lowered to backend-recognized control flow by a later
		// stage; at this level it is represented as a Field access on a
		// synthesized accessor name so the canonical IR stays
		// primitive-only without needing its own node kind.
		operand := c.Lower(ir.ExprId(expr.A))
		return c.alloc(CanExpr{Kind: CanField, Span: expr.Span, Name: c.Interner.Intern("$try"), A: uint32(operand)}, ty)

	case ir.ExprLambda:
		return c.lowerLambda(expr, ty)

	default:
		return c.alloc(CanExpr{Kind: CanConstant, Span: expr.Span}, types.IdxError)
	}
}
