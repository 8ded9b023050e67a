package canon

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// lowerLambda lowers an anonymous function literal; its parameter
// names carry no type annotations of their own at this level since
// every parameter's resolved type already lives on the binding sites
// inference recorded inside the body.
func (c *Canonicalizer) lowerLambda(expr ir.Expr, ty types.Idx) CanId {
	data := c.Arena.Lambda(expr.A)
	params := c.Arena.ParamsOf(data.Params)
	canParams := make([]CanParam, len(params))
	for i, p := range params {
		canParams[i] = CanParam{Name: p.Name}
	}
	paramRange := c.Can.allocParams(canParams)
	body := c.Lower(data.Body)
	idx := c.Can.addLambda(CanLambdaData{Params: paramRange, Body: body})
	return c.alloc(CanExpr{Kind: CanLambda, Span: expr.Span, A: idx}, ty)
}
