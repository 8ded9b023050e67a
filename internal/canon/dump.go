package canon

import (
	"bytes"
	"fmt"

	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// Dump renders the subtree rooted at id as an indented S-expression
// tree, one node per line with its resolved type annotated. It exists
// for debugging and golden-snapshot tests; nothing in the lowering
// pass itself depends on it.
func Dump(arena *CanArena, consts *ConstValueTable, pool *types.Pool, in *name.Interner, id CanId) string {
	var buf bytes.Buffer
	d := &dumper{arena: arena, consts: consts, pool: pool, in: in, buf: &buf}
	d.node(id, 0)
	return buf.String()
}

type dumper struct {
	arena  *CanArena
	consts *ConstValueTable
	pool   *types.Pool
	in     *name.Interner
	buf    *bytes.Buffer
}

func (d *dumper) indent(depth int) {
	for i := 0; i < depth; i++ {
		d.buf.WriteString("  ")
	}
}

func (d *dumper) node(id CanId, depth int) {
	d.indent(depth)
	if !id.Valid() {
		d.buf.WriteString("<none>\n")
		return
	}
	e := d.arena.Expr(id)
	ty := types.Render(d.pool, d.in, d.arena.TypeOf(id))

	switch e.Kind {
	case CanConstant:
		fmt.Fprintf(d.buf, "Constant(%s) : %s\n", d.constStr(ConstId(e.A)), ty)

	case CanIdent:
		fmt.Fprintf(d.buf, "Ident(%s) : %s\n", d.in.Lookup(e.Name), ty)

	case CanUnary:
		fmt.Fprintf(d.buf, "Unary(%s) : %s\n", unaryOpName(e.Op), ty)
		d.node(CanId(e.A), depth+1)

	case CanBinary:
		fmt.Fprintf(d.buf, "Binary(%s) : %s\n", binaryOpName(e.Op), ty)
		d.node(CanId(e.A), depth+1)
		d.node(CanId(e.B), depth+1)

	case CanIf:
		fmt.Fprintf(d.buf, "If : %s\n", ty)
		d.node(CanId(e.A), depth+1)
		d.node(CanId(e.B), depth+1)
		d.node(CanId(e.C), depth+1)

	case CanMatch:
		fmt.Fprintf(d.buf, "Match : %s\n", ty)
		d.node(CanId(e.A), depth+1)
		for _, arm := range d.arena.ArmsOf(CanArmRange{Start: e.B, Len: e.Len}) {
			d.indent(depth + 1)
			fmt.Fprintf(d.buf, "Arm(%s)\n", d.patStr(arm.Pattern))
			d.node(arm.Body, depth+2)
		}

	case CanBlock:
		fmt.Fprintf(d.buf, "Block : %s\n", ty)
		for _, s := range d.arena.StmtsOf(CanStmtRange{Start: e.A, Len: e.Len}) {
			d.node(s.Expr, depth+1)
		}
		d.node(CanId(e.B), depth+1)

	case CanLet:
		data := d.arena.Let(e.A)
		fmt.Fprintf(d.buf, "Let(%s) : %s\n", d.in.Lookup(data.Binder), ty)
		d.node(data.Value, depth+1)

	case CanCall:
		fmt.Fprintf(d.buf, "Call : %s\n", ty)
		d.node(CanId(e.A), depth+1)
		for _, a := range d.arena.ExprListOf(CanRange{Start: e.B, Len: e.Len}) {
			d.node(a, depth+1)
		}

	case CanMethodCall:
		args := d.arena.ExprListOf(CanRange{Start: e.A, Len: e.Len})
		fmt.Fprintf(d.buf, "MethodCall(%s) : %s\n", d.in.Lookup(e.Name), ty)
		for _, a := range args {
			d.node(a, depth+1)
		}

	case CanStructLit:
		fmt.Fprintf(d.buf, "Struct(%s) : %s\n", d.in.Lookup(e.Name), ty)
		for _, f := range d.arena.FieldInitsOf(CanFieldInitRange{Start: e.A, Len: e.Len}) {
			d.indent(depth + 1)
			fmt.Fprintf(d.buf, "%s:\n", d.in.Lookup(f.Name))
			d.node(f.Value, depth+2)
		}

	case CanField:
		fmt.Fprintf(d.buf, "Field(%s) : %s\n", d.in.Lookup(e.Name), ty)
		d.node(CanId(e.A), depth+1)

	default:
		fmt.Fprintf(d.buf, "%s : %s\n", kindName(e.Kind), ty)
	}
}

func (d *dumper) constStr(id ConstId) string {
	v := d.consts.Value(id)
	switch v.Kind {
	case ConstInt:
		return fmt.Sprintf("Int(%d)", v.Int)
	case ConstBool:
		return fmt.Sprintf("Bool(%t)", v.Bool)
	case ConstStr:
		return fmt.Sprintf("Str(%q)", d.in.Lookup(v.Str))
	case ConstChar:
		return fmt.Sprintf("Char(%q)", v.Char)
	case ConstUnit:
		return "Unit"
	default:
		return "Const"
	}
}

func (d *dumper) patStr(id CanPatId) string {
	p := d.arena.Pat(id)
	switch p.Kind {
	case CanPatWildcard:
		return "_"
	case CanPatBinding:
		return d.in.Lookup(p.Name)
	case CanPatTag:
		return fmt.Sprintf("Tag(%s)", d.in.Lookup(p.Name))
	case CanPatLiteral:
		return d.constStr(p.Const)
	default:
		return "pat"
	}
}

func kindName(k CanExprKind) string {
	switch k {
	case CanLoop:
		return "Loop"
	case CanBreak:
		return "Break"
	case CanContinue:
		return "Continue"
	case CanAssign:
		return "Assign"
	case CanIndex:
		return "Index"
	case CanListLit:
		return "ListLit"
	case CanSetLit:
		return "SetLit"
	case CanMapLit:
		return "MapLit"
	case CanTupleLit:
		return "TupleLit"
	case CanLambda:
		return "Lambda"
	case CanForIn:
		return "ForIn"
	default:
		return "Expr"
	}
}

func unaryOpName(op uint16) string {
	names := [...]string{"Neg", "Not", "BitNot"}
	if int(op) < len(names) {
		return names[op]
	}
	return "Unary"
}

func binaryOpName(op uint16) string {
	names := [...]string{
		"Add", "Sub", "Mul", "Div", "Mod",
		"BitAnd", "BitOr", "BitXor", "Shl", "Shr",
		"Eq", "Ne", "Lt", "Le", "Gt", "Ge",
		"And", "Or", "Spaceship",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "Binary"
}
