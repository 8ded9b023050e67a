package infer

import "fmt"

// OriginKind names why a type was expected at a given point, so a
// mismatch diagnostic can explain the expectation rather than just
// stating it (§4.4: "An ExpectedOrigin carrying the reason for the
// expected type ... is attached to every expectation").
type OriginKind uint8

const (
	OriginNone OriginKind = iota
	OriginArgument
	OriginNamedArgument
	OriginIfElse
	OriginSequenceElement
	OriginReturnType
	OriginFieldType
	OriginAnnotation
	OriginBreakValue
	OriginMatchArm
	OriginGuard
	OriginCondition
	OriginBinaryOperand
	OriginTryOperand
)

// ExpectedOrigin carries the reason an expectation was formed, so
// CheckType can attach it to a diagnostic as a secondary label/note.
type ExpectedOrigin struct {
	Kind  OriginKind
	Index int    // argument/element position, 0-based, when relevant
	Name  string // parameter/field name, when relevant
}

func (o ExpectedOrigin) describe() string {
	switch o.Kind {
	case OriginArgument:
		return fmt.Sprintf("expected because of argument %d's declared type", o.Index+1)
	case OriginNamedArgument:
		return fmt.Sprintf("expected because parameter %q is declared with this type", o.Name)
	case OriginIfElse:
		return "expected to match the other branch's type"
	case OriginSequenceElement:
		return "expected to match the previous element's type"
	case OriginReturnType:
		return "expected because of the function's declared return type"
	case OriginFieldType:
		return fmt.Sprintf("expected because field %q is declared with this type", o.Name)
	case OriginAnnotation:
		return "expected because of this type annotation"
	case OriginBreakValue:
		return "expected to match the loop's other break values"
	case OriginMatchArm:
		return "expected to match the first arm's type"
	case OriginGuard:
		return "guard expressions must be Bool"
	case OriginCondition:
		return "conditions must be Bool"
	case OriginBinaryOperand:
		return "expected by this operator"
	case OriginTryOperand:
		return "`?` requires an Option or Result operand"
	default:
		return ""
	}
}
