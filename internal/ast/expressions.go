package ast

// ConstKind discriminates constant literal values.
type ConstKind int

const (
	ConstNone ConstKind = iota
	ConstBool
	ConstString
	ConstBytes
	ConstInt
	ConstFloat
	ConstComplex
	ConstEllipsis
)

func (k ConstKind) String() string {
	switch k {
	case ConstNone:
		return "None"
	case ConstBool:
		return "bool"
	case ConstString:
		return "str"
	case ConstBytes:
		return "bytes"
	case ConstInt:
		return "int"
	case ConstFloat:
		return "float"
	case ConstComplex:
		return "complex"
	case ConstEllipsis:
		return "Ellipsis"
	}
	return "unknown"
}

// Name is a simple identifier.
type Name struct {
	Span  Span
	Value string
}

func (e *Name) expressionNode() {}
func (e *Name) GetSpan() Span   { return e.Span }
func (e *Name) Kind() string    { return "Name" }

// Attribute is a dotted access, e.g. typing.List.
type Attribute struct {
	Span  Span
	Value Expression
	Attr  string
}

func (e *Attribute) expressionNode() {}
func (e *Attribute) GetSpan() Span   { return e.Span }
func (e *Attribute) Kind() string    { return "Attribute" }

// Constant is a literal value. Exactly one of the payload fields is
// meaningful, selected by ConstKind.
type Constant struct {
	Span      Span
	ConstKind ConstKind
	Bool      bool
	Str       string
	Int       int64
	Float     float64
}

func (e *Constant) expressionNode() {}
func (e *Constant) GetSpan() Span   { return e.Span }
func (e *Constant) Kind() string    { return "Constant" }

// Subscript is a generic application, e.g. List[str]. Index is a Tuple
// when the brackets hold more than one element.
type Subscript struct {
	Span  Span
	Value Expression
	Index Expression
}

func (e *Subscript) expressionNode() {}
func (e *Subscript) GetSpan() Span   { return e.Span }
func (e *Subscript) Kind() string    { return "Subscript" }

// Tuple is a comma-separated element list inside a subscript or on the
// left of an assignment.
type Tuple struct {
	Span  Span
	Elems []Expression
}

func (e *Tuple) expressionNode() {}
func (e *Tuple) GetSpan() Span   { return e.Span }
func (e *Tuple) Kind() string    { return "Tuple" }

// Call is a function application. Arguments are not retained: a call is
// never a valid annotation, the node exists so diagnostics can name it.
type Call struct {
	Span Span
	Func Expression
}

func (e *Call) expressionNode() {}
func (e *Call) GetSpan() Span   { return e.Span }
func (e *Call) Kind() string    { return "Call" }

// UnaryOp is a prefix operator application, e.g. -1.
type UnaryOp struct {
	Span    Span
	Op      string
	Operand Expression
}

func (e *UnaryOp) expressionNode() {}
func (e *UnaryOp) GetSpan() Span   { return e.Span }
func (e *UnaryOp) Kind() string    { return "UnaryOp" }

// BinOp is an infix operator application, e.g. int | None.
type BinOp struct {
	Span  Span
	Left  Expression
	Op    string
	Right Expression
}

func (e *BinOp) expressionNode() {}
func (e *BinOp) GetSpan() Span   { return e.Span }
func (e *BinOp) Kind() string    { return "BinOp" }

// Opaque stands in for an expression shape the parser does not model
// (comprehensions, lambdas, f-strings, ...). Consumers treat it like any
// other unsupported annotation node.
type Opaque struct {
	Span Span
	What string // token sketch for diagnostics, e.g. "lambda"
}

func (e *Opaque) expressionNode() {}
func (e *Opaque) GetSpan() Span   { return e.Span }
func (e *Opaque) Kind() string {
	if e.What != "" {
		return e.What
	}
	return "Expression"
}

// DottedName flattens a Name or Attribute chain into its dotted spelling.
// The second return is false for any other node shape.
func DottedName(e Expression) (string, bool) {
	switch n := e.(type) {
	case *Name:
		return n.Value, true
	case *Attribute:
		base, ok := DottedName(n.Value)
		if !ok {
			return "", false
		}
		return base + "." + n.Attr, true
	default:
		return "", false
	}
}
