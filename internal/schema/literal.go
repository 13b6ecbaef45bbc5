package schema

import (
	"encoding/json"
	"strconv"
)

// LiteralKind discriminates the value kinds a literal-enum may hold.
type LiteralKind int

const (
	LitNone LiteralKind = iota
	LitBool
	LitString
	LitInt
	LitFloat
)

// Literal is one literal-enum value. Exactly one payload field is
// meaningful, selected by Kind.
type Literal struct {
	Kind  LiteralKind
	Bool  bool
	Str   string
	Int   int64
	Float float64
}

func NoneLit() Literal           { return Literal{Kind: LitNone} }
func BoolLit(v bool) Literal     { return Literal{Kind: LitBool, Bool: v} }
func StringLit(v string) Literal { return Literal{Kind: LitString, Str: v} }
func IntLit(v int64) Literal     { return Literal{Kind: LitInt, Int: v} }
func FloatLit(v float64) Literal { return Literal{Kind: LitFloat, Float: v} }

func (l Literal) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LitBool:
		return json.Marshal(l.Bool)
	case LitString:
		return json.Marshal(l.Str)
	case LitInt:
		return []byte(strconv.FormatInt(l.Int, 10)), nil
	case LitFloat:
		return json.Marshal(l.Float)
	default:
		return []byte("null"), nil
	}
}
