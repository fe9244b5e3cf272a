package safenum

import "github.com/sirkon/safenum/policy"

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Type struct{}

type Value struct{}

type Binary struct{}

func Declare[R Integer](min, max R, p policy.Promotion, e *policy.Exception) *Type { return &Type{} }
func Full[R Integer](p policy.Promotion, e *policy.Exception) *Type                { return &Type{} }
func Native[R Integer]() *Type                                                     { return &Type{} }
func Literal[R Integer](v R) Value                                                 { return Value{} }
func Make[R Integer](t *Type, v R) (Value, error)                                  { return Value{}, nil }
func MustMake[R Integer](t *Type, v R) Value                                       { return Value{} }
func Convert[R Integer](v Value) (R, error)                                        { return 0, nil }
func Bind(op policy.Op, t, u *Type) (*Binary, error)                               { return &Binary{}, nil }
func MustBind(op policy.Op, t, u *Type) *Binary                                    { return &Binary{} }

func (t *Type) Default() (Value, error)       { return Value{}, nil }
func (t *Type) From(v Value) (Value, error)   { return Value{}, nil }
func (t *Type) Parse(s string) (Value, error) { return Value{}, nil }
func (t *Type) Min() Value                    { return Value{} }
func (t *Type) Max() Value                    { return Value{} }

func (v Value) Add(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Sub(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Mul(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Div(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Mod(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Lsh(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Rsh(o Value) (Value, error)  { return Value{}, nil }
func (v Value) Less(o Value) (bool, error)  { return false, nil }
func (v Value) Equal(o Value) (bool, error) { return false, nil }

func (v Value) Compound(op policy.Op, o Value) (Value, error) { return Value{}, nil }
