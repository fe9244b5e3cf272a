package b

import (
	"github.com/sirkon/safenum"
	"github.com/sirkon/safenum/policy"
)

var (
	Relaxed = &policy.Exception{ArithmeticError: policy.Trap}
	Opaque  = &policy.Exception{}
	Wide    = policy.Widest
)

var (
	relaxed = safenum.Declare[int8](-100, 100, Wide, Relaxed)
	opaque  = safenum.Declare[int8](-100, 100, policy.Native, Opaque) // want `SFN050: UnknownPolicy: exception policy is not known`
	native  = safenum.Native[int8]()
)

func derivations() {
	_ = safenum.MustBind(policy.Add, relaxed, relaxed)
	_ = safenum.MustBind(policy.Div, relaxed, relaxed) // want `SFN020: TrapReachable`
	_ = safenum.MustBind(policy.Add, opaque, opaque)
	_ = safenum.MustBind(policy.Add, native, native)
}

func local() {
	p := policy.Integral
	_ = safenum.Full[int16](p, policy.StrictException) // want `SFN050: UnknownPolicy: promotion policy is not known`
	_ = safenum.Declare[int16](-5, -10, nil, nil)      // want `SFN000: InvalidRange`
}
