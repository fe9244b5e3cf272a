package a

import (
	"github.com/sirkon/safenum"
	"github.com/sirkon/safenum/policy"
)

var (
	percent   = safenum.Declare[uint8](0, 100, policy.Native, policy.StrictException)
	guarded   = safenum.Declare[int8](-100, 100, policy.Native, policy.LooseTrap)
	small     = safenum.Declare[int8](-10, 10, policy.Native, policy.LooseTrap)
	counter   = safenum.Declare[uint8](0, 100, policy.Native, policy.LooseTrap)
	thousands = safenum.Declare[uint16](1000, 2000, policy.Native, policy.StrictException)
	wide      = safenum.Full[int32](policy.Native, policy.LooseTrap)
	trapped   = safenum.Full[int32](policy.Native, policy.StrictTrap)
	broken    = safenum.Declare[uint8](10, 1, policy.Native, nil) // want `SFN000: InvalidRange: .*invalid range \[10,1\]`
)

func derivations() {
	_ = safenum.MustBind(policy.Add, small, small)
	_ = safenum.MustBind(policy.Add, guarded, guarded) // want `SFN020: TrapReachable`
	_, _ = safenum.Bind(policy.Mul, percent, percent)
	_, _ = safenum.Bind(policy.Add, percent, counter) // want `SFN010: PolicyUnresolved`
	_, _ = safenum.Bind(policy.Less, guarded, guarded)
}

func values(v int8, w uint8) {
	x := safenum.MustMake(guarded, int8(5))
	_, _ = x.Add(x) // want `SFN020: TrapReachable`
	_, _ = x.Less(x)

	s := safenum.MustMake(small, int8(1))
	_, _ = s.Add(s)
	_, _ = s.Div(s) // want `SFN020: TrapReachable`

	one := safenum.Literal(int8(1))
	_, _ = one.Add(one) // want `SFN010: PolicyUnresolved`
	_, _ = s.Sub(one)

	_, _ = safenum.Make(percent, w)
	_, _ = safenum.Make(percent, 200) // want `SFN030: NeverFits: int64\[200,200\] never fits uint8\[0,100\]`
	_, _ = safenum.Make(guarded, v)   // want `SFN020: TrapReachable: int8\[-128,127\] may not fit int8\[-100,100\]`
	_, _ = safenum.Make(guarded, 7)

	big := safenum.MustMake(thousands, uint16(1500))
	_, _ = safenum.Convert[int8](big) // want `SFN030: NeverFits`
	p := safenum.MustMake(percent, uint8(50))
	_, _ = safenum.Convert[int8](p)
	n, _ := safenum.Make(wide, v)
	_, _ = safenum.Convert[int8](n) // want `SFN020: TrapReachable`

	_, _ = counter.From(x) // want `SFN020: TrapReachable`
	_, _ = percent.From(x)

	c := safenum.MustMake(counter, uint8(10))
	_, _ = c.Compound(policy.Add, c) // want `SFN020: TrapReachable: uint8\[0,200\] may not fit uint8\[0,100\]`

	_, _ = trapped.Default() // want `SFN040: UninitializedTrap`
	_, _ = percent.Default()
	_ = broken
}
