package policy

type Op int

const (
	Add Op = iota + 1
	Sub
	Mul
	Div
	Mod
	Lsh
	Rsh
	Or
	And
	Xor
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
)

type Promotion interface {
	Name() string
}

type promotion string

func (p promotion) Name() string { return string(p) }

var (
	Native   Promotion = promotion("native")
	Integral Promotion = promotion("integral")
	Widest   Promotion = promotion("widest")
)

type Action int

const (
	Ignore Action = iota + 1
	Raise
	Trap
)

type Exception struct {
	ArithmeticError               Action
	ImplementationDefinedBehavior Action
	UndefinedBehavior             Action
	UninitializedValue            Action
}

var (
	LooseException  = &Exception{Raise, Ignore, Ignore, Ignore}
	LooseTrap       = &Exception{Trap, Ignore, Ignore, Ignore}
	StrictException = &Exception{Raise, Raise, Raise, Ignore}
	StrictTrap      = &Exception{Trap, Trap, Trap, Trap}
	Default         = StrictException
)
