package lint

import (
	"maps"

	"github.com/sirkon/safenum/policy"
)

// knownPolicies maps package level policy variables to their values.
type knownPolicies struct {
	exceptions map[Reference]*policy.Exception
	promotions map[Reference]policy.Promotion
}

func newKnownPolicies(cfg *Config) *knownPolicies {
	pkg := cfg.policyPackage()
	predefinedExceptions := map[Reference]*policy.Exception{
		{Package: pkg, Name: "LooseException"}:  policy.LooseException,
		{Package: pkg, Name: "LooseTrap"}:       policy.LooseTrap,
		{Package: pkg, Name: "StrictException"}: policy.StrictException,
		{Package: pkg, Name: "StrictTrap"}:      policy.StrictTrap,
		{Package: pkg, Name: "Default"}:         policy.Default,
	}
	predefinedPromotions := map[Reference]policy.Promotion{
		{Package: pkg, Name: "Native"}:   policy.Native,
		{Package: pkg, Name: "Integral"}: policy.Integral,
		{Package: pkg, Name: "Widest"}:   policy.Widest,
	}

	var exceptions map[Reference]*policy.Exception
	if cfg.Exceptions == nil {
		exceptions = map[Reference]*policy.Exception{}
	} else {
		exceptions = maps.Clone(cfg.Exceptions)
	}
	maps.Insert(exceptions, maps.All(predefinedExceptions))

	promotions := make(map[Reference]policy.Promotion, len(cfg.Promotions)+len(predefinedPromotions))
	for ref, name := range cfg.Promotions {
		promotions[ref] = policy.Promotions[name]
	}
	maps.Insert(promotions, maps.All(predefinedPromotions))

	return &knownPolicies{
		exceptions: exceptions,
		promotions: promotions,
	}
}

func (k *knownPolicies) exception(ref Reference) (*policy.Exception, bool) {
	e, ok := k.exceptions[ref]
	return e, ok
}

func (k *knownPolicies) promotion(ref Reference) (policy.Promotion, bool) {
	p, ok := k.promotions[ref]
	return p, ok
}
