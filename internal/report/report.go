// Package report collects findings of safelint passes.
package report

import (
	"fmt"
	"go/token"
	"sync"

	"go.uber.org/zap"

	"github.com/sirkon/safenum/internal/rules"
)

// Reporter collects rule violations discovered during analysis.
type Reporter struct {
	mu       sync.Mutex
	disabled map[rules.Rule]struct{}
	reports  []Report
}

// New creates a reporter dropping violations of disabled rules.
func New(disabled ...rules.Rule) *Reporter {
	r := &Reporter{
		disabled: make(map[rules.Rule]struct{}, len(disabled)),
	}
	for _, rule := range disabled {
		r.disabled[rule] = struct{}{}
	}

	return r
}

// Report represents a single diagnostic entry.
type Report struct {
	Phase    Phase
	RuleCode rules.Rule
	Pos      token.Pos
	Message  string
}

// Phase marks the analysis stage where a report was generated.
type Phase int

const (
	phaseInvalid Phase = iota
	PhaseDeclare       // safe types declarations
	PhaseDerive        // binary operations over safe types
	PhaseValue         // values construction and conversion
	PhasePolicy        // policies evaluation
)

func (p Phase) String() string {
	switch p {
	case PhaseDeclare:
		return "declare"
	case PhaseDerive:
		return "derive"
	case PhaseValue:
		return "value"
	case PhasePolicy:
		return "policy"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// PhaseReporter binds a Reporter to a fixed phase.
type PhaseReporter struct {
	parent *Reporter
	phase  Phase
}

// Phase returns a reporter that sets the given phase for all its reports.
func (r *Reporter) Phase(p Phase) *PhaseReporter {
	return &PhaseReporter{parent: r, phase: p}
}

// Report adds a new record unless its rule is disabled. Returns true if the
// record was added.
func (r *Reporter) Report(rep Report) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.disabled[rep.RuleCode]; ok {
		return false
	}
	r.reports = append(r.reports, rep)

	return true
}

// Report records a rule violation under the bound phase. An empty message is
// replaced with the rule description.
func (rp *PhaseReporter) Report(rule rules.Rule, message string, pos token.Pos) bool {
	if message == "" {
		message = rule.Description()
	}

	return rp.parent.Report(Report{
		Phase:    rp.phase,
		RuleCode: rule,
		Message:  message,
		Pos:      pos,
	})
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Log writes all collected reports into the logger at debug level.
func (r *Reporter) Log(logger *zap.Logger, fset *token.FileSet) {
	for _, rep := range r.Reports() {
		pos := fset.Position(rep.Pos)
		logger.Debug(
			rep.Message,
			zap.Stringer("phase", rep.Phase),
			zap.Stringer("rule", rep.RuleCode),
			zap.String("file", pos.Filename),
			zap.Int("line", pos.Line),
		)
	}
}
