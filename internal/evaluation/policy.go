package evaluation

import "github.com/shopspring/decimal"

var (
	hundred          = decimal.NewFromInt(100)
	participationCap = decimal.NewFromInt(8)
)

// Policy converts a raw score and a weight into the contribution toward a
// final grade. Pure computation, no side effects.
type Policy interface {
	Describe() string
	Contribution(raw, weight decimal.Decimal) decimal.Decimal
}

// policies routes by evaluation kind; the closed counterpart of Kind.
var policies = map[Kind]Policy{
	KindExam:          examPolicy{},
	KindAssignment:    assignmentPolicy{},
	KindParticipation: participationPolicy{},
}

// PolicyFor resolves the scoring policy for a raw kind string. Callers
// that already hold a parsed Kind can index policies via PolicyForKind.
func PolicyFor(s string) (Policy, error) {
	k, err := ParseKind(s)
	if err != nil {
		return nil, err
	}
	return policies[k], nil
}

func PolicyForKind(k Kind) (Policy, bool) {
	p, ok := policies[k]
	return p, ok
}

type examPolicy struct{}

func (examPolicy) Describe() string { return "written individual exam" }

func (examPolicy) Contribution(raw, weight decimal.Decimal) decimal.Decimal {
	return raw.Mul(weight).Div(hundred)
}

// assignmentPolicy shares the exam formula today; kept as its own variant
// so the two can diverge independently.
type assignmentPolicy struct{}

func (assignmentPolicy) Describe() string { return "practical or written assignment" }

func (assignmentPolicy) Contribution(raw, weight decimal.Decimal) decimal.Decimal {
	return raw.Mul(weight).Div(hundred)
}

type participationPolicy struct{}

func (participationPolicy) Describe() string { return "in-class participation and engagement" }

// Contribution caps the raw score at 8 before weighting. Only the derived
// contribution is capped; stored raw values are not.
func (participationPolicy) Contribution(raw, weight decimal.Decimal) decimal.Decimal {
	if raw.GreaterThan(participationCap) {
		raw = participationCap
	}
	return raw.Mul(weight).Div(hundred)
}
