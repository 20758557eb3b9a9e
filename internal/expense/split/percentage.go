package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// PercentageStrategy derives each participant's share from a percentage of
// the total. The payer's implicit percentage is 100 minus the participants'
// percentages, and the last participant absorbs per-share rounding so the
// amounts reconstruct the expected sum exactly.
type PercentageStrategy struct{}

// Type returns the split type identifier.
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks that every participant has a percentage in [0, 100] and
// that the percentages leave a non-negative implicit percentage for the
// payer, within a one-cent tolerance.
func (s *PercentageStrategy) Validate(total decimal.Decimal, payerID int64, participants []Participant) error {
	if err := validateCommon(total, payerID, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return newValidationError(CodeMissingPercentage, fmt.Sprintf("participant %d has no percentage", p.UserID))
		}
		if p.Percentage.IsNegative() || p.Percentage.GreaterThan(money.Hundred) {
			return newValidationError(CodePercentageOutOfRange, fmt.Sprintf("participant %d has a percentage outside 0-100", p.UserID))
		}
		sum = sum.Add(*p.Percentage)
	}

	if sum.Sub(money.Hundred).GreaterThan(money.Epsilon) {
		return newMismatchError(CodePercentageMismatch,
			"participant percentages exceed 100", money.Hundred, sum)
	}
	return nil
}

// Allocate computes round(total * percentage / 100) per participant and gives
// the payer the remainder.
func (s *PercentageStrategy) Allocate(total decimal.Decimal, payerID int64, participants []Participant) (*Result, error) {
	if err := s.Validate(total, payerID, participants); err != nil {
		return nil, err
	}

	participantPct := decimal.Zero
	for _, p := range participants {
		participantPct = participantPct.Add(*p.Percentage)
	}
	payerPct := money.Hundred.Sub(participantPct)
	if payerPct.IsNegative() {
		// Within tolerance of 100; the payer simply owes nothing.
		payerPct = decimal.Zero
	}

	allocations := make([]Allocation, len(participants))
	computed := decimal.Zero
	for i, p := range participants {
		amount := money.RoundCents(total.Mul(*p.Percentage).Div(money.Hundred))
		allocations[i] = Allocation{UserID: p.UserID, Amount: amount}
		computed = computed.Add(amount)
	}

	// Per-participant rounding can drift a cent off the target; settle the
	// difference on the last participant.
	expected := money.RoundCents(total.Mul(money.Hundred.Sub(payerPct)).Div(money.Hundred))
	diff := expected.Sub(computed)
	if !diff.IsZero() {
		last := &allocations[len(allocations)-1]
		last.Amount = last.Amount.Add(diff)
		if last.Amount.IsNegative() {
			return nil, newValidationError(CodeInvalidAmount, "amount is too small to split by the given percentages")
		}
	}

	return &Result{Allocations: allocations, PayerShare: total.Sub(expected)}, nil
}
