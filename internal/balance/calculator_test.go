package balance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/internal/expense"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func splitType(s string) *string { return &s }

func splitExpense(id, payerID int64, amount string, splits ...*expense.Split) *expense.ExpenseWithSplits {
	return &expense.ExpenseWithSplits{
		Expense: &expense.Expense{
			ID:        id,
			PayerID:   payerID,
			Amount:    dec(amount),
			Kind:      expense.KindSplit,
			SplitType: splitType("EQUAL"),
		},
		Splits: splits,
	}
}

func allKnown(ids ...int64) map[int64]bool {
	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return known
}

// A pays $60 split equally with B and C: B and C owe $20 each.
func dinnerScenario() []*expense.ExpenseWithSplits {
	return []*expense.ExpenseWithSplits{
		splitExpense(1, 1, "60.00",
			&expense.Split{ExpenseID: 1, UserID: 2, Amount: dec("20.00")},
			&expense.Split{ExpenseID: 1, UserID: 3, Amount: dec("20.00")},
		),
	}
}

func TestComputePayerPerspective(t *testing.T) {
	report := Compute(1, dinnerScenario(), allKnown(1, 2, 3))

	if !report.Summary.TotalOwed.Equal(dec("40.00")) {
		t.Errorf("TotalOwed = %s, want 40.00", report.Summary.TotalOwed)
	}
	if !report.Summary.TotalOwe.IsZero() {
		t.Errorf("TotalOwe = %s, want 0", report.Summary.TotalOwe)
	}
	if !report.Summary.Net.Equal(dec("40.00")) {
		t.Errorf("Net = %s, want 40.00", report.Summary.Net)
	}

	fb := report.Friends[2]
	if fb == nil || !fb.TheyOwe.Equal(dec("20.00")) || !fb.Net.Equal(dec("20.00")) {
		t.Errorf("friend 2 balance = %+v, want TheyOwe 20.00", fb)
	}
}

func TestComputeParticipantPerspective(t *testing.T) {
	report := Compute(2, dinnerScenario(), allKnown(1, 2, 3))

	if !report.Summary.TotalOwe.Equal(dec("20.00")) {
		t.Errorf("TotalOwe = %s, want 20.00", report.Summary.TotalOwe)
	}
	if !report.Summary.Net.Equal(dec("-20.00")) {
		t.Errorf("Net = %s, want -20.00", report.Summary.Net)
	}

	fb := report.Friends[1]
	if fb == nil || !fb.YouOwe.Equal(dec("20.00")) {
		t.Errorf("balance against payer = %+v, want YouOwe 20.00", fb)
	}
	// B has no position against C even though both took part.
	if _, ok := report.Friends[3]; ok {
		t.Error("participant should have no balance against co-participant")
	}
}

func TestComputeExcludesSettledSplits(t *testing.T) {
	expenses := dinnerScenario()
	expenses[0].Splits[0].Settled = true // B settled

	report := Compute(1, expenses, allKnown(1, 2, 3))

	if !report.Summary.TotalOwed.Equal(dec("20.00")) {
		t.Errorf("TotalOwed = %s, want 20.00 after B settles", report.Summary.TotalOwed)
	}
	if fb, ok := report.Friends[2]; ok && !fb.TheyOwe.IsZero() {
		t.Errorf("friend 2 TheyOwe = %s, want 0 after settling", fb.TheyOwe)
	}

	expenses[0].Splits[1].Settled = true // C settles too
	report = Compute(1, expenses, allKnown(1, 2, 3))
	if !report.Summary.Net.IsZero() {
		t.Errorf("Net = %s, want 0 when every split is settled", report.Summary.Net)
	}
}

func TestComputeSoloExpense(t *testing.T) {
	groupID := int64(7)
	expenses := []*expense.ExpenseWithSplits{
		{
			Expense: &expense.Expense{
				ID:      1,
				PayerID: 1,
				GroupID: &groupID,
				Amount:  dec("50.00"),
				Kind:    expense.KindSolo,
				Date:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	report := Compute(1, expenses, allKnown(1))

	if !report.Summary.Net.IsZero() {
		t.Errorf("Net = %s, want 0 for a solo expense", report.Summary.Net)
	}
	if len(report.Friends) != 0 {
		t.Errorf("Friends has %d entries, want 0", len(report.Friends))
	}

	// Solo spending still counts toward the group's total.
	gt := report.Groups[groupID]
	if gt == nil || !gt.TotalExpenses.Equal(dec("50.00")) {
		t.Errorf("group total = %+v, want 50.00", gt)
	}
}

func TestComputeGroupTotals(t *testing.T) {
	groupID := int64(7)
	older := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	e1 := splitExpense(1, 1, "60.00", &expense.Split{ExpenseID: 1, UserID: 2, Amount: dec("30.00")})
	e1.Expense.GroupID = &groupID
	e1.Expense.Date = newer
	e2 := splitExpense(2, 2, "40.00", &expense.Split{ExpenseID: 2, UserID: 1, Amount: dec("20.00")})
	e2.Expense.GroupID = &groupID
	e2.Expense.Date = older

	report := Compute(1, []*expense.ExpenseWithSplits{e1, e2}, allKnown(1, 2))

	gt := report.Groups[groupID]
	if gt == nil {
		t.Fatal("group total missing")
	}
	if !gt.TotalExpenses.Equal(dec("100.00")) {
		t.Errorf("group total = %s, want 100.00", gt.TotalExpenses)
	}
	if !gt.LastActivity.Equal(newer) {
		t.Errorf("last activity = %s, want %s", gt.LastActivity, newer)
	}
	if !report.Summary.Net.Equal(dec("10.00")) {
		t.Errorf("Net = %s, want 10.00", report.Summary.Net)
	}
}

func TestComputeSkipsUnknownUsers(t *testing.T) {
	// Payer 9 is unknown: the whole expense is excluded.
	orphaned := splitExpense(1, 9, "60.00",
		&expense.Split{ExpenseID: 1, UserID: 1, Amount: dec("30.00")},
	)
	// Split user 8 is unknown: only that split is skipped.
	partial := splitExpense(2, 1, "30.00",
		&expense.Split{ExpenseID: 2, UserID: 2, Amount: dec("10.00")},
		&expense.Split{ExpenseID: 2, UserID: 8, Amount: dec("10.00")},
	)

	report := Compute(1, []*expense.ExpenseWithSplits{orphaned, partial}, allKnown(1, 2))

	if !report.Summary.TotalOwe.IsZero() {
		t.Errorf("TotalOwe = %s, want 0 when the payer is unknown", report.Summary.TotalOwe)
	}
	if !report.Summary.TotalOwed.Equal(dec("10.00")) {
		t.Errorf("TotalOwed = %s, want 10.00 with the unknown split skipped", report.Summary.TotalOwed)
	}
	if _, ok := report.Friends[8]; ok {
		t.Error("unknown user must not appear in friend balances")
	}
}
