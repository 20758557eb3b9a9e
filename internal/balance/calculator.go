package balance

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/internal/expense"
)

// Summary is the viewing user's aggregate position. TotalOwed is what others
// still owe the user on expenses the user paid; TotalOwe is what the user
// still owes others. Net = TotalOwed - TotalOwe.
type Summary struct {
	TotalOwed decimal.Decimal
	TotalOwe  decimal.Decimal
	Net       decimal.Decimal
}

// FriendBalance is the viewing user's position against one counterparty.
type FriendBalance struct {
	TheyOwe decimal.Decimal // their unsettled splits on expenses the viewer paid
	YouOwe  decimal.Decimal // the viewer's unsettled splits on expenses they paid
	Net     decimal.Decimal // TheyOwe - YouOwe
}

// GroupTotal aggregates the expenses recorded against one group.
type GroupTotal struct {
	TotalExpenses decimal.Decimal
	LastActivity  time.Time
}

// Report is the full output of one aggregation pass.
type Report struct {
	Summary Summary
	Friends map[int64]*FriendBalance
	Groups  map[int64]*GroupTotal
}

// Compute derives all balances for one viewer from the expense set in a
// single pass. It is a pure function of its inputs: nothing is cached and
// nothing is written.
//
// Rules:
//   - settled splits are excluded entirely; a settled debt no longer counts
//     toward either party's balance
//   - solo expenses never touch a counterparty balance but do count toward
//     group totals
//   - expenses whose payer is not in the user directory are excluded and
//     flagged; splits referencing unknown users are skipped and flagged;
//     neither aborts the pass
//
// Amounts accumulate at full precision; callers round at the presentation
// boundary.
func Compute(viewerID int64, expenses []*expense.ExpenseWithSplits, knownUsers map[int64]bool) *Report {
	report := &Report{
		Friends: make(map[int64]*FriendBalance),
		Groups:  make(map[int64]*GroupTotal),
	}

	friend := func(id int64) *FriendBalance {
		fb, ok := report.Friends[id]
		if !ok {
			fb = &FriendBalance{}
			report.Friends[id] = fb
		}
		return fb
	}

	for _, ews := range expenses {
		e := ews.Expense
		if !knownUsers[e.PayerID] {
			slog.Warn("excluding expense with unresolvable payer",
				"expense_id", e.ID, "payer_id", e.PayerID)
			continue
		}

		if e.GroupID != nil {
			gt, ok := report.Groups[*e.GroupID]
			if !ok {
				gt = &GroupTotal{TotalExpenses: decimal.Zero}
				report.Groups[*e.GroupID] = gt
			}
			gt.TotalExpenses = gt.TotalExpenses.Add(e.Amount)
			if e.Date.After(gt.LastActivity) {
				gt.LastActivity = e.Date
			}
		}

		if e.Kind == expense.KindSolo {
			continue
		}

		if e.PayerID == viewerID {
			for _, s := range ews.Splits {
				if s.UserID == viewerID {
					continue
				}
				if !knownUsers[s.UserID] {
					slog.Warn("skipping split with unresolvable user",
						"expense_id", e.ID, "user_id", s.UserID)
					continue
				}
				if s.Settled {
					continue
				}
				fb := friend(s.UserID)
				fb.TheyOwe = fb.TheyOwe.Add(s.Amount)
				report.Summary.TotalOwed = report.Summary.TotalOwed.Add(s.Amount)
			}
			continue
		}

		for _, s := range ews.Splits {
			if s.UserID != viewerID || s.Settled {
				continue
			}
			fb := friend(e.PayerID)
			fb.YouOwe = fb.YouOwe.Add(s.Amount)
			report.Summary.TotalOwe = report.Summary.TotalOwe.Add(s.Amount)
		}
	}

	report.Summary.Net = report.Summary.TotalOwed.Sub(report.Summary.TotalOwe)
	for _, fb := range report.Friends {
		fb.Net = fb.TheyOwe.Sub(fb.YouOwe)
	}

	return report
}
