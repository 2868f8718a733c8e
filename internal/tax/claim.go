package tax

import (
	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
)

// ClaimSummary describes what can be requested from the tax agency for one
// reduction scheme on an invoice.
type ClaimSummary struct {
	Kind      model.ReductionKind
	Rows      []model.LineItem
	Eligible  decimal.Decimal // sum of row totals for matching rows
	Other     decimal.Decimal // sum of row totals for all remaining rows
	Hours     decimal.Decimal // counted from rows billed in hours
	MaxAmount decimal.Decimal
}

// Claim collects the rows of items that belong to kind and computes the
// largest amount that may be requested: 30 % of the eligible total for ROT
// and 50 % for RUT.
func Claim(items []model.LineItem, kind model.ReductionKind) ClaimSummary {
	share := rutReduction
	if kind == model.ReductionROT {
		share = rotReduction
	}

	s := ClaimSummary{
		Kind:      kind,
		Eligible:  decimal.Zero,
		Other:     decimal.Zero,
		Hours:     decimal.Zero,
		MaxAmount: decimal.Zero,
	}
	for _, item := range items {
		if item.ServiceKind() != kind {
			s.Other = s.Other.Add(item.Total())
			continue
		}
		s.Rows = append(s.Rows, item)
		s.Eligible = s.Eligible.Add(item.Total())
		if item.Unit == model.UnitHours {
			s.Hours = s.Hours.Add(item.Count)
		}
	}
	s.MaxAmount = s.Eligible.Mul(share)
	return s
}
