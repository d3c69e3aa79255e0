package purchase

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineCandidate is one submitted line. A nil ID means a new line.
type LineCandidate struct {
	ID          *uuid.UUID
	Description string
	Goods       decimal.Decimal
	Vat         decimal.Decimal
	NominalID   *uuid.UUID
	VatCodeID   *uuid.UUID
	Delete      bool
	// Order positions the line; nil keeps its place in the submission.
	Order *int
}

// LineReconciliation is the outcome of applying candidates to a header.
type LineReconciliation struct {
	// Lines are the surviving lines numbered 1..N.
	Lines []*Line
	// Removed are previously stored lines that no longer exist.
	Removed []*Line
}

type rankedLine struct {
	line  *Line
	order int
	rank  int
}

// ReconcileLines applies candidates to the current lines of h. The candidate
// list replaces the current set: stored lines absent from it are removed.
// Nothing in current is mutated; surviving lines are copies.
func ReconcileLines(h *Header, current []*Line, candidates []LineCandidate) (*LineReconciliation, error) {
	existing := make(map[uuid.UUID]*Line, len(current))
	for _, l := range current {
		existing[l.ID] = l
	}

	if !h.Type.HasLines() {
		for _, c := range candidates {
			if !c.Delete {
				return nil, ErrLinesNotAllowed
			}
		}
		return &LineReconciliation{Removed: current}, nil
	}

	now := time.Now()
	kept := make(map[uuid.UUID]bool, len(candidates))
	ranked := make([]rankedLine, 0, len(candidates))
	for i, c := range candidates {
		var base *Line
		if c.ID != nil {
			l, ok := existing[*c.ID]
			if !ok || kept[*c.ID] {
				return nil, NewInvalidChoiceError("line")
			}
			kept[*c.ID] = true
			base = l
		}
		if c.Delete {
			continue
		}

		line, err := candidateLine(h, base, c, now)
		if err != nil {
			return nil, err
		}

		order := i + 1
		if c.Order != nil {
			order = *c.Order
		}
		rank := len(current) + i + 1
		if base != nil {
			rank = base.LineNo
		}
		ranked = append(ranked, rankedLine{line: line, order: order, rank: rank})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].order != ranked[j].order {
			return ranked[i].order < ranked[j].order
		}
		return ranked[i].rank < ranked[j].rank
	})

	result := &LineReconciliation{Lines: make([]*Line, 0, len(ranked))}
	for i, r := range ranked {
		r.line.LineNo = i + 1
		result.Lines = append(result.Lines, r.line)
	}
	for _, l := range current {
		if !kept[l.ID] || !containsLine(result.Lines, l.ID) {
			result.Removed = append(result.Removed, l)
		}
	}

	if err := reconcileTotals(h, result.Lines); err != nil {
		return nil, err
	}
	return result, nil
}

func candidateLine(h *Header, base *Line, c LineCandidate, now time.Time) (*Line, error) {
	goods := roundMoney(c.Goods)
	vat := roundMoney(c.Vat)
	if goods.IsZero() && vat.IsZero() {
		return nil, ErrLineZero
	}
	description := strings.TrimSpace(c.Description)
	if len(description) > maxDescriptionLength {
		return nil, NewInvalidFieldError("description", "Ensure this value has at most 100 characters.")
	}
	if h.Type.PostsToLedger() {
		if c.NominalID == nil || *c.NominalID == uuid.Nil {
			return nil, NewInvalidChoiceError("nominal")
		}
		if c.VatCodeID == nil || *c.VatCodeID == uuid.Nil {
			return nil, NewInvalidChoiceError("vat_code")
		}
	}

	var line Line
	if base != nil {
		line = *base
	} else {
		line = Line{ID: uuid.New(), HeaderID: h.ID, CreatedAt: now}
	}
	line.Description = description
	line.Goods = goods
	line.Vat = vat
	line.NominalID = c.NominalID
	line.VatCodeID = c.VatCodeID
	line.UpdatedAt = now
	return &line, nil
}

// reconcileTotals checks the lines add up to the header. A brought-forward
// header entered without lines only has to be internally consistent.
func reconcileTotals(h *Header, lines []*Line) error {
	if len(lines) == 0 && h.Type.IsBroughtForward() {
		if !h.Goods.Add(h.Vat).Equal(h.Total) {
			return ErrLineTotalMismatch
		}
		return nil
	}
	goods, vat := SumLines(lines)
	if !goods.Equal(h.Goods) || !vat.Equal(h.Vat) || !goods.Add(vat).Equal(h.Total) {
		return ErrLineTotalMismatch
	}
	return nil
}

func containsLine(lines []*Line, id uuid.UUID) bool {
	for _, l := range lines {
		if l.ID == id {
			return true
		}
	}
	return false
}
