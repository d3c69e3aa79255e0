package handler

import (
	"time"

	purchaseapp "github.com/erp/ledger/internal/application/purchase"
	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// TransactionRequest is the body of both create and edit. Amounts are as a
// user enters them: credit notes and payments are positive figures.
// Match values are taken as they are.
type TransactionRequest struct {
	Type       string          `json:"type" binding:"required"`
	Period     string          `json:"period" binding:"omitempty,period"`
	SupplierID string          `json:"supplier_id" binding:"required,uuid"`
	CashBookID *string         `json:"cash_book_id" binding:"omitempty,uuid"`
	Ref        string          `json:"ref" binding:"max=20"`
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	DueDate    *string         `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Goods      decimal.Decimal `json:"goods" swaggertype:"string"`
	Vat        decimal.Decimal `json:"vat" swaggertype:"string"`
	Total      decimal.Decimal `json:"total" swaggertype:"string"`
	Lines      []LineRequest   `json:"lines" binding:"dive"`
	Matches    []MatchRequest  `json:"matches" binding:"dive"`
}

// LineRequest is one line of a transaction. An id refers to an existing line;
// Delete removes it.
type LineRequest struct {
	ID          *string         `json:"id" binding:"omitempty,uuid"`
	Description string          `json:"description" binding:"max=100"`
	Goods       decimal.Decimal `json:"goods" swaggertype:"string"`
	Vat         decimal.Decimal `json:"vat" swaggertype:"string"`
	NominalID   *string         `json:"nominal_id" binding:"omitempty,uuid"`
	VatCodeID   *string         `json:"vat_code_id" binding:"omitempty,uuid"`
	Delete      bool            `json:"delete"`
	Order       *int            `json:"order" binding:"omitempty,gte=0"`
}

// MatchRequest matches the transaction to another header. A value of zero
// deletes an existing match.
type MatchRequest struct {
	ID        *string         `json:"id" binding:"omitempty,uuid"`
	MatchedTo string          `json:"matched_to" binding:"required,uuid"`
	Value     decimal.Decimal `json:"value" swaggertype:"string"`
}

// parsedRequest is a TransactionRequest in ledger terms.
type parsedRequest struct {
	Type    purchase.HeaderType
	Period  string
	Fields  purchase.HeaderFields
	Lines   []purchase.LineCandidate
	Matches []purchase.MatchCandidate
}

// parse converts the request into ledger sign. Formats have already been
// checked by binding, so parse errors here cannot occur for a bound request.
func (r TransactionRequest) parse() (*parsedRequest, error) {
	t, err := purchase.ParseHeaderType(r.Type)
	if err != nil {
		return nil, err
	}

	fields := purchase.HeaderFields{
		SupplierID: uuid.MustParse(r.SupplierID),
		CashBookID: parseOptionalUUID(r.CashBookID),
		Ref:        r.Ref,
		Goods:      t.Normalise(r.Goods),
		Vat:        t.Normalise(r.Vat),
		Total:      t.Normalise(r.Total),
	}
	if fields.Date, err = time.Parse(dateLayout, r.Date); err != nil {
		return nil, purchase.NewInvalidFieldError("date", "Enter a valid date.")
	}
	if r.DueDate != nil {
		due, err := time.Parse(dateLayout, *r.DueDate)
		if err != nil {
			return nil, purchase.NewInvalidFieldError("due_date", "Enter a valid date.")
		}
		fields.DueDate = &due
	}

	lines := make([]purchase.LineCandidate, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = purchase.LineCandidate{
			ID:          parseOptionalUUID(l.ID),
			Description: l.Description,
			Goods:       t.Normalise(l.Goods),
			Vat:         t.Normalise(l.Vat),
			NominalID:   parseOptionalUUID(l.NominalID),
			VatCodeID:   parseOptionalUUID(l.VatCodeID),
			Delete:      l.Delete,
			Order:       l.Order,
		}
	}

	matches := make([]purchase.MatchCandidate, len(r.Matches))
	for i, m := range r.Matches {
		matches[i] = purchase.MatchCandidate{
			ID:            parseOptionalUUID(m.ID),
			CounterpartID: uuid.MustParse(m.MatchedTo),
			Value:         m.Value,
		}
	}

	return &parsedRequest{Type: t, Period: r.Period, Fields: fields, Lines: lines, Matches: matches}, nil
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id := uuid.MustParse(*s)
	return &id
}

// HeaderResponse is a header as stored, in ledger sign.
type HeaderResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	TypeLabel   string          `json:"type_label"`
	SupplierID  string          `json:"supplier_id"`
	CashBookID  *string         `json:"cash_book_id,omitempty"`
	Ref         string          `json:"ref"`
	Date        string          `json:"date"`
	DueDate     *string         `json:"due_date,omitempty"`
	Period      string          `json:"period"`
	Goods       decimal.Decimal `json:"goods" swaggertype:"string"`
	Vat         decimal.Decimal `json:"vat" swaggertype:"string"`
	Total       decimal.Decimal `json:"total" swaggertype:"string"`
	Paid        decimal.Decimal `json:"paid" swaggertype:"string"`
	Due         decimal.Decimal `json:"due" swaggertype:"string"`
	Status      string          `json:"status"`
	// Outstanding is true while the header is live and has a balance to match.
	Outstanding bool            `json:"outstanding"`
	VoidedAt    *time.Time      `json:"voided_at,omitempty"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LineResponse is a stored line with its posting back-references.
type LineResponse struct {
	ID                        string          `json:"id"`
	LineNo                    int             `json:"line_no"`
	Description               string          `json:"description"`
	Goods                     decimal.Decimal `json:"goods" swaggertype:"string"`
	Vat                       decimal.Decimal `json:"vat" swaggertype:"string"`
	NominalID                 *uuid.UUID      `json:"nominal_id,omitempty"`
	VatCodeID                 *uuid.UUID      `json:"vat_code_id,omitempty"`
	GoodsNominalTransactionID *uuid.UUID      `json:"goods_nominal_transaction_id,omitempty"`
	VatNominalTransactionID   *uuid.UUID      `json:"vat_nominal_transaction_id,omitempty"`
	TotalNominalTransactionID *uuid.UUID      `json:"total_nominal_transaction_id,omitempty"`
	VatTransactionID          *uuid.UUID      `json:"vat_transaction_id,omitempty"`
}

// MatchResponse is a match seen from the requested header, as if that header
// had raised it.
type MatchResponse struct {
	ID        string          `json:"id"`
	MatchedBy string          `json:"matched_by"`
	MatchedTo string          `json:"matched_to"`
	Value     decimal.Decimal `json:"value" swaggertype:"string"`
	Period    string          `json:"period"`
}

// TransactionResponse is a header with its lines, matches and postings.
type TransactionResponse struct {
	Header   HeaderResponse         `json:"header"`
	Lines    []LineResponse         `json:"lines"`
	Matches  []MatchResponse        `json:"matches"`
	Postings *purchase.PostingBatch `json:"postings,omitempty"`
}

// VoidResponse reports the outcome of a void.
type VoidResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Header  *HeaderResponse `json:"header,omitempty"`
}

func toHeaderResponse(h *purchase.Header) HeaderResponse {
	resp := HeaderResponse{
		ID:          h.ID.String(),
		Type:        h.Type.String(),
		TypeLabel:   h.Type.Label(),
		SupplierID:  h.SupplierID.String(),
		Ref:         h.Ref,
		Date:        h.Date.Format(dateLayout),
		Period:      h.Period,
		Goods:       h.Goods,
		Vat:         h.Vat,
		Total:       h.Total,
		Paid:        h.Paid,
		Due:         h.Due,
		Status:      string(h.Status),
		Outstanding: h.IsOutstanding(),
		VoidedAt:    h.VoidedAt,
		Version:     h.Version,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
	if h.CashBookID != nil {
		id := h.CashBookID.String()
		resp.CashBookID = &id
	}
	if h.DueDate != nil {
		due := h.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}
	return resp
}

func toHeaderResponses(headers []*purchase.Header) []HeaderResponse {
	out := make([]HeaderResponse, len(headers))
	for i, h := range headers {
		out[i] = toHeaderResponse(h)
	}
	return out
}

func toTransactionResponse(v *purchaseapp.TransactionView) TransactionResponse {
	resp := TransactionResponse{
		Header:   toHeaderResponse(v.Header),
		Lines:    make([]LineResponse, len(v.Lines)),
		Matches:  make([]MatchResponse, len(v.Matches)),
		Postings: v.Postings,
	}
	for i, l := range v.Lines {
		resp.Lines[i] = LineResponse{
			ID:                        l.ID.String(),
			LineNo:                    l.LineNo,
			Description:               l.Description,
			Goods:                     l.Goods,
			Vat:                       l.Vat,
			NominalID:                 l.NominalID,
			VatCodeID:                 l.VatCodeID,
			GoodsNominalTransactionID: l.GoodsNominalTransactionID,
			VatNominalTransactionID:   l.VatNominalTransactionID,
			TotalNominalTransactionID: l.TotalNominalTransactionID,
			VatTransactionID:          l.VatTransactionID,
		}
	}
	for i, m := range v.Matches {
		resp.Matches[i] = MatchResponse{
			ID:        m.ID.String(),
			MatchedBy: m.MatchedBy.String(),
			MatchedTo: m.MatchedTo.String(),
			Value:     m.ValueFor(v.Header.ID),
			Period:    m.Period,
		}
	}
	return resp
}

func toVoidResponse(r *purchaseapp.VoidResult) VoidResponse {
	resp := VoidResponse{Success: r.Success, Message: r.Message}
	if r.Header != nil {
		h := toHeaderResponse(r.Header)
		resp.Header = &h
	}
	return resp
}
