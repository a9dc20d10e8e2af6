package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{"draft to issued", DocumentStatusDraft, DocumentStatusIssued, true},
		{"draft to sent", DocumentStatusDraft, DocumentStatusSent, false},
		{"draft to paid", DocumentStatusDraft, DocumentStatusPaid, false},
		{"issued to sent", DocumentStatusIssued, DocumentStatusSent, true},
		{"issued to paid", DocumentStatusIssued, DocumentStatusPaid, true},
		{"issued to void", DocumentStatusIssued, DocumentStatusVoid, true},
		{"issued to draft", DocumentStatusIssued, DocumentStatusDraft, false},
		{"sent to paid", DocumentStatusSent, DocumentStatusPaid, true},
		{"sent to void", DocumentStatusSent, DocumentStatusVoid, true},
		{"paid is terminal", DocumentStatusPaid, DocumentStatusVoid, false},
		{"void is terminal", DocumentStatusVoid, DocumentStatusIssued, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document := &Document{Status: tt.from}
			assert.Equal(t, tt.allowed, document.CanTransitionTo(tt.to))
		})
	}
}

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "INV-2025-0001", FormatDocumentNumber(DocumentTypeInvoice, 2025, 1))
	assert.Equal(t, "QUO-2025-0042", FormatDocumentNumber(DocumentTypeQuote, 2025, 42))

	// Counter pads to four digits, then grows naturally
	assert.Equal(t, "INV-2026-9999", FormatDocumentNumber(DocumentTypeInvoice, 2026, 9999))
	assert.Equal(t, "INV-2026-10000", FormatDocumentNumber(DocumentTypeInvoice, 2026, 10000))
}

func TestDocumentDraftState(t *testing.T) {
	draft := &Document{Status: DocumentStatusDraft, Number: DraftNumber}
	assert.True(t, draft.IsDraft())
	assert.False(t, draft.IsIssued())

	issued := &Document{Status: DocumentStatusIssued, Number: "INV-2025-0001"}
	assert.False(t, issued.IsDraft())
	assert.True(t, issued.IsIssued())
}
