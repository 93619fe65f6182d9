package memory

import (
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

func cloneInvoice(in *domain.Invoice) *domain.Invoice {
	out := *in
	out.LineItems = append([]domain.LineItem(nil), in.LineItems...)
	out.SubmittedAt = cloneTime(in.SubmittedAt)
	out.ApprovedByAdminID = cloneString(in.ApprovedByAdminID)
	out.ApprovedAt = cloneTime(in.ApprovedAt)
	out.ApprovedByAccountantID = cloneString(in.ApprovedByAccountantID)
	out.SentToAccountingAt = cloneTime(in.SentToAccountingAt)
	out.RejectionReason = cloneString(in.RejectionReason)
	out.PaidAt = cloneTime(in.PaidAt)
	if in.RejectionActor != nil {
		r := *in.RejectionActor
		out.RejectionActor = &r
	}
	return &out
}

func clonePayment(in *domain.Payment) *domain.Payment {
	out := *in
	out.ReferenceNumber = cloneString(in.ReferenceNumber)
	out.ProcessedAt = cloneTime(in.ProcessedAt)
	out.ReversedByUserID = cloneString(in.ReversedByUserID)
	out.ReversedAt = cloneTime(in.ReversedAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
