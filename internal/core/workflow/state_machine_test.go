package workflow_test

import (
	"testing"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vendorID = "vendor_1"

var (
	vendor     = domain.Actor{UserID: vendorID, Role: domain.RoleVendor}
	admin      = domain.Actor{UserID: "admin_1", Role: domain.RoleAdmin}
	accountant = domain.Actor{UserID: "acct_1", Role: domain.RoleAccountant}
)

// openSnapshot satisfies every guard: owned, non-empty, reason given, balance open.
func openSnapshot() workflow.Snapshot {
	return workflow.Snapshot{
		VendorID:      vendorID,
		LineItemCount: 1,
		Total:         domain.MustParseMoney("100.00"),
		Reason:        "wrong amount",
		BalanceDue:    domain.MustParseMoney("40.00"),
	}
}

func TestTransition_LegalTable(t *testing.T) {
	settled := openSnapshot()
	settled.BalanceDue = domain.ZeroMoney
	settled.ProcessedPayments = 2

	tests := []struct {
		name  string
		from  domain.InvoiceStatus
		actor domain.Actor
		cmd   workflow.Command
		snap  workflow.Snapshot
		want  domain.InvoiceStatus
	}{
		{"vendor submits draft", domain.StatusPendingSubmission, vendor, workflow.CommandSubmit, openSnapshot(), domain.StatusSubmittedToAdmin},
		{"vendor edits draft", domain.StatusPendingSubmission, vendor, workflow.CommandEdit, openSnapshot(), domain.StatusPendingSubmission},
		{"admin approves", domain.StatusSubmittedToAdmin, admin, workflow.CommandApprove, openSnapshot(), domain.StatusSubmittedToAccounting},
		{"admin rejects", domain.StatusSubmittedToAdmin, admin, workflow.CommandReject, openSnapshot(), domain.StatusRejectedByAdmin},
		{"accountant rejects", domain.StatusSubmittedToAccounting, accountant, workflow.CommandReject, openSnapshot(), domain.StatusRejectedByAccountant},
		{"vendor resubmits after admin rejection", domain.StatusRejectedByAdmin, vendor, workflow.CommandResubmit, openSnapshot(), domain.StatusPendingSubmission},
		{"vendor resubmits after accountant rejection", domain.StatusRejectedByAccountant, vendor, workflow.CommandResubmit, openSnapshot(), domain.StatusPendingSubmission},
		{"partial payment stays in accounting", domain.StatusSubmittedToAccounting, accountant, workflow.CommandRecordPayment, func() workflow.Snapshot {
			s := openSnapshot()
			s.ProcessedPayments = 1
			return s
		}(), domain.StatusSubmittedToAccounting},
		{"final payment marks paid", domain.StatusSubmittedToAccounting, accountant, workflow.CommandRecordPayment, settled, domain.StatusPaid},
		{"reversal from paid reopens", domain.StatusPaid, accountant, workflow.CommandReversePayment, func() workflow.Snapshot {
			s := openSnapshot()
			s.ProcessedPayments = 1
			return s
		}(), domain.StatusSubmittedToAccounting},
		{"reversal that leaves balance settled stays paid", domain.StatusPaid, accountant, workflow.CommandReversePayment, settled, domain.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := workflow.Transition(tt.from, tt.actor, tt.cmd, tt.snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every (status, role, command) triple either appears in the table or is
// rejected with an IllegalTransitionError. Nothing panics and nothing else
// comes back for a triple outside the table.
func TestTransition_Totality(t *testing.T) {
	actors := map[domain.Role]domain.Actor{
		domain.RoleVendor:     vendor,
		domain.RoleAdmin:      admin,
		domain.RoleAccountant: accountant,
	}
	legal := 0

	for _, from := range domain.AllInvoiceStatuses {
		for _, role := range domain.AllRoles {
			for _, cmd := range workflow.AllCommands {
				got, err := workflow.Transition(from, actors[role], cmd, openSnapshot())
				if workflow.Allowed(from, role, cmd) {
					legal++
					assert.NoError(t, err, "%s/%s/%s", from, role, cmd)
					continue
				}
				var ite *apperrors.IllegalTransitionError
				require.ErrorAs(t, err, &ite, "%s/%s/%s", from, role, cmd)
				assert.Equal(t, string(from), ite.From)
				assert.Equal(t, string(role), ite.Role)
				assert.Equal(t, string(cmd), ite.Command)
				assert.Equal(t, from, got, "illegal transition must not move the status")
			}
		}
	}

	assert.Equal(t, 11, legal)
}

func TestTransition_Guards(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.InvoiceStatus
		actor   domain.Actor
		cmd     workflow.Command
		mutate  func(*workflow.Snapshot)
		wantErr error
	}{
		{
			name: "submit without line items", from: domain.StatusPendingSubmission, actor: vendor, cmd: workflow.CommandSubmit,
			mutate:  func(s *workflow.Snapshot) { s.LineItemCount = 0 },
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "submit with zero total", from: domain.StatusPendingSubmission, actor: vendor, cmd: workflow.CommandSubmit,
			mutate:  func(s *workflow.Snapshot) { s.Total = domain.ZeroMoney },
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "another vendor cannot submit", from: domain.StatusPendingSubmission,
			actor: domain.Actor{UserID: "vendor_2", Role: domain.RoleVendor}, cmd: workflow.CommandSubmit,
			mutate:  func(*workflow.Snapshot) {},
			wantErr: apperrors.ErrIllegalTransition,
		},
		{
			name: "another vendor cannot resubmit", from: domain.StatusRejectedByAdmin,
			actor: domain.Actor{UserID: "vendor_2", Role: domain.RoleVendor}, cmd: workflow.CommandResubmit,
			mutate:  func(*workflow.Snapshot) {},
			wantErr: apperrors.ErrIllegalTransition,
		},
		{
			name: "admin reject needs a reason", from: domain.StatusSubmittedToAdmin, actor: admin, cmd: workflow.CommandReject,
			mutate:  func(s *workflow.Snapshot) { s.Reason = "" },
			wantErr: apperrors.ErrMissingRejectionReason,
		},
		{
			name: "whitespace is not a reason", from: domain.StatusSubmittedToAccounting, actor: accountant, cmd: workflow.CommandReject,
			mutate:  func(s *workflow.Snapshot) { s.Reason = "   \t" },
			wantErr: apperrors.ErrMissingRejectionReason,
		},
		{
			name: "payment cannot overdraw the balance", from: domain.StatusSubmittedToAccounting, actor: accountant, cmd: workflow.CommandRecordPayment,
			mutate:  func(s *workflow.Snapshot) { s.BalanceDue = domain.MustParseMoney("-0.01") },
			wantErr: apperrors.ErrAmountExceedsBalance,
		},
		{
			name: "edit cannot drop total to the amount already paid", from: domain.StatusPendingSubmission, actor: vendor, cmd: workflow.CommandEdit,
			mutate: func(s *workflow.Snapshot) {
				s.BalanceDue = domain.ZeroMoney
				s.ProcessedPayments = 1
			},
			wantErr: apperrors.ErrAmountExceedsBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := openSnapshot()
			tt.mutate(&snap)
			got, err := workflow.Transition(tt.from, tt.actor, tt.cmd, snap)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestTransition_ForeignVendorGetsTypedError(t *testing.T) {
	stranger := domain.Actor{UserID: "vendor_2", Role: domain.RoleVendor}
	tests := []struct {
		from domain.InvoiceStatus
		cmd  workflow.Command
	}{
		{from: domain.StatusPendingSubmission, cmd: workflow.CommandSubmit},
		{from: domain.StatusPendingSubmission, cmd: workflow.CommandEdit},
		{from: domain.StatusRejectedByAdmin, cmd: workflow.CommandResubmit},
		{from: domain.StatusRejectedByAccountant, cmd: workflow.CommandResubmit},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.cmd), func(t *testing.T) {
			_, err := workflow.Transition(tt.from, stranger, tt.cmd, openSnapshot())

			var ite *apperrors.IllegalTransitionError
			require.ErrorAs(t, err, &ite)
			assert.Equal(t, string(tt.from), ite.From)
			assert.Equal(t, string(domain.RoleVendor), ite.Role)
			assert.Equal(t, string(tt.cmd), ite.Command)
			assert.NotContains(t, err.Error(), stranger.UserID)
		})
	}
}

func TestTransition_RejectIsNotIdempotent(t *testing.T) {
	_, err := workflow.Transition(domain.StatusRejectedByAdmin, admin, workflow.CommandReject, openSnapshot())
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func TestIsTerminal(t *testing.T) {
	for _, st := range domain.AllInvoiceStatuses {
		assert.Equal(t, st == domain.StatusPaid, workflow.IsTerminal(st), st)
	}
	assert.Panics(t, func() { workflow.IsTerminal("archived") })
}
