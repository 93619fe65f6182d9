// Package workflow holds the invoice state machine and payment ledger.
// Everything here is pure: no I/O, no clocks, no logging.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

// Command is a workflow action issued by an actor against an invoice.
type Command string

const (
	CommandEdit           Command = "edit"
	CommandSubmit         Command = "submit"
	CommandApprove        Command = "approve"
	CommandReject         Command = "reject"
	CommandResubmit       Command = "resubmit"
	CommandRecordPayment  Command = "record_payment"
	CommandReversePayment Command = "reverse_payment"
)

// AllCommands lists every Command.
var AllCommands = []Command{
	CommandEdit,
	CommandSubmit,
	CommandApprove,
	CommandReject,
	CommandResubmit,
	CommandRecordPayment,
	CommandReversePayment,
}

// Snapshot is what the guards need to know about the invoice. Ledger figures
// describe the state after the command's monetary effect has been applied.
type Snapshot struct {
	VendorID          string
	LineItemCount     int
	Total             domain.Money
	Reason            string
	BalanceDue        domain.Money
	ProcessedPayments int
}

type transitionKey struct {
	from domain.InvoiceStatus
	role domain.Role
	cmd  Command
}

type transitionRule struct {
	guard func(actor domain.Actor, snap Snapshot) error
	to    func(snap Snapshot) domain.InvoiceStatus
}

func goTo(status domain.InvoiceStatus) func(Snapshot) domain.InvoiceStatus {
	return func(Snapshot) domain.InvoiceStatus { return status }
}

// transitions is the complete legal-transition table. Any (status, role,
// command) triple missing from it is illegal.
var transitions = map[transitionKey]transitionRule{
	{domain.StatusPendingSubmission, domain.RoleVendor, CommandEdit}: {
		guard: all(ownedBy, balanceStaysOpen),
		to:    goTo(domain.StatusPendingSubmission),
	},
	{domain.StatusPendingSubmission, domain.RoleVendor, CommandSubmit}: {
		guard: all(ownedBy, submittable),
		to:    goTo(domain.StatusSubmittedToAdmin),
	},
	{domain.StatusSubmittedToAdmin, domain.RoleAdmin, CommandApprove}: {
		to: goTo(domain.StatusSubmittedToAccounting),
	},
	{domain.StatusSubmittedToAdmin, domain.RoleAdmin, CommandReject}: {
		guard: reasonGiven,
		to:    goTo(domain.StatusRejectedByAdmin),
	},
	{domain.StatusSubmittedToAccounting, domain.RoleAccountant, CommandReject}: {
		guard: reasonGiven,
		to:    goTo(domain.StatusRejectedByAccountant),
	},
	{domain.StatusRejectedByAdmin, domain.RoleVendor, CommandResubmit}: {
		guard: ownedBy,
		to:    goTo(domain.StatusPendingSubmission),
	},
	{domain.StatusRejectedByAccountant, domain.RoleVendor, CommandResubmit}: {
		guard: ownedBy,
		to:    goTo(domain.StatusPendingSubmission),
	},
	{domain.StatusSubmittedToAccounting, domain.RoleAccountant, CommandRecordPayment}: {
		guard: balanceNotNegative,
		to:    SettledStatus,
	},
	{domain.StatusPaid, domain.RoleAccountant, CommandRecordPayment}: {
		guard: balanceNotNegative,
		to:    SettledStatus,
	},
	{domain.StatusSubmittedToAccounting, domain.RoleAccountant, CommandReversePayment}: {
		guard: balanceNotNegative,
		to:    SettledStatus,
	},
	{domain.StatusPaid, domain.RoleAccountant, CommandReversePayment}: {
		guard: balanceNotNegative,
		to:    SettledStatus,
	},
}

// Transition computes the next status for cmd issued by actor from status from.
// It returns an *apperrors.IllegalTransitionError when the triple is not in the
// table, or the guard's error when the triple is legal but the guard fails.
func Transition(from domain.InvoiceStatus, actor domain.Actor, cmd Command, snap Snapshot) (domain.InvoiceStatus, error) {
	rule, ok := transitions[transitionKey{from: from, role: actor.Role, cmd: cmd}]
	if !ok {
		return from, apperrors.NewIllegalTransition(string(from), string(actor.Role), string(cmd))
	}
	if rule.guard != nil {
		if err := rule.guard(actor, snap); err != nil {
			if errors.Is(err, errNotOwner) {
				return from, apperrors.NewIllegalTransition(string(from), string(actor.Role), string(cmd))
			}
			return from, err
		}
	}
	return rule.to(snap), nil
}

// Allowed reports whether the triple appears in the transition table,
// ignoring guards.
func Allowed(from domain.InvoiceStatus, role domain.Role, cmd Command) bool {
	_, ok := transitions[transitionKey{from: from, role: role, cmd: cmd}]
	return ok
}

// IsTerminal reports whether the invoice has left the approval pipeline.
// A paid invoice only moves again through a payment reversal.
func IsTerminal(status domain.InvoiceStatus) bool {
	switch status {
	case domain.StatusPaid:
		return true
	case domain.StatusPendingSubmission,
		domain.StatusSubmittedToAdmin,
		domain.StatusSubmittedToAccounting,
		domain.StatusRejectedByAdmin,
		domain.StatusRejectedByAccountant:
		return false
	default:
		panic(fmt.Sprintf("workflow: unhandled invoice status %q", status))
	}
}

// SettledStatus is the resulting-status rule for ledger commands: paid when
// nothing is owed and at least one processed payment exists.
func SettledStatus(snap Snapshot) domain.InvoiceStatus {
	if snap.BalanceDue.IsZero() && snap.ProcessedPayments > 0 {
		return domain.StatusPaid
	}
	return domain.StatusSubmittedToAccounting
}

func all(guards ...func(domain.Actor, Snapshot) error) func(domain.Actor, Snapshot) error {
	return func(actor domain.Actor, snap Snapshot) error {
		for _, g := range guards {
			if err := g(actor, snap); err != nil {
				return err
			}
		}
		return nil
	}
}

// errNotOwner never leaves Transition; it is reported as an IllegalTransitionError.
var errNotOwner = errors.New("vendor does not own this invoice")

// ownedBy only lets a vendor act on its own invoices. A foreign vendor gets the
// same answer as any other disallowed command.
func ownedBy(actor domain.Actor, snap Snapshot) error {
	if actor.UserID == "" || actor.UserID != snap.VendorID {
		return errNotOwner
	}
	return nil
}

func submittable(_ domain.Actor, snap Snapshot) error {
	if snap.LineItemCount < 1 {
		return fmt.Errorf("%w: invoice must have at least one line item", apperrors.ErrValidation)
	}
	if !snap.Total.IsPositive() {
		return fmt.Errorf("%w: invoice total must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

func reasonGiven(_ domain.Actor, snap Snapshot) error {
	if strings.TrimSpace(snap.Reason) == "" {
		return apperrors.ErrMissingRejectionReason
	}
	return nil
}

func balanceNotNegative(_ domain.Actor, snap Snapshot) error {
	if snap.BalanceDue.IsNegative() {
		return fmt.Errorf("%w: balance due would be %s", apperrors.ErrAmountExceedsBalance, snap.BalanceDue)
	}
	return nil
}

// balanceStaysOpen keeps an edited draft from owing less than what was
// already paid, and from becoming fully settled outside accounting.
func balanceStaysOpen(actor domain.Actor, snap Snapshot) error {
	if err := balanceNotNegative(actor, snap); err != nil {
		return err
	}
	if snap.ProcessedPayments > 0 && snap.BalanceDue.IsZero() {
		return fmt.Errorf("%w: edited total must stay above the amount already paid", apperrors.ErrAmountExceedsBalance)
	}
	return nil
}
