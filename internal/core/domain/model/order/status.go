package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	new ─> pending_sales_review ─> pending_operation ─> pending_operation_manager_review
//	    ─> awaiting_client_acceptance ─> shipping_preparation ─> completed
//
// rejected_by_* statuses wait for a resubmit back to pending_sales_review.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	New
	PendingSalesReview
	RejectedBySales
	PendingOperation
	RejectedByOperation
	PendingOperationManagerReview
	RejectedByOperationManager
	AwaitingClientAcceptance
	RejectedByClient
	ShippingPreparation
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                       "unknown",
		New:                           "new",
		PendingSalesReview:            "pending_sales_review",
		RejectedBySales:               "rejected_by_sales",
		PendingOperation:              "pending_operation",
		RejectedByOperation:           "rejected_by_operation",
		PendingOperationManagerReview: "pending_operation_manager_review",
		RejectedByOperationManager:    "rejected_by_operation_manager",
		AwaitingClientAcceptance:      "awaiting_client_acceptance",
		RejectedByClient:              "rejected_by_client",
		ShippingPreparation:           "shipping_preparation",
		Completed:                     "completed",
	}
}

// Statuses lists every valid status in workflow order.
func Statuses() []Status {
	return []Status{
		New,
		PendingSalesReview,
		RejectedBySales,
		PendingOperation,
		RejectedByOperation,
		PendingOperationManagerReview,
		RejectedByOperationManager,
		AwaitingClientAcceptance,
		RejectedByClient,
		ShippingPreparation,
		Completed,
	}
}

// ParseStatus converts the persisted representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsRejected reports whether the order waits for a resubmit.
func (s Status) IsRejected() bool {
	switch s {
	case RejectedBySales, RejectedByOperation, RejectedByOperationManager, RejectedByClient:
		return true
	default:
		return false
	}
}

// IsActive reports whether the order sits in a stage with a running deadline.
func (s Status) IsActive() bool {
	switch s {
	case PendingSalesReview, PendingOperation, PendingOperationManagerReview,
		AwaitingClientAcceptance, ShippingPreparation:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == Completed
}
