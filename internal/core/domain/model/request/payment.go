package request

import (
	"errors"
	"fmt"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// PaymentStatus gates the photo stages of tracking.
//
//	Unpaid ──> PendingReview ──┬──> Paid
//	              ^            └──> PaymentRejected
//	              └────────────────────┘
type PaymentStatus int

const (
	Unpaid PaymentStatus = iota
	PendingReview
	Paid
	PaymentRejected
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		Unpaid:          "unpaid",
		PendingReview:   "pending_review",
		Paid:            "paid",
		PaymentRejected: "rejected",
	}
}

func (p PaymentStatus) String() string {
	if s, ok := getPaymentStatusStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePaymentStatus treats the empty string as Unpaid, matching the NULL
// column of a request that never submitted a proof.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	if s == "" {
		return Unpaid, nil
	}
	for st, str := range getPaymentStatusStrings() {
		if str == s {
			return st, nil
		}
	}
	return Unpaid, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", s))
}

func (p PaymentStatus) Validate() error {
	if p < Unpaid || p > PaymentRejected {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// Submit moves an unpaid or rejected payment into review.
func (p PaymentStatus) Submit() (PaymentStatus, error) {
	if p != Unpaid && p != PaymentRejected {
		return p, errs.NewInvalidTransitionError("payment", p.String(), PendingReview.String())
	}
	return PendingReview, nil
}

// Review resolves a payment under review.
func (p PaymentStatus) Review(approve bool) (PaymentStatus, error) {
	next := PaymentRejected
	if approve {
		next = Paid
	}
	if p != PendingReview {
		return p, errs.NewInvalidTransitionError("payment", p.String(), next.String())
	}
	return next, nil
}

// PaymentProof is what the sender submits for admin review.
type PaymentProof struct {
	method   string
	proofURL string
	amount   kernel.Money
}

func NewPaymentProof(method, proofURL string, amount kernel.Money) (PaymentProof, error) {
	method = strings.TrimSpace(method)
	proofURL = strings.TrimSpace(proofURL)

	var missing []error
	if method == "" {
		missing = append(missing, errs.NewValueIsRequiredError("payment method"))
	}
	if proofURL == "" {
		missing = append(missing, errs.NewValueIsRequiredError("payment proof url"))
	}
	if len(missing) > 0 {
		return PaymentProof{}, errors.Join(missing...)
	}

	return PaymentProof{method: method, proofURL: proofURL, amount: amount}, nil
}

func (p PaymentProof) Method() string       { return p.method }
func (p PaymentProof) ProofURL() string     { return p.proofURL }
func (p PaymentProof) Amount() kernel.Money { return p.amount }
