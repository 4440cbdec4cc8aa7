package request

import (
	"fmt"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/pkg/errs"
)

// Stage is a step of the tracking pipeline of an accepted Request. The
// numeric value is the stage order; progression is strictly one step at a
// time except for the payment review shortcut and the photo compound
// operations.
type Stage int

const (
	UnknownStage Stage = iota
	WaitingApproval
	ItemAccepted
	PaymentDone
	SenderPhotosUploaded
	TravelerInspectionComplete
	TravelerOnTheWay
	Delivered
	Completed
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage:               "unknown",
		WaitingApproval:            "waiting_approval",
		ItemAccepted:               "item_accepted",
		PaymentDone:                "payment_done",
		SenderPhotosUploaded:       "sender_photos_uploaded",
		TravelerInspectionComplete: "traveler_inspection_complete",
		TravelerOnTheWay:           "traveler_on_the_way",
		Delivered:                  "delivered",
		Completed:                  "completed",
	}
}

// roles allowed to move a request into the stage.
func getStageRoles() map[Stage][]actor.Role {
	return map[Stage][]actor.Role{
		ItemAccepted:               {actor.Traveler, actor.Admin},
		PaymentDone:                {actor.Admin},
		SenderPhotosUploaded:       {actor.Sender},
		TravelerInspectionComplete: {actor.Traveler},
		TravelerOnTheWay:           {actor.Traveler},
		Delivered:                  {actor.Traveler},
		Completed:                  {actor.Sender},
	}
}

func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Order is the 1-based position of the stage in the pipeline.
func (s Stage) Order() int {
	return int(s)
}

func (s Stage) Validate() error {
	if s < WaitingApproval || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("tracking status", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// ParseStage is the inverse of String for valid stages.
func ParseStage(s string) (Stage, error) {
	for st, str := range getStageStrings() {
		if st != UnknownStage && str == s {
			return st, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause("tracking status", fmt.Errorf("%q is not a valid stage", s))
}

// AllowedRoles lists who may advance a request into s.
func (s Stage) AllowedRoles() []actor.Role {
	return getStageRoles()[s]
}

// IsPaymentGated reports whether entering s requires a confirmed payment.
func (s Stage) IsPaymentGated() bool {
	return s == PaymentDone || s == SenderPhotosUploaded || s == TravelerInspectionComplete
}

// Stages returns all valid stages in pipeline order.
func Stages() []Stage {
	return []Stage{
		WaitingApproval, ItemAccepted, PaymentDone, SenderPhotosUploaded,
		TravelerInspectionComplete, TravelerOnTheWay, Delivered, Completed,
	}
}
