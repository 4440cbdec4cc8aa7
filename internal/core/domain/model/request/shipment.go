package request

import (
	"errors"
	"fmt"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// ItemSize is the coarse parcel size the pricer charges a surcharge for.
type ItemSize string

const (
	SizeSmall  ItemSize = "small"
	SizeMedium ItemSize = "medium"
	SizeLarge  ItemSize = "large"
)

func (s ItemSize) Validate() error {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("item size", fmt.Errorf("%q is not one of small, medium, large", string(s)))
	}
}

// Receiver is the person collecting the parcel at the destination.
type Receiver struct {
	Name    string
	Phone   string
	Address string
}

// Shipment holds the committed details of what is being sent.
type Shipment struct {
	weight      kernel.Weight
	description string
	itemType    string
	itemSize    ItemSize
	receiver    Receiver
}

func NewShipment(weight kernel.Weight, description, itemType string, size ItemSize, receiver Receiver) (Shipment, error) {
	s := Shipment{
		description: strings.TrimSpace(description),
		itemType:    strings.TrimSpace(itemType),
		itemSize:    size,
		receiver: Receiver{
			Name:    strings.TrimSpace(receiver.Name),
			Phone:   strings.TrimSpace(receiver.Phone),
			Address: strings.TrimSpace(receiver.Address),
		},
	}

	var problems []error
	if err := validateShipmentWeight(weight); err != nil {
		problems = append(problems, err)
	}
	s.weight = weight
	if s.itemType == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item type"))
	}
	if err := size.Validate(); err != nil {
		problems = append(problems, err)
	}
	if s.receiver.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("receiver name"))
	}
	if s.receiver.Phone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("receiver phone"))
	}
	if s.receiver.Address == "" {
		problems = append(problems, errs.NewValueIsRequiredError("destination address"))
	}
	if len(problems) > 0 {
		return Shipment{}, errors.Join(problems...)
	}

	return s, nil
}

func (s Shipment) Weight() kernel.Weight { return s.weight }
func (s Shipment) Description() string   { return s.description }
func (s Shipment) ItemType() string      { return s.itemType }
func (s Shipment) ItemSize() ItemSize    { return s.itemSize }
func (s Shipment) Receiver() Receiver    { return s.receiver }

// withRevision replaces weight and description together.
func (s Shipment) withRevision(p Proposal) Shipment {
	s.weight = p.weight
	s.description = p.description
	return s
}

func validateShipmentWeight(w kernel.Weight) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", w))
	}
	return nil
}
