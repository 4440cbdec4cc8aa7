package request

import (
	"strings"

	"parcel/internal/core/domain/model/kernel"
)

// Proposal is a sender's pending revision of weight and description. Both
// fields always move together.
type Proposal struct {
	weight      kernel.Weight
	description string
}

func NewProposal(weight kernel.Weight, description string) (Proposal, error) {
	if err := validateShipmentWeight(weight); err != nil {
		return Proposal{}, err
	}
	return Proposal{weight: weight, description: strings.TrimSpace(description)}, nil
}

func (p Proposal) Weight() kernel.Weight { return p.weight }
func (p Proposal) Description() string   { return p.description }
