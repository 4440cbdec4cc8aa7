package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrSubmitPhotosCommandIsNotConstructed = errors.New(
	"SubmitPhotosCommand must be created via NewSubmitItemPhotosCommand or NewSubmitInspectionCommand",
)

// PhotoKind selects which photo set a SubmitPhotosCommand appends to.
type PhotoKind int

const (
	// ItemPhotos are uploaded by the sender.
	ItemPhotos PhotoKind = iota + 1

	// InspectionPhotos are uploaded by the traveler after checking the item.
	InspectionPhotos
)

// SubmitPhotosCommand appends photo URLs and advances tracking as far as the
// photo sets justify. The URLs point at the external file store.
type SubmitPhotosCommand struct { //nolint:recvcheck //using for validation
	requestActor
	kind PhotoKind
	urls []string

	guard guard.ConstructorGuard
}

func NewSubmitItemPhotosCommand(requestID, actorID kernel.UUID, urls []string) (SubmitPhotosCommand, error) {
	return newSubmitPhotosCommand(requestID, actorID, ItemPhotos, urls)
}

func NewSubmitInspectionCommand(requestID, actorID kernel.UUID, urls []string) (SubmitPhotosCommand, error) {
	return newSubmitPhotosCommand(requestID, actorID, InspectionPhotos, urls)
}

func newSubmitPhotosCommand(requestID, actorID kernel.UUID, kind PhotoKind, urls []string) (SubmitPhotosCommand, error) {
	ra, raErr := newRequestActor(requestID, actorID)
	var urlsErr error
	if len(urls) == 0 {
		urlsErr = errs.NewValueIsRequiredError("photo urls")
	}
	if err := errors.Join(raErr, urlsErr); err != nil {
		return SubmitPhotosCommand{}, err
	}

	return SubmitPhotosCommand{
		requestActor: ra,
		kind:         kind,
		urls:         append([]string(nil), urls...),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitPhotosCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPhotosCommandIsNotConstructed)
}

func (c SubmitPhotosCommand) Kind() PhotoKind {
	return c.kind
}

func (c SubmitPhotosCommand) URLs() []string {
	return append([]string(nil), c.urls...)
}
