package actor_test

import (
	"testing"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	sender := kernel.NewUUID()
	traveler := kernel.NewUUID()
	stranger := kernel.NewUUID()

	t.Run("sender", func(t *testing.T) {
		p := actor.Resolve(sender, false, sender, traveler)

		assert.True(t, p.Has(actor.Sender))
		assert.False(t, p.Has(actor.Traveler))
		assert.False(t, p.Has(actor.Admin))
		assert.Equal(t, actor.Sender, p.Side())
	})

	t.Run("traveler", func(t *testing.T) {
		p := actor.Resolve(traveler, false, sender, traveler)

		assert.True(t, p.Has(actor.Traveler))
		assert.Equal(t, actor.Traveler, p.Side())
	})

	t.Run("admin stranger", func(t *testing.T) {
		p := actor.Resolve(stranger, true, sender, traveler)

		assert.True(t, p.Has(actor.Admin))
		assert.Equal(t, actor.Unknown, p.Side())
	})

	t.Run("zero traveler never matches", func(t *testing.T) {
		var none kernel.UUID
		p := actor.Resolve(none, false, sender, none)

		assert.False(t, p.Has(actor.Traveler))
	})
}

func TestParty_Require(t *testing.T) {
	id := kernel.NewUUID()
	p := actor.NewParty(id, actor.Traveler, actor.Unknown)

	require.NoError(t, p.Require("accept request", actor.Traveler))
	require.NoError(t, p.Require("accept item", actor.Traveler, actor.Admin))

	err := p.Require("review payment", actor.Admin)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, "not authorized: actor "+id.String()+" cannot review payment, requires admin", err.Error())

	err = p.Require("complete delivery", actor.Sender, actor.Admin)
	assert.Contains(t, err.Error(), "requires sender or admin")
}

func TestRole_Validate(t *testing.T) {
	require.NoError(t, actor.Admin.Validate())
	require.ErrorIs(t, actor.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, actor.Role(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", actor.Role(42).String())
}
