package postgres

import (
	"parcel/internal/adapters/out/postgres/generalorderrepo"
	"parcel/internal/adapters/out/postgres/outboxrepo"
	"parcel/internal/adapters/out/postgres/profilerepo"
	"parcel/internal/adapters/out/postgres/requestrepo"
	"parcel/internal/adapters/out/postgres/triprepo"

	"gorm.io/gorm"
)

// Models lists every table the module owns, in creation order.
func Models() []any {
	return []any{
		&triprepo.TripDTO{},
		&triprepo.CapacityHoldDTO{},
		&requestrepo.RequestDTO{},
		&generalorderrepo.GeneralOrderDTO{},
		&outboxrepo.EventDTO{},
		&profilerepo.ProfileDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
