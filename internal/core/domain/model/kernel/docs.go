// Package kernel provides the shared value objects of the parcel domain.
//
// The package includes:
//   - UUID: identifiers for trips, requests, general orders and actors
//   - Weight: a non-negative amount of mass stored in whole grams
//   - Route: an origin/destination country pair
//   - Money: an amount in minor currency units
//
// Weights are kept in grams so that capacity arithmetic in the database is
// exact integer arithmetic. The API layer converts from kilograms.
package kernel
