// Package services provides domain services that span more than one
// aggregate.
//
// The package includes:
//   - Acceptor: accepts a Request against its Trip, checking capacity and
//     reserving it in memory
//   - FlatRatePricer: quotes a shipment from the trip's per-kilogram price
package services
