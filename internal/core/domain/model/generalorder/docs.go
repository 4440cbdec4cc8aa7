// Package generalorder contains the GeneralOrder aggregate.
//
// A general order lets a sender publish a shipment without choosing a trip.
// Any traveler other than the sender may claim it; of several concurrent
// claims exactly one succeeds.
package generalorder
