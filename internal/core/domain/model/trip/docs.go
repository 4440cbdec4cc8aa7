// Package trip holds the Trip aggregate: a traveler's announced journey and
// the spare luggage capacity it offers to senders.
//
// Free capacity only ever decreases. It is reduced when a Request against the
// trip is accepted and is not restored when that Request is later cancelled.
// The persistent decrement is a compare-and-swap performed by the capacity
// ledger; Trip.Reserve mirrors it in memory.
package trip
