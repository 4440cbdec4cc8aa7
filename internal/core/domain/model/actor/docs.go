// Package actor resolves who is acting on a record and what they may do.
//
// Roles are a closed set: Sender, Traveler and Admin. A Party is built once
// per operation from the authenticated actor id, the admin flag from the
// identity provider, and the owners stored on the record. Domain methods
// call Party.Require before mutating state.
package actor
