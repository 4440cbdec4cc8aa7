// Package request holds the Request aggregate and its lifecycle.
//
// A Request has three orthogonal sub-states:
//   - Status: pending, accepted or rejected
//   - Stage: the eight step tracking pipeline, meaningful once accepted
//   - PaymentStatus: the admin-reviewed payment gate
//
// Two negotiation protocols run on top of them. While pending, the sender may
// propose a new weight and description that the traveler accepts or
// rejects. Once accepted, either party may ask to cancel; the request is
// deleted only when the other party asks as well.
package request
