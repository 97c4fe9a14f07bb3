// Package sparse holds user rating vectors keyed by dense indices.
//
// A Store maps a user index to a Vector (item index -> rating). Alongside each
// vector the Store keeps a roaring bitmap of the rated item indices, which
// makes overlap computation and "already rated" checks cheap for the
// similarity and recommendation layers.
//
// The Store never validates ratings. Malformed records are expected to be
// dropped before they reach it.
package sparse
