// Package protocol owns the wire contract and parsing primitives.
//
// Ownership boundary:
// - action word vocabulary
// - request/response frame grammar
// - length-prefix parsing shared by encode and reassembly
package protocol
