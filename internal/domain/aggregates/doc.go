// Package aggregates defines domain-facing aggregate contracts and the error
// vocabulary their implementations speak.
//
// Contracts carry no persistence or transport detail. Each one marks a write
// boundary whose invariants hold atomically.
package aggregates
