// Package transform moves values between objects and key/value mappings.
//
// The object to mapping direction reads the public members declared on the
// object's type. The mapping to object direction synthesizes a new struct
// type from the mapping, see package synth.
package transform
