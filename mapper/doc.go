// Package mapper copies values into the writable members of a target struct.
//
// CopyMembers is a best-effort copy between two objects matched by member
// name. The mapping variants are stricter: a typed mapping is assigned as is,
// a string mapping is converted member by member and rejects unknown keys.
// Explain reports what CopyMembers would do without writing anything.
package mapper
