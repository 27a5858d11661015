// Package types defines the object and schema model, the key-value Backend
// and Namespace interfaces, and the standard error types for reqmaster.
//
// An object is a flat record of string fields keyed by its Unique Requirement
// ID. Links between objects are stored redundantly on both ends; nothing
// indexes them centrally.
package types
