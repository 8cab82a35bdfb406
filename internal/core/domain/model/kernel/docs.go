// Package kernel contains shared value objects used across the domain model.
// These are small immutable types with validated constructors: identifiers
// and monetary amounts. They carry no behavior specific to a single aggregate
// and are safe to use from any domain package.
package kernel
