// Package guard provides the constructor guard pattern used by value objects
// and commands to ensure they are only created through their factory functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the fallback error returned by Validate
// when no specific error is supplied by the caller.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was created through its designated
// constructor or left as a zero value. Embed it as a private field and set it
// with NewConstructorGuard inside the constructor; Validate then fails for any
// zero-value instance.
//
// Example:
//
//	type Address struct {
//	    street string
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewAddress(street string) (Address, error) {
//	    if street == "" {
//	        return Address{}, errors.New("street is required")
//	    }
//	    return Address{street: street, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a Address) Validate() error {
//	    return a.guard.Validate(ErrAddressIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guard was set by NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructedErr
}
