// Package guard provides the ConstructorGuard pattern used by value objects
// and commands to ensure they are only created through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embedding a guard
// in a struct makes zero-value instances detectable: only instances created
// through a constructor that calls NewConstructorGuard pass Validate.
//
// Example:
//
//	type TaxRate struct {
//	    percent float64
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewTaxRate(percent float64) (TaxRate, error) {
//	    if percent < 0 {
//	        return TaxRate{}, errors.New("percent cannot be negative")
//	    }
//	    return TaxRate{percent: percent, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t TaxRate) Validate() error {
//	    return t.guard.Validate(ErrTaxRateIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns the supplied error, or ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
