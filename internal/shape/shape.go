// Package shape composes directory-shape predicates that decide whether
// a candidate directory looks enough like a project. A Composite is a
// conjunction of Criteria - it never feeds a Strategy decision. No other
// package in this module calls it; fsproject scans whatever roots it is
// given without a shape check.
package shape

import (
	"os"
	"path/filepath"
)

// Criteria inspects a candidate project root and reports whether it
// satisfies one shape rule.
type Criteria func(root string) bool

// Composite is a conjunction of Criteria: Check reports true only if
// every rule passes, matching the all-of semantics the original
// criteria.rs composer used.
type Composite struct {
	criteria []Criteria
}

// NewComposite builds an empty Composite, equivalent to "always pass".
func NewComposite() *Composite {
	return &Composite{}
}

// With appends a criteria and returns the Composite for chaining.
func (c *Composite) With(criteria Criteria) *Composite {
	c.criteria = append(c.criteria, criteria)
	return c
}

// Check reports whether root satisfies every registered criteria.
func (c *Composite) Check(root string) bool {
	for _, criteria := range c.criteria {
		if !criteria(root) {
			return false
		}
	}
	return true
}

// Len reports how many criteria are registered.
func (c *Composite) Len() int {
	return len(c.criteria)
}

// IsEmpty reports whether no criteria are registered.
func (c *Composite) IsEmpty() bool {
	return len(c.criteria) == 0
}

// HasEntry builds a Criteria requiring a named entry (file or
// directory) directly under root, such as "go.mod" or "package.json".
func HasEntry(name string) Criteria {
	return func(root string) bool {
		_, err := os.Stat(filepath.Join(root, name))
		return err == nil
	}
}

// IsDir builds a Criteria requiring root itself to be a directory.
func IsDir() Criteria {
	return func(root string) bool {
		info, err := os.Stat(root)
		return err == nil && info.IsDir()
	}
}
