// Package mergelog provides the observer surface the resolver calls
// during planning: exactly one of Add, Replace, Merge, or Rename per
// planned Index. Loggers are side-effect-only and never influence
// planning.
package mergelog

import "github.com/javanhut/multimerge/internal/identity"

// Logger receives one event per planned Index during resolution.
type Logger interface {
	// Add reports an Index whose path was unique across all projects.
	Add(idx identity.Index)
	// Replace reports that with replaces existing (last writer wins).
	Replace(existing, with identity.Index)
	// Merge reports that with will be merged with existing.
	Merge(existing, with identity.Index)
	// Rename reports that renamed collided with existing and will be
	// exported under a renamed destination. renamed is the planned
	// Index as the resolver saw it, not its renamed destination.
	Rename(existing, renamed identity.Index)
}

// Nop is a Logger that discards every event, useful as a default when
// no observer was configured.
type Nop struct{}

func (Nop) Add(identity.Index)                  {}
func (Nop) Replace(existing, with identity.Index) {}
func (Nop) Merge(existing, with identity.Index)   {}
func (Nop) Rename(existing, renamed identity.Index) {}

// Multi fans one event out to several loggers, in order. Used to run
// the structured logrus logger and the store-backed audit logger
// side by side.
type Multi []Logger

func (m Multi) Add(idx identity.Index) {
	for _, l := range m {
		l.Add(idx)
	}
}

func (m Multi) Replace(existing, with identity.Index) {
	for _, l := range m {
		l.Replace(existing, with)
	}
}

func (m Multi) Merge(existing, with identity.Index) {
	for _, l := range m {
		l.Merge(existing, with)
	}
}

func (m Multi) Rename(existing, renamed identity.Index) {
	for _, l := range m {
		l.Rename(existing, renamed)
	}
}
