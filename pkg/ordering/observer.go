package ordering

import (
	"time"
)

// Observer receives the outcome of every write a Manager performs.
type Observer interface {
	ObserveReorder(scope Scope, size int, took time.Duration, err error)
	ObserveWrite(scope Scope, op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveReorder(Scope, int, time.Duration, error) {}
func (nopObserver) ObserveWrite(Scope, string, error)               {}
