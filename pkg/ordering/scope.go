package ordering

import (
	"github.com/google/uuid"
)

// Scope identifies a set of sibling records sharing one order sequence.
type Scope struct {
	Collection string
	Parent     uuid.UUID
}

func RootScope(collection string) Scope {
	return Scope{Collection: collection}
}

func ChildScope(collection string, parent uuid.UUID) Scope {
	return Scope{Collection: collection, Parent: parent}
}

func (s Scope) IsRoot() bool {
	return s.Parent == uuid.Nil
}

func (s Scope) String() string {
	if s.IsRoot() {
		return s.Collection
	}
	return s.Collection + "/" + s.Parent.String()
}
