// AngelaMos | 2026
// policy.go

package policy

import (
	"github.com/google/uuid"
)

type Operation int

const (
	ListUsers Operation = iota + 1
	ReadUser
	CreateUser
	ListEntries
	ReadEntry
	CreateEntry
	UpdateEntry
	DeleteEntry
)

func (o Operation) String() string {
	switch o {
	case ListUsers:
		return "list_users"
	case ReadUser:
		return "read_user"
	case CreateUser:
		return "create_user"
	case ListEntries:
		return "list_entries"
	case ReadEntry:
		return "read_entry"
	case CreateEntry:
		return "create_entry"
	case UpdateEntry:
		return "update_entry"
	case DeleteEntry:
		return "delete_entry"
	default:
		return "unknown"
	}
}

// Subject is the authenticated caller as seen by the policy. Admin must come
// from the current directory record, never from a cached session.
type Subject struct {
	ID    uuid.UUID
	Admin bool
}

// Resource describes the target of an operation. OwnerID is the owning user
// for entries and the user itself for user records. It is uuid.Nil for
// collection-level operations.
type Resource struct {
	OwnerID uuid.UUID
}

type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

func (d Decision) Allowed() bool {
	return d == Allow
}

// Authorize evaluates the access rules. The first matching rule wins and
// anything not matched is denied.
func Authorize(subject Subject, op Operation, res Resource) Decision {
	if subject.ID == uuid.Nil {
		return Deny
	}

	switch op {
	case ListUsers, CreateUser:
		return Decision(subject.Admin)

	case ReadUser:
		return Decision(subject.Admin || subject.ID == res.OwnerID)

	case ReadEntry:
		if subject.Admin {
			return Allow
		}
		return Decision(subject.ID == res.OwnerID)

	case CreateEntry, UpdateEntry, DeleteEntry, ListEntries:
		return Decision(subject.ID == res.OwnerID)
	}

	return Deny
}
