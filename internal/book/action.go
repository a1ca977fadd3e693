package book

import "fmt"

// Action is the closed set of commands that can evolve the address book.
//
// Actions are immutable values; the reducer matches structurally on the
// concrete type. The isAction marker keeps the set closed to this package.
type Action interface {
	isAction()
	fmt.Stringer
}

// AddContact appends a new contact. The reducer assigns the ID.
type AddContact struct {
	Name  string
	Email string
	Phone string
}

// RemoveContactByID removes the contact with the given ID. Removing an ID
// that does not exist is a no-op (the dispatch still lands in history).
type RemoveContactByID struct {
	ID int
}

// RemoveAllContacts empties the contact list.
type RemoveAllContacts struct{}

// Search sets the transient search view to contacts matching Term.
type Search struct {
	Term string
}

// ResetState replaces the entire state with the carried value.
type ResetState struct {
	State State
}

// AsyncAddContactRequested triggers the asynchronous contact-add flow. The
// async-add middleware substitutes it with a concrete AddContact, so this
// variant never reaches the reducers or history on the default pipeline.
type AsyncAddContactRequested struct{}

func (AddContact) isAction()               {}
func (RemoveContactByID) isAction()        {}
func (RemoveAllContacts) isAction()        {}
func (Search) isAction()                   {}
func (ResetState) isAction()               {}
func (AsyncAddContactRequested) isAction() {}

func (a AddContact) String() string {
	return fmt.Sprintf("AddContact(%q, %q, %q)", a.Name, a.Email, a.Phone)
}

func (a RemoveContactByID) String() string {
	return fmt.Sprintf("RemoveContactByID(%d)", a.ID)
}

func (RemoveAllContacts) String() string { return "RemoveAllContacts" }

func (a Search) String() string { return fmt.Sprintf("Search(%q)", a.Term) }

func (a ResetState) String() string {
	return fmt.Sprintf("ResetState(%d contacts)", len(a.State.Contacts))
}

func (AsyncAddContactRequested) String() string { return "AsyncAddContactRequested" }
