package book

import "github.com/roach88/rolodex/internal/store"

// Contact is one address-book entry.
type Contact struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// State is the single source of truth for the address book.
//
// Contacts is the ordered record list; SearchTerm/SearchResults form a
// transient view maintained by the reducer on every mutation. NextID is the
// counter the reducer uses to assign contact IDs — carrying it in state
// keeps the reducer pure and deterministic.
//
// State values are only replaced or field-mutated inside a reducer; nothing
// outside the store may mutate one directly. Reducers copy slices before
// appending or filtering so earlier snapshots stay intact.
type State struct {
	Contacts      []Contact
	NextID        int
	SearchTerm    string
	SearchResults []Contact
}

// Store is the concrete store type the address book runs on.
type Store = store.Store[State, Action]

// Middleware is the concrete middleware type for this domain.
type Middleware = store.Middleware[State, Action]

// NewStore creates a store holding an empty address book, with the reducer
// already registered. Middlewares and subscribers are wired by the caller
// during setup.
func NewStore(opts ...store.Option[State, Action]) *Store {
	return store.New[State, Action](State{}, opts...).AddReducer(Reduce)
}
