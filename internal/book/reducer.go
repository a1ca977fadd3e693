package book

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Reduce folds one action into the state. Pure and total: no I/O, no
// blocking, and an unrecognized action returns the input state unchanged.
//
// The search view is recomputed after every mutation so it never shows
// contacts that no longer exist.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddContact:
		contacts := make([]Contact, len(s.Contacts), len(s.Contacts)+1)
		copy(contacts, s.Contacts)
		s.Contacts = append(contacts, Contact{
			ID:    s.NextID,
			Name:  a.Name,
			Email: a.Email,
			Phone: a.Phone,
		})
		s.NextID++
		return refreshSearch(s)

	case RemoveContactByID:
		contacts := make([]Contact, 0, len(s.Contacts))
		for _, c := range s.Contacts {
			if c.ID != a.ID {
				contacts = append(contacts, c)
			}
		}
		s.Contacts = contacts
		return refreshSearch(s)

	case RemoveAllContacts:
		s.Contacts = nil
		return refreshSearch(s)

	case Search:
		s.SearchTerm = a.Term
		return refreshSearch(s)

	case ResetState:
		return a.State

	default:
		return s
	}
}

// refreshSearch recomputes SearchResults for the current term. An empty
// term means no active search view.
func refreshSearch(s State) State {
	if s.SearchTerm == "" {
		s.SearchResults = nil
		return s
	}
	term := foldTerm(s.SearchTerm)
	var results []Contact
	for _, c := range s.Contacts {
		if matchesContact(c, term) {
			results = append(results, c)
		}
	}
	s.SearchResults = results
	return s
}

// matchesContact reports whether any contact field contains the folded term.
func matchesContact(c Contact, foldedTerm string) bool {
	return strings.Contains(foldTerm(c.Name), foldedTerm) ||
		strings.Contains(foldTerm(c.Email), foldedTerm) ||
		strings.Contains(foldTerm(c.Phone), foldedTerm)
}

// foldTerm normalizes to NFC and case-folds, so "müller" matches "MÜLLER"
// regardless of how the input was composed. A Caser is stateful, so one is
// built per call rather than shared.
func foldTerm(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
