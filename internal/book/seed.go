package book

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a contact seed:
//
//	contacts:
//	  - name: Ada Lovelace
//	    email: ada@example.com
//	    phone: 555-0100
type seedFile struct {
	Contacts []seedContact `yaml:"contacts"`
}

type seedContact struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// LoadSeed parses a YAML seed file into a fresh State, suitable for a
// ResetState dispatch. IDs are assigned by folding each contact through the
// reducer, exactly as live AddContact dispatches would.
func LoadSeed(path string) (State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return State{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	s := State{}
	for i, c := range f.Contacts {
		if c.Name == "" {
			return State{}, fmt.Errorf("seed file %s: contact %d has no name", path, i)
		}
		s = Reduce(s, AddContact{Name: c.Name, Email: c.Email, Phone: c.Phone})
	}
	return s, nil
}
