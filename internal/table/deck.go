package table

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Deck is a set of tables keyed by name. A loaded deck is never mutated
// and may be shared between goroutines.
type Deck struct {
	tables map[string]*Table
}

type deckFile struct {
	Tables []Table `yaml:"tables"`
}

// NewDeck validates the tables and indexes them by name.
func NewDeck(tables ...Table) (*Deck, error) {
	d := &Deck{tables: make(map[string]*Table, len(tables))}
	for i := range tables {
		t := tables[i]
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := d.tables[t.Name]; dup {
			return nil, fmt.Errorf("table: duplicate table %q", t.Name)
		}
		d.tables[t.Name] = &t
	}
	return d, nil
}

// LoadDeck reads a YAML deck file.
func LoadDeck(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck: %w", err)
	}
	defer f.Close()
	return DecodeDeck(f)
}

// DecodeDeck parses a YAML deck of the form
//
//	tables:
//	  - name: cd
//	    axes: [[0, 0.8, 1.2, 3]]
//	    data: [0.3, 0.35, 0.6, 0.4]
func DecodeDeck(r io.Reader) (*Deck, error) {
	var file deckFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	return NewDeck(file.Tables...)
}

// Save writes the deck as YAML, tables ordered by name.
func (d *Deck) Save(w io.Writer) error {
	file := deckFile{}
	for _, name := range d.Names() {
		file.Tables = append(file.Tables, *d.tables[name])
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	return enc.Close()
}

// Get returns the named table.
func (d *Deck) Get(name string) (*Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Names lists the table names in sorted order.
func (d *Deck) Names() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookUp interpolates the named table at args.
func (d *Deck) LookUp(name string, args ...float64) (float64, error) {
	t, err := d.Get(name)
	if err != nil {
		return 0, err
	}
	return t.LookUp(args...)
}
