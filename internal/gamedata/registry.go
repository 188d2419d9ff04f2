package gamedata

import (
	"errors"
	"fmt"
)

// ErrNoDifficulties is returned when the difficulty table is empty.
var ErrNoDifficulties = errors.New("no difficulties loaded from difficulties.json")

// DifficultyRegistry holds loaded difficulty definitions in display order.
type DifficultyRegistry struct {
	byID map[string]*DifficultyDef
	all  []DifficultyDef
}

// NewDifficultyRegistry validates definitions and builds a registry.
func NewDifficultyRegistry(defs []DifficultyDef) (*DifficultyRegistry, error) {
	if len(defs) == 0 {
		return nil, ErrNoDifficulties
	}
	registry := &DifficultyRegistry{
		byID: make(map[string]*DifficultyDef, len(defs)),
		all:  defs,
	}
	for i := range defs {
		if err := defs[i].validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.byID[defs[i].ID]; dup {
			return nil, fmt.Errorf("duplicate difficulty id %q", defs[i].ID)
		}
		registry.byID[defs[i].ID] = &defs[i]
	}
	return registry, nil
}

// LoadDifficultyRegistry loads and creates a registry from the embedded difficulties.json.
func LoadDifficultyRegistry() (*DifficultyRegistry, error) {
	defs, err := LoadDifficulties()
	if err != nil {
		return nil, err
	}
	return NewDifficultyRegistry(defs)
}

// MustLoadDifficultyRegistry loads a registry, panicking on error.
func MustLoadDifficultyRegistry() *DifficultyRegistry {
	registry, err := LoadDifficultyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the difficulty with the given ID, or nil if not found.
func (r *DifficultyRegistry) GetByID(id string) *DifficultyDef {
	return r.byID[id]
}

// GetByIndex returns the nth difficulty in display order, or nil.
func (r *DifficultyRegistry) GetByIndex(index int) *DifficultyDef {
	if index < 0 || index >= len(r.all) {
		return nil
	}
	return &r.all[index]
}

// All returns all difficulty definitions.
func (r *DifficultyRegistry) All() []DifficultyDef {
	return r.all
}

// Count returns the number of difficulties in the registry.
func (r *DifficultyRegistry) Count() int {
	return len(r.all)
}
