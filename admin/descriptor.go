// Package admin drives the management console. Every entity is described
// by an explicit Descriptor (list columns, searchable fields, bulk-action
// registry) consumed by one generic list handler and one generic action
// handler, so no field introspection happens at request time.
package admin

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrUnknownAction = errors.New("unknown action")
)

// Row is one rendered list line: column name to display value.
type Row map[string]any

// ListOptions narrows a descriptor list query.
type ListOptions struct {
	Search string
}

// Action is a bulk operation over a selected id set. Apply reports how
// many rows it touched.
type Action struct {
	Description string
	Apply       func(db *gorm.DB, ids []uint, params map[string]string) (int64, error)
}

// Descriptor declares how one entity is listed and acted upon in the
// console.
type Descriptor struct {
	Name         string
	Columns      []string
	SearchFields []string
	List         func(db *gorm.DB, opts ListOptions) ([]Row, error)
	Actions      map[string]Action
}

// Registry maps URL entity names to descriptors.
type Registry map[string]*Descriptor

// Lookup resolves an entity name.
func (r Registry) Lookup(entity string) (*Descriptor, error) {
	d, ok := r[entity]
	if !ok {
		return nil, ErrUnknownEntity
	}
	return d, nil
}

// Invoke runs a named bulk action of an entity.
func (r Registry) Invoke(db *gorm.DB, entity, action string, ids []uint, params map[string]string) (int64, error) {
	d, err := r.Lookup(entity)
	if err != nil {
		return 0, err
	}
	act, ok := d.Actions[action]
	if !ok {
		return 0, ErrUnknownAction
	}
	return act.Apply(db, ids, params)
}
