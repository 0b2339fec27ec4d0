// Package model defines the core data structures for storectl.
package model

import (
	"fmt"
	"strings"
)

// Store is a managed store record. ID is assigned by the server and never
// changes once the store exists.
type Store struct {
	ID          string `json:"id" yaml:"id"`
	StoreName   string `json:"storeName" yaml:"store_name"`
	Address     string `json:"address" yaml:"address"`
	ManagerName string `json:"managerName" yaml:"manager_name"`
}

// Draft is a Store without an ID: the editable part of a record.
type Draft struct {
	StoreName   string `json:"storeName" yaml:"store_name"`
	Address     string `json:"address" yaml:"address"`
	ManagerName string `json:"managerName" yaml:"manager_name"`
}

// Draft returns the editable fields of s.
func (s Store) Draft() Draft {
	return Draft{
		StoreName:   s.StoreName,
		Address:     s.Address,
		ManagerName: s.ManagerName,
	}
}

// WithID returns a Store carrying d's fields under the given id.
func (d Draft) WithID(id string) Store {
	return Store{
		ID:          id,
		StoreName:   d.StoreName,
		Address:     d.Address,
		ManagerName: d.ManagerName,
	}
}

// IsZero reports whether every field of d is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validate checks that all three fields are non-empty, reporting the first
// missing one in form order.
func (d Draft) Validate() error {
	for _, f := range Fields() {
		if strings.TrimSpace(d.Get(f)) == "" {
			return &ValidationError{Field: f.Label(), Message: "must not be empty"}
		}
	}
	return nil
}

// Validate checks the ID and every editable field.
func (s Store) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Field: "store ID", Message: "must not be empty"}
	}
	return s.Draft().Validate()
}
