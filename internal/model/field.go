package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a field name is not one of the store fields.
var ErrUnknownField = errors.New("unknown field")

// Field identifies one editable store attribute.
type Field string

const (
	FieldStoreName   Field = "storeName"
	FieldAddress     Field = "address"
	FieldManagerName Field = "managerName"
)

// Fields returns the editable fields in form order.
func Fields() []Field {
	return []Field{FieldStoreName, FieldAddress, FieldManagerName}
}

// Label returns the human readable name of f.
func (f Field) Label() string {
	switch f {
	case FieldStoreName:
		return "store name"
	case FieldAddress:
		return "address"
	case FieldManagerName:
		return "manager name"
	}
	return string(f)
}

// fieldAliases maps accepted spellings (lowercased) to fields.
var fieldAliases = map[string]Field{
	"storename":    FieldStoreName,
	"store-name":   FieldStoreName,
	"store_name":   FieldStoreName,
	"name":         FieldStoreName,
	"address":      FieldAddress,
	"managername":  FieldManagerName,
	"manager-name": FieldManagerName,
	"manager_name": FieldManagerName,
	"manager":      FieldManagerName,
}

// ParseField resolves a field name. Matching is case-insensitive and accepts
// the JSON, YAML and flag spellings.
func ParseField(name string) (Field, error) {
	if f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (expected name, address or manager)", ErrUnknownField, name)
}

// Get returns the value of field f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldStoreName:
		return d.StoreName
	case FieldAddress:
		return d.Address
	case FieldManagerName:
		return d.ManagerName
	}
	return ""
}

// Set assigns value to field f.
func (d *Draft) Set(f Field, value string) error {
	switch f {
	case FieldStoreName:
		d.SetStoreName(value)
	case FieldAddress:
		d.SetAddress(value)
	case FieldManagerName:
		d.SetManagerName(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return nil
}

// SetStoreName sets the store name.
func (d *Draft) SetStoreName(v string) { d.StoreName = v }

// SetAddress sets the address.
func (d *Draft) SetAddress(v string) { d.Address = v }

// SetManagerName sets the manager name.
func (d *Draft) SetManagerName(v string) { d.ManagerName = v }
