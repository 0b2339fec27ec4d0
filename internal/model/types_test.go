package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	full := Draft{StoreName: "Downtown Electronics", Address: "1 Main St", ManagerName: "A. Lee"}

	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{name: "complete", draft: full},
		{name: "missing name", draft: Draft{Address: "1 Main St", ManagerName: "A. Lee"}, wantField: "store name"},
		{name: "missing address", draft: Draft{StoreName: "X", ManagerName: "A. Lee"}, wantField: "address"},
		{name: "missing manager", draft: Draft{StoreName: "X", Address: "Y"}, wantField: "manager name"},
		{name: "whitespace only", draft: Draft{StoreName: "   ", Address: "Y", ManagerName: "Z"}, wantField: "store name"},
		{name: "all empty reports first field", draft: Draft{}, wantField: "store name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, "invalid "+tt.wantField+": must not be empty", err.Error())
		})
	}
}

func TestStoreValidate(t *testing.T) {
	s := Store{ID: "42", StoreName: "X", Address: "Y", ManagerName: "Z"}
	assert.NoError(t, s.Validate())

	s.ID = " "
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store ID")

	s.ID = "42"
	s.ManagerName = ""
	err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manager name")
}

func TestStoreDraftRoundTrip(t *testing.T) {
	s := Store{ID: "7", StoreName: "X", Address: "Y", ManagerName: "Z"}
	d := s.Draft()
	assert.Equal(t, Draft{StoreName: "X", Address: "Y", ManagerName: "Z"}, d)
	assert.Equal(t, s, d.WithID("7"))
	assert.False(t, d.IsZero())
	assert.True(t, Draft{}.IsZero())
}

func TestValidationErrorWithoutField(t *testing.T) {
	err := &ValidationError{Message: "store ID is required"}
	assert.Equal(t, "store ID is required", err.Error())
}
