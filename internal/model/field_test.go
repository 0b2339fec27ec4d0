package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		input string
		want  Field
	}{
		{"storeName", FieldStoreName},
		{"STORENAME", FieldStoreName},
		{"store-name", FieldStoreName},
		{"store_name", FieldStoreName},
		{"name", FieldStoreName},
		{" address ", FieldAddress},
		{"managerName", FieldManagerName},
		{"manager", FieldManagerName},
		{"manager_name", FieldManagerName},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseField(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseField("id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestDraftSetGet(t *testing.T) {
	var d Draft
	require.NoError(t, d.Set(FieldStoreName, "Downtown Electronics"))
	require.NoError(t, d.Set(FieldAddress, "1 Main St"))
	require.NoError(t, d.Set(FieldManagerName, "A. Lee"))

	assert.Equal(t, "Downtown Electronics", d.Get(FieldStoreName))
	assert.Equal(t, "1 Main St", d.Get(FieldAddress))
	assert.Equal(t, "A. Lee", d.Get(FieldManagerName))
	assert.Equal(t, "", d.Get(Field("id")))

	err := d.Set(Field("id"), "9")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestFieldLabels(t *testing.T) {
	assert.Equal(t, []Field{FieldStoreName, FieldAddress, FieldManagerName}, Fields())
	assert.Equal(t, "store name", FieldStoreName.Label())
	assert.Equal(t, "manager name", FieldManagerName.Label())
	assert.Equal(t, "other", Field("other").Label())
}
