package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	DueDate Nullable[string] `json:"dueDate"`
}

func TestNullable_DistinguishesMissingNullAndValue(t *testing.T) {
	var missing patch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.False(t, missing.DueDate.Set)
	assert.Nil(t, missing.DueDate.Value)

	var null patch
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &null))
	assert.True(t, null.DueDate.Set)
	assert.Nil(t, null.DueDate.Value)

	var value patch
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2026-01-02"}`), &value))
	assert.True(t, value.DueDate.Set)
	require.NotNil(t, value.DueDate.Value)
	assert.Equal(t, "2026-01-02", *value.DueDate.Value)
}

func TestNullable_RejectsWrongType(t *testing.T) {
	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":42}`), &p))
}

func TestTaskEnums(t *testing.T) {
	assert.True(t, ValidStatus("in-progress"))
	assert.False(t, ValidStatus("blocked"))
	assert.False(t, ValidStatus(""))
	assert.True(t, ValidPriority("high"))
	assert.False(t, ValidPriority("urgent"))
}
