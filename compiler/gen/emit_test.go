package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitIntBlock(t *testing.T) {
	spec, err := Resolve(categoriesTable(), ParseRule("Categories", defaultMultiPrefix))
	require.NoError(t, err)

	out := Emit(spec, Block{
		EnumName: "CategoriesEnum",
		Members: []Member{
			{Name: "Beverages", Value: "1"},
			{Name: "Condiments", Value: "2"},
		},
	})

	assert.Contains(t, out, "// CategoriesEnum enumerates rows of table Categories (CategoryID / CategoryName).")
	assert.Contains(t, out, "type CategoriesEnum int")
	assert.Regexp(t, `CategoriesEnumBeverages\s+CategoriesEnum = 1`, out)
	assert.Regexp(t, `CategoriesEnumCondiments\s+CategoriesEnum = 2`, out)
	// Integer blocks carry values unquoted and need no String method.
	assert.NotContains(t, out, `"1"`)
	assert.NotContains(t, out, "func (e CategoriesEnum) String()")
}

func TestEmitStringBlock(t *testing.T) {
	r := ParseRule("^muck_lookup$:MULTI=LookupKey:LookupVal:LookupDescLong", defaultMultiPrefix)
	spec, err := Resolve(muckTable(), r)
	require.NoError(t, err)

	out := Emit(spec, Block{
		EnumName: "AssignStatusStrEnumStr",
		Members: []Member{
			{Name: "Fully", Value: "F"},
			{Name: "Partly", Value: "P"},
		},
	})

	assert.Contains(t, out, "type AssignStatusStrEnumStr string")
	assert.Regexp(t, `AssignStatusStrEnumStrFully\s+AssignStatusStrEnumStr = "F"`, out)
	assert.Regexp(t, `AssignStatusStrEnumStrPartly\s+AssignStatusStrEnumStr = "P"`, out)
	assert.Contains(t, out, "func (e AssignStatusStrEnumStr) String() string")
	assert.Contains(t, out, "return string(e)")
}

func TestEmitUnderscoreMember(t *testing.T) {
	spec, err := Resolve(categoriesTable(), ParseRule("Categories", defaultMultiPrefix))
	require.NoError(t, err)

	out := Emit(spec, Block{
		EnumName: "CategoriesEnum",
		Members:  []Member{{Name: "_", Value: "9"}},
	})

	assert.Regexp(t, `CategoriesEnum_\s+CategoriesEnum = 9`, out)
}

func TestEmitDeterministic(t *testing.T) {
	spec, err := Resolve(categoriesTable(), ParseRule("Categories", defaultMultiPrefix))
	require.NoError(t, err)

	b := Block{
		EnumName: "CategoriesEnum",
		Members:  []Member{{Name: "Beverages", Value: "1"}},
	}
	assert.Equal(t, Emit(spec, b), Emit(spec, b))
}
