package schema_test

import (
	"testing"

	"github.com/syssam/enumgen/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumn(t *testing.T) {
	tbl := &schema.Table{
		Name: "Categories",
		Columns: []*schema.Column{
			{Name: "CategoryID", Type: "int", PrimaryKey: true},
			{Name: "CategoryName", Type: "varchar", IsString: true},
		},
	}

	t.Run("exact_match", func(t *testing.T) {
		col := tbl.Column("CategoryID")
		require.NotNil(t, col)
		assert.True(t, col.PrimaryKey)
	})

	t.Run("case_insensitive", func(t *testing.T) {
		col := tbl.Column("categoryname")
		require.NotNil(t, col)
		assert.True(t, col.IsString)
	})

	t.Run("missing", func(t *testing.T) {
		assert.Nil(t, tbl.Column("Description"))
	})
}

func TestTableIdent(t *testing.T) {
	t.Run("clean_name_preferred", func(t *testing.T) {
		tbl := &schema.Table{Name: "order details", CleanName: "OrderDetails"}
		assert.Equal(t, "OrderDetails", tbl.Ident())
	})

	t.Run("sanitized_fallback", func(t *testing.T) {
		tbl := &schema.Table{Name: "order details"}
		assert.Equal(t, "order_details", tbl.Ident())
	})
}
