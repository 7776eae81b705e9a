package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates an item with normalized code", func(t *testing.T) {
		item, err := NewItem("Dipirona 500mg", "dip500", "Medicamento", "comprimido")

		require.NoError(t, err)
		assert.Equal(t, "DIP500", item.Code)
		assert.True(t, item.CurrentQuantityCentral.IsZero())
	})

	t.Run("fails without name", func(t *testing.T) {
		_, err := NewItem("", "DIP500", "", "comprimido")
		require.Error(t, err)
	})

	t.Run("fails without code", func(t *testing.T) {
		_, err := NewItem("Dipirona 500mg", " ", "", "comprimido")
		require.Error(t, err)
	})

	t.Run("fails without unit of measure", func(t *testing.T) {
		_, err := NewItem("Dipirona 500mg", "DIP500", "", "")
		require.Error(t, err)
	})
}

func TestItem_ApplyCentralDelta(t *testing.T) {
	item, err := NewItem("Soro Fisiológico", "SF09", "Insumo", "frasco")
	require.NoError(t, err)

	t.Run("accumulates entries", func(t *testing.T) {
		require.NoError(t, item.ApplyCentralDelta(decimal.NewFromInt(100)))
		assert.Equal(t, "100", item.CurrentQuantityCentral.String())
	})

	t.Run("rejects going negative", func(t *testing.T) {
		err := item.ApplyCentralDelta(decimal.NewFromInt(-150))

		require.Error(t, err)
		assert.Equal(t, "100", item.CurrentQuantityCentral.String())
	})
}

func TestItem_IsBelowMinimumCentral(t *testing.T) {
	item, err := NewItem("Luva P", "LUVP", "Insumo", "par")
	require.NoError(t, err)
	require.NoError(t, item.SetMinQuantityCentral(decimal.NewFromInt(10)))

	assert.True(t, item.IsBelowMinimumCentral())

	require.NoError(t, item.ApplyCentralDelta(decimal.NewFromInt(10)))
	assert.False(t, item.IsBelowMinimumCentral())
}
