package stock

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigKey(t *testing.T) {
	itemID := uuid.New()
	unitID := uuid.New()
	hospitalID := uuid.New()

	t.Run("central key", func(t *testing.T) {
		key, err := ConfigKey(itemID, LocationCentral, uuid.Nil)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%s_central", itemID), key)
	})

	t.Run("unit key is independent of the hospital type", func(t *testing.T) {
		key, err := ConfigKey(itemID, LocationUnit, unitID)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%s_%s", itemID, unitID), key)
	})

	t.Run("general-stock key", func(t *testing.T) {
		key, err := ConfigKey(itemID, LocationUBSGeneral, hospitalID)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%s_%s_UBSGENERAL", itemID, hospitalID), key)
	})

	t.Run("same inputs always produce the same key", func(t *testing.T) {
		first, err := ConfigKey(itemID, LocationUnit, unitID)
		require.NoError(t, err)
		second, err := ConfigKey(itemID, LocationUnit, unitID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("fails with nil item", func(t *testing.T) {
		_, err := ConfigKey(uuid.Nil, LocationCentral, uuid.Nil)
		require.Error(t, err)
	})

	t.Run("fails with nil location for unit kind", func(t *testing.T) {
		_, err := ConfigKey(itemID, LocationUnit, uuid.Nil)
		require.Error(t, err)
	})

	t.Run("fails with unknown kind", func(t *testing.T) {
		_, err := ConfigKey(itemID, LocationKind("warehouse"), unitID)
		require.Error(t, err)
	})
}

func TestConfig_ApplyDelta(t *testing.T) {
	t.Run("entry increases the counter", func(t *testing.T) {
		cfg, err := NewUnitConfig(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)

		err = cfg.ApplyDelta(decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, "10", cfg.CurrentQuantity.String())
	})

	t.Run("rejects a delta that would drive the counter negative", func(t *testing.T) {
		cfg, err := NewUnitConfig(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, cfg.ApplyDelta(decimal.NewFromInt(15)))

		err = cfg.ApplyDelta(decimal.NewFromInt(-20))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, "15", cfg.CurrentQuantity.String())
	})

	t.Run("allows draining to exactly zero", func(t *testing.T) {
		cfg, err := NewUBSGeneralConfig(uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, cfg.ApplyDelta(decimal.NewFromInt(5)))

		err = cfg.ApplyDelta(decimal.NewFromInt(-5))

		require.NoError(t, err)
		assert.True(t, cfg.CurrentQuantity.IsZero())
	})
}

func TestConfig_SetLevels(t *testing.T) {
	cfg, err := NewUnitConfig(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)

	t.Run("sets strategic and minimum levels", func(t *testing.T) {
		err := cfg.SetLevels(decimal.NewFromInt(50), decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, "50", cfg.StrategicLevel.String())
		assert.Equal(t, "10", cfg.MinQuantity.String())
	})

	t.Run("rejects negative levels", func(t *testing.T) {
		err := cfg.SetLevels(decimal.NewFromInt(-1), decimal.Zero)
		require.Error(t, err)
	})
}

func TestConfig_Thresholds(t *testing.T) {
	cfg, err := NewUnitConfig(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, cfg.SetLevels(decimal.NewFromInt(30), decimal.NewFromInt(10)))
	require.NoError(t, cfg.ApplyDelta(decimal.NewFromInt(20)))

	assert.False(t, cfg.IsBelowMinimum())
	assert.True(t, cfg.IsBelowStrategicLevel())

	require.NoError(t, cfg.ApplyDelta(decimal.NewFromInt(-15)))
	assert.True(t, cfg.IsBelowMinimum())
}
