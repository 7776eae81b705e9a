package facility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHospital(t *testing.T) {
	t.Run("defaults to ordinary hospital", func(t *testing.T) {
		h, err := NewHospital("Hospital Municipal", "Rua A, 100", "")

		require.NoError(t, err)
		assert.Equal(t, FacilityTypeHospital, h.Type)
		assert.False(t, h.IsPrimaryCare())
	})

	t.Run("primary care facility owns a general bucket", func(t *testing.T) {
		h, err := NewHospital("UBS Centro", "", FacilityTypePrimaryCare)

		require.NoError(t, err)
		assert.True(t, h.IsPrimaryCare())
	})

	t.Run("fails without a name", func(t *testing.T) {
		_, err := NewHospital("  ", "", FacilityTypeHospital)
		require.Error(t, err)
	})

	t.Run("fails with an unknown type", func(t *testing.T) {
		_, err := NewHospital("Hospital Municipal", "", FacilityType("clinic"))
		require.Error(t, err)
	})
}

func TestInferFacilityType(t *testing.T) {
	assert.Equal(t, FacilityTypePrimaryCare, InferFacilityType("UBS Vila Nova"))
	assert.Equal(t, FacilityTypePrimaryCare, InferFacilityType("Posto ubs central"))
	assert.Equal(t, FacilityTypeHospital, InferFacilityType("Hospital Regional"))
}

func TestNewServedUnit(t *testing.T) {
	hospitalID := uuid.New()

	t.Run("creates a unit", func(t *testing.T) {
		u, err := NewServedUnit("Farmácia", "Térreo", hospitalID)

		require.NoError(t, err)
		assert.Equal(t, hospitalID, u.HospitalID)
	})

	t.Run("fails without an owning hospital", func(t *testing.T) {
		_, err := NewServedUnit("Farmácia", "", uuid.Nil)
		require.Error(t, err)
	})
}
