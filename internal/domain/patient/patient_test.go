package patient

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSUSCardNumber(t *testing.T) {
	t.Run("accepts 15 digits", func(t *testing.T) {
		assert.NoError(t, ValidateSUSCardNumber("123456789012345"))
	})

	t.Run("rejects 14 digits with a message naming the rule", func(t *testing.T) {
		err := ValidateSUSCardNumber("12345678901234")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "15 dígitos")
	})

	t.Run("rejects 16 digits", func(t *testing.T) {
		require.Error(t, ValidateSUSCardNumber("1234567890123456"))
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		err := ValidateSUSCardNumber("12345678901234a")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "15 dígitos")
	})
}

func TestNewPatient(t *testing.T) {
	t.Run("creates a patient", func(t *testing.T) {
		p, err := NewPatient("  Maria Silva ", "123456789012345")

		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", p.Name)
		assert.Equal(t, "123456789012345", p.SUSCardNumber)
	})

	t.Run("fails without a name", func(t *testing.T) {
		_, err := NewPatient("  ", "123456789012345")
		require.Error(t, err)
	})

	t.Run("fails with a short card number", func(t *testing.T) {
		_, err := NewPatient("Maria Silva", "123")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "15 dígitos")
	})
}

func TestPatient_SetDetails(t *testing.T) {
	p, err := NewPatient("João Souza", "987654321098765")
	require.NoError(t, err)

	t.Run("rejects unknown sex value", func(t *testing.T) {
		err := p.SetDetails(nil, "", "", Sex("X"), "", uuid.Nil)
		require.Error(t, err)
	})
}
