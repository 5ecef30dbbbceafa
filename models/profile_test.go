package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRoundtrip(t *testing.T) {
	addr := Address{
		Street:       "Rua das Flores",
		Number:       "123",
		Complement:   "Apto 42",
		Neighborhood: "Jardim Paulista",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01410-000",
	}

	value, err := addr.Value()
	require.NoError(t, err)

	var got Address
	require.NoError(t, got.Scan(value))
	assert.Equal(t, addr, got)
}

func TestAddressScanString(t *testing.T) {
	// sqlite hands jsonb columns back as strings.
	var got Address
	require.NoError(t, got.Scan(`{"street":"Rua A","city":"Campinas"}`))
	assert.Equal(t, "Rua A", got.Street)
	assert.Equal(t, "Campinas", got.City)
}

func TestEmergencyContactRoundtrip(t *testing.T) {
	contact := EmergencyContact{Name: "João Silva", Phone: "+5511988880000", Relationship: "irmão"}

	value, err := contact.Value()
	require.NoError(t, err)

	var got EmergencyContact
	require.NoError(t, got.Scan(value))
	assert.Equal(t, contact, got)
}

func TestScanRejectsUnsupportedType(t *testing.T) {
	var addr Address
	assert.Error(t, addr.Scan(42))
}
