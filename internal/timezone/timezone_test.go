package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime_NoFusoDaBarbearia(t *testing.T) {
	got, err := ParseDateTime("America/Sao_Paulo", "2024-06-10", "14:30")
	require.NoError(t, err)

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	assert.Equal(t, time.Date(2024, 6, 10, 14, 30, 0, 0, loc), got)
}

func TestParseDateTime_FusoDesconhecidoCaiNoPadrao(t *testing.T) {
	got, err := ParseDateTime("Marte/Olympus", "2024-06-10", "14:30")
	require.NoError(t, err)

	loc, _ := time.LoadLocation(DefaultTimezone)
	assert.Equal(t, loc.String(), got.Location().String())
}

func TestParseDateTime_FormatoInvalido(t *testing.T) {
	_, err := ParseDateTime("America/Sao_Paulo", "10/06/2024", "14:30")
	assert.Error(t, err)

	_, err = ParseDateTime("America/Sao_Paulo", "2024-06-10", "2pm")
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Olympus"))
}
