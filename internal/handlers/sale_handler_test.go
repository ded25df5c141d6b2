package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbeariahub/api/internal/timezone"
)

const testTZ = "America/Sao_Paulo"

func periodContext(query string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sales?"+query, nil)
	return c, w
}

func TestParsePeriod_SemFiltroUsaMesAtual(t *testing.T) {
	c, _ := periodContext("")

	start, end, ok := parsePeriod(c, testTZ)
	require.True(t, ok)

	now := timezone.NowIn(testTZ)
	assert.Equal(t, now.Year(), start.Year())
	assert.Equal(t, now.Month(), start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, start.AddDate(0, 1, 0), end)
}

func TestParsePeriod_IntervaloFechado(t *testing.T) {
	c, _ := periodContext("from=2024-06-01&to=2024-06-10")

	start, end, ok := parsePeriod(c, testTZ)
	require.True(t, ok)

	loc := timezone.Location(testTZ)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), start)
	// to é inclusivo: o fim cai na meia-noite do dia seguinte
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), end)
}

func TestParsePeriod_SomenteFromVaiAteHoje(t *testing.T) {
	c, _ := periodContext("from=2024-06-01")

	start, end, ok := parsePeriod(c, testTZ)
	require.True(t, ok)

	loc := timezone.Location(testTZ)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), start)

	now := timezone.NowIn(testTZ)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	assert.Equal(t, today.AddDate(0, 0, 1), end)
}

func TestParsePeriod_SomenteToComecaAberto(t *testing.T) {
	c, _ := periodContext("to=2024-06-10")

	start, end, ok := parsePeriod(c, testTZ)
	require.True(t, ok)

	assert.True(t, start.IsZero())

	loc := timezone.Location(testTZ)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), end)
}

func TestParsePeriod_DataInvalida(t *testing.T) {
	c, w := periodContext("from=junho")

	_, _, ok := parsePeriod(c, testTZ)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParsePeriod_FimAntesDoInicio(t *testing.T) {
	c, w := periodContext("from=2024-06-10&to=2024-06-01")

	_, _, ok := parsePeriod(c, testTZ)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
