package billing_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academy-api/internal/application/billing"
)

func TestNewOrderID_Formato(t *testing.T) {
	now := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	id := billing.NewOrderID(19, now)

	parts := strings.Split(id, "-")
	require.Len(t, parts, 4, "ord-<lectureId>-<millis36>-<sufijo>")
	assert.Equal(t, "ord", parts[0])
	assert.Equal(t, "19", parts[1])

	millis, err := strconv.ParseInt(parts[2], 36, 64)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), millis)

	// Sufijo de 2 bytes en hex
	assert.Len(t, parts[3], 4)
}

func TestNewOrderID_SufijoEvitaColisiones(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id := billing.NewOrderID(19, now)
		assert.False(t, seen[id], "dos órdenes del mismo milisegundo no deben chocar")
		seen[id] = true
	}
}

func TestNewOrderID_EsOrdenablePorTiempo(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	id1 := billing.NewOrderID(7, t1)
	id2 := billing.NewOrderID(7, t2)

	// Mismo lecture id y misma longitud de millis: el orden lexicográfico
	// sigue al temporal.
	assert.Less(t, id1[:len(id1)-5], id2[:len(id2)-5])
}
