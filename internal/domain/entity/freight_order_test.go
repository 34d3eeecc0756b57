package entity

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFreightOrderComputesTotal(t *testing.T) {
	t.Parallel()

	order := NewFreightOrder(
		"OF-20240101-0001",
		FreightParty{Name: "Agrícola Sur", RUT: "76.123.456-7", Address: "Ruta 5 km 620"},
		FreightParty{Name: "Ferretería Lonqui", RUT: "77.987.654-3", Address: "O'Higgins 200"},
		45000,
		5000,
		uuid.New(),
	)

	assert.Equal(t, float64(50000), order.TotalValue)
	assert.Equal(t, FreightPending, order.Status)
	assert.Equal(t, "manual", order.GenerationType)
	assert.True(t, order.Active)
	assert.WithinDuration(t, time.Now(), order.IssuedAt, time.Second)
}

func TestNewFreightOrderNumberFormat(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^OF-20240615-\d{4}$`)

	for range 20 {
		number := NewFreightOrderNumber(issuedAt)
		require.Regexp(t, pattern, number)
	}
}

func TestFreightOrderStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, status := range []FreightOrderStatus{FreightPending, FreightConfirmed, FreightInTransit, FreightDelivered, FreightCancelled} {
		assert.True(t, status.IsValid())
	}
	assert.False(t, FreightOrderStatus("registrada").IsValid())
	assert.False(t, FreightOrderStatus("").IsValid())
}
