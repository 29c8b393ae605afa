package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
)

func TestCheckBatchTransition(t *testing.T) {
	noop, err := inventory.CheckBatchTransition(entity.BatchInProgress, entity.BatchCompleted)
	require.NoError(t, err)
	assert.False(t, noop)

	_, err = inventory.CheckBatchTransition(entity.BatchInProgress, entity.BatchQualityCheck)
	require.NoError(t, err)

	_, err = inventory.CheckBatchTransition(entity.BatchQualityCheck, entity.BatchCompleted)
	require.NoError(t, err)

	noop, err = inventory.CheckBatchTransition(entity.BatchCompleted, entity.BatchCompleted)
	require.NoError(t, err, "re-completar no es error")
	assert.True(t, noop, "re-completar es un no-op")

	_, err = inventory.CheckBatchTransition(entity.BatchCompleted, entity.BatchInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se permite retroceder un lote completado")

	_, err = inventory.CheckBatchTransition(entity.BatchQualityCheck, entity.BatchInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = inventory.CheckBatchTransition(entity.BatchQualityCheck, entity.BatchQualityCheck)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCheckTransferTransition(t *testing.T) {
	assert.NoError(t, inventory.CheckTransferTransition(entity.TransferPending, entity.TransferInTransit))
	assert.NoError(t, inventory.CheckTransferTransition(entity.TransferPending, entity.TransferCancelled))
	assert.NoError(t, inventory.CheckTransferTransition(entity.TransferInTransit, entity.TransferCompleted))
	assert.NoError(t, inventory.CheckTransferTransition(entity.TransferInTransit, entity.TransferCancelled))

	assert.ErrorIs(t, inventory.CheckTransferTransition(entity.TransferCompleted, entity.TransferCompleted), domain.ErrInvalidTransition)
	assert.ErrorIs(t, inventory.CheckTransferTransition(entity.TransferCancelled, entity.TransferCompleted), domain.ErrInvalidTransition)
	assert.ErrorIs(t, inventory.CheckTransferTransition(entity.TransferInTransit, entity.TransferPending), domain.ErrInvalidTransition)
	assert.ErrorIs(t, inventory.CheckTransferTransition(entity.TransferInTransit, entity.TransferInTransit), domain.ErrInvalidTransition)
}

func TestParseStatus(t *testing.T) {
	s, err := inventory.ParseTransferStatus("in_transit")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferInTransit, s)

	s, err = inventory.ParseTransferStatus("Canceled")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCancelled, s)

	_, err = inventory.ParseTransferStatus("lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	b, err := inventory.ParseBatchStatus("QUALITY_CHECK")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchQualityCheck, b)
}

func TestLocationNameKey(t *testing.T) {
	assert.Equal(t, entity.LocationNameKey("  Production   Facility "), entity.LocationNameKey("production facility"))
	assert.NotEqual(t, entity.LocationNameKey("Store 1"), entity.LocationNameKey("Store 2"))
}
