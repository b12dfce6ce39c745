package movimientos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/memory"
)

func nuevoItem(t *testing.T, s *memory.Store, codigo string, inicial, minimo int) *entity.Item {
	t.Helper()
	item := &entity.Item{
		ID:                uuid.New().String(),
		Codigo:            codigo,
		Nombre:            "Ítem " + codigo,
		IDCategoria:       uuid.New().String(),
		Unidad:            "unidad",
		StockMinimo:       minimo,
		InventarioInicial: inicial,
		StockReal:         inicial,
	}
	require.NoError(t, s.Repos().Items.Create(item))
	return item
}

func entradaInput(idItem string, cantidad int) movimientos.Input {
	return movimientos.Input{
		IDItem:   idItem,
		Tipo:     entity.MovimientoEntrada,
		Cantidad: cantidad,
		Origen:   entity.Origen{Tipo: entity.OrigenEntradaItem, ID: uuid.New().String()},
	}
}

func salidaInput(idItem string, cantidad int) movimientos.Input {
	return movimientos.Input{
		IDItem:   idItem,
		Tipo:     entity.MovimientoSalida,
		Cantidad: cantidad,
		Origen:   entity.Origen{Tipo: entity.OrigenSalidaItem, ID: uuid.New().String()},
	}
}

func TestAplicar_EntradaAumentaStock(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0001", 10, 2)

	mov, err := movimientos.Aplicar(store.Repos(), entradaInput(item.ID, 20), time.Now())
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, 20, mov.Cantidad)

	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, actual.StockReal)
}

// El signo del delta debe corresponder al tipo y la variante de origen a la
// tabla fuente; cualquier combinación incoherente se rechaza antes de tocar
// el estado.
func TestAplicar_ValidaSignoYOrigen(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0002", 10, 2)

	casos := []struct {
		nombre string
		in     movimientos.Input
	}{
		{"entrada con delta negativo", movimientos.Input{
			IDItem: item.ID, Tipo: entity.MovimientoEntrada, Cantidad: -5,
			Origen: entity.Origen{Tipo: entity.OrigenEntradaItem, ID: uuid.New().String()},
		}},
		{"salida con delta positivo", movimientos.Input{
			IDItem: item.ID, Tipo: entity.MovimientoSalida, Cantidad: 5,
			Origen: entity.Origen{Tipo: entity.OrigenSalidaItem, ID: uuid.New().String()},
		}},
		{"devolucion con delta cero", movimientos.Input{
			IDItem: item.ID, Tipo: entity.MovimientoDevolucion, Cantidad: 0,
			Origen: entity.Origen{Tipo: entity.OrigenDevolucionItem, ID: uuid.New().String()},
		}},
		{"entrada con origen de salida", movimientos.Input{
			IDItem: item.ID, Tipo: entity.MovimientoEntrada, Cantidad: 5,
			Origen: entity.Origen{Tipo: entity.OrigenSalidaItem, ID: uuid.New().String()},
		}},
		{"tipo desconocido", movimientos.Input{
			IDItem: item.ID, Tipo: "transferencia", Cantidad: 5,
			Origen: entity.Origen{Tipo: entity.OrigenEntradaItem, ID: uuid.New().String()},
		}},
		{"origen sin id", movimientos.Input{
			IDItem: item.ID, Tipo: entity.MovimientoEntrada, Cantidad: 5,
			Origen: entity.Origen{Tipo: entity.OrigenEntradaItem},
		}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := movimientos.Aplicar(store.Repos(), tc.in, time.Now())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada de lo anterior debió mutar el stock ni asentar movimientos.
	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, actual.StockReal)
	suma, err := store.Repos().Movimientos.SumByItem(item.ID)
	require.NoError(t, err)
	assert.Zero(t, suma)
}

func TestAplicar_AjusteSinMotivo(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0003", 10, 2)

	_, err := movimientos.Aplicar(store.Repos(), movimientos.Input{
		IDItem:   item.ID,
		Tipo:     entity.MovimientoAjuste,
		Cantidad: -3,
		Origen:   entity.Origen{Tipo: entity.OrigenAjuste, ID: uuid.New().String()},
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrReasonRequired)
}

func TestAplicar_ItemInexistente(t *testing.T) {
	store := memory.NewStore()
	_, err := movimientos.Aplicar(store.Repos(), entradaInput(uuid.New().String(), 5), time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAplicar_ItemBloqueado(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0004", 10, 2)
	require.NoError(t, store.Repos().Items.SetBloqueado(item.ID, true))

	_, err := movimientos.Aplicar(store.Repos(), entradaInput(item.ID, 5), time.Now())
	assert.ErrorIs(t, err, domain.ErrItemLocked)
}

func TestAplicar_StockInsuficiente(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0005", 10, 2)

	_, err := movimientos.Aplicar(store.Repos(), salidaInput(item.ID, -11), time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, actual.StockReal, "el rechazo no debe mutar el stock")
	suma, err := store.Repos().Movimientos.SumByItem(item.ID)
	require.NoError(t, err)
	assert.Zero(t, suma, "el rechazo no debe asentar movimiento")
}

// Si el stock almacenado no cuadra con inventarioInicial + suma del libro, el
// mutador bloquea el ítem y rechaza la mutación; nunca auto-corrige.
func TestAplicar_GuardiaDeInconsistencia(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0006", 10, 2)

	// Corrupción simulada: alguien escribió stockReal sin pasar por el mutador.
	require.NoError(t, store.Repos().Items.UpdateStock(item.ID, 42))

	_, err := movimientos.Aplicar(store.Repos(), entradaInput(item.ID, 5), time.Now())
	require.ErrorIs(t, err, domain.ErrStockInconsistent)

	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.True(t, actual.Bloqueado, "el ítem debe quedar vetado hasta revisión")
	assert.Equal(t, 42, actual.StockReal, "el valor corrupto se conserva como evidencia")

	// Con el ítem bloqueado, toda mutación posterior falla por el veto.
	_, err = movimientos.Aplicar(store.Repos(), entradaInput(item.ID, 5), time.Now())
	assert.ErrorIs(t, err, domain.ErrItemLocked)
}

// Secuencia completa contra el libro: el stock final y la suma de movimientos
// deben cuadrar con el inventario inicial aunque haya rechazos intermedios.
func TestAplicar_EscenarioContraElLibro(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0007", 10, 2)
	now := time.Now()

	_, err := movimientos.Aplicar(store.Repos(), entradaInput(item.ID, 20), now)
	require.NoError(t, err)

	_, err = movimientos.Aplicar(store.Repos(), salidaInput(item.ID, -28), now)
	require.NoError(t, err)

	// Quedan 2; pedir 5 se rechaza sin efectos.
	_, err = movimientos.Aplicar(store.Repos(), salidaInput(item.ID, -5), now)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = movimientos.Aplicar(store.Repos(), movimientos.Input{
		IDItem:   item.ID,
		Tipo:     entity.MovimientoDevolucion,
		Cantidad: 3,
		Origen:   entity.Origen{Tipo: entity.OrigenDevolucionItem, ID: uuid.New().String()},
	}, now)
	require.NoError(t, err)

	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, actual.StockReal)

	suma, err := store.Repos().Movimientos.SumByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, -5, suma)
	assert.Equal(t, actual.StockReal, actual.InventarioInicial+suma)
}

func TestAplicarAjuste_AsientaAjusteYMovimiento(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0008", 10, 2)
	gestor := uuid.New().String()

	mov, err := movimientos.AplicarAjuste(store.Repos(), item.ID, gestor, -4,
		"merma por humedad", entity.AjusteManual, "ajuste de prueba", time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoAjuste, mov.Tipo)
	assert.Equal(t, -4, mov.Cantidad)
	assert.Equal(t, entity.OrigenAjuste, mov.Origen.Tipo)

	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, actual.StockReal)

	ajustes, err := store.Repos().Ajustes.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, ajustes, 1)
	assert.Equal(t, mov.Origen.ID, ajustes[0].ID, "el movimiento referencia la fila de ajuste")
	assert.Equal(t, entity.AjusteManual, ajustes[0].Tipo)
}

func TestAplicarAjuste_MotivoObligatorioConDelta(t *testing.T) {
	store := memory.NewStore()
	item := nuevoItem(t, store, "PAP-0009", 10, 2)

	_, err := movimientos.AplicarAjuste(store.Repos(), item.ID, uuid.New().String(), 3,
		"   ", entity.AjusteManual, "", time.Now())
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	// Delta cero es un no-op legítimo que no exige motivo.
	mov, err := movimientos.AplicarAjuste(store.Repos(), item.ID, uuid.New().String(), 0,
		"", entity.AjusteManual, "", time.Now())
	require.NoError(t, err)
	assert.Zero(t, mov.Cantidad)
}
