package entradas_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/entradas"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/memory"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

func nuevaFixture(t *testing.T) (*entradas.EntradaUseCase, *memory.Store, *entity.Usuario) {
	t.Helper()
	store := memory.NewStore()
	gestor := &entity.Usuario{ID: uuid.New().String(), Cedula: "888", Nombre: "Rocío",
		Correo: "rocio@example.com", Rol: entity.RolGestor, Estado: "active"}
	require.NoError(t, store.Usuarios().Create(gestor))

	uc := entradas.NewEntradaUseCase(memory.NewTxRunner(store), store.Repos().Entradas,
		store.Usuarios(), nil, logger.Nop())
	return uc, store, gestor
}

func nuevoItem(t *testing.T, store *memory.Store, codigo string, inicial int) *entity.Item {
	t.Helper()
	item := &entity.Item{
		ID:                uuid.New().String(),
		Codigo:            codigo,
		Nombre:            "Ítem " + codigo,
		IDCategoria:       uuid.New().String(),
		Unidad:            "unidad",
		InventarioInicial: inicial,
		StockReal:         inicial,
	}
	require.NoError(t, store.Repos().Items.Create(item))
	return item
}

func TestRegistrar_MultilineaSumaStock(t *testing.T) {
	uc, store, gestor := nuevaFixture(t)
	a := nuevoItem(t, store, "PAP-0500", 10)
	b := nuevoItem(t, store, "PAP-0501", 0)

	entrada, err := uc.Registrar(context.Background(), gestor.ID, dto.RegistrarEntradaRequest{
		Factura: "FAC-2024-015",
		Items: []dto.LineaEntradaRequest{
			{IDItem: a.ID, Cantidad: 20},
			{IDItem: b.ID, Cantidad: 5},
		},
	})
	require.NoError(t, err)

	itemA, err := store.Repos().Items.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, itemA.StockReal)
	itemB, err := store.Repos().Items.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, itemB.StockReal)

	lineas, err := store.Repos().Entradas.ListItems(context.Background(), entrada.ID)
	require.NoError(t, err)
	assert.Len(t, lineas, 2)
}

// Un ítem bloqueado a mitad del lote produce fallo parcial: la primera línea
// queda confirmada y el error identifica la fallida con su causa.
func TestRegistrar_FalloParcialPorItemBloqueado(t *testing.T) {
	uc, store, gestor := nuevaFixture(t)
	sano := nuevoItem(t, store, "PAP-0502", 10)
	vetado := nuevoItem(t, store, "PAP-0503", 10)
	require.NoError(t, store.Repos().Items.SetBloqueado(vetado.ID, true))

	entrada, err := uc.Registrar(context.Background(), gestor.ID, dto.RegistrarEntradaRequest{
		Items: []dto.LineaEntradaRequest{
			{IDItem: sano.ID, Cantidad: 7},
			{IDItem: vetado.ID, Cantidad: 7},
		},
	})
	require.Error(t, err)
	require.NotNil(t, entrada)

	var parcial *domain.PartialFailure
	require.ErrorAs(t, err, &parcial)
	assert.Equal(t, []int{0}, parcial.Applied)
	assert.Equal(t, 1, parcial.Failed)
	assert.ErrorIs(t, err, domain.ErrItemLocked)

	itemSano, err := store.Repos().Items.GetByID(sano.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, itemSano.StockReal)
	itemVetado, err := store.Repos().Items.GetByID(vetado.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, itemVetado.StockReal)
}

func TestRegistrar_GestorInexistente(t *testing.T) {
	uc, store, _ := nuevaFixture(t)
	item := nuevoItem(t, store, "PAP-0504", 1)

	_, err := uc.Registrar(context.Background(), uuid.New().String(), dto.RegistrarEntradaRequest{
		Items: []dto.LineaEntradaRequest{{IDItem: item.ID, Cantidad: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
