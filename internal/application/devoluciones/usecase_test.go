package devoluciones_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/devoluciones"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/memory"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

func nuevaFixture(t *testing.T) (*devoluciones.DevolucionUseCase, *memory.Store, *entity.Usuario, *entity.Usuario) {
	t.Helper()
	store := memory.NewStore()
	gestor := &entity.Usuario{ID: uuid.New().String(), Cedula: "901", Nombre: "Teo",
		Correo: "teo@example.com", Rol: entity.RolGestor, Estado: "active"}
	solicitante := &entity.Usuario{ID: uuid.New().String(), Cedula: "902", Nombre: "Lía",
		Correo: "lia@example.com", Rol: entity.RolSolicitante, Estado: "active"}
	require.NoError(t, store.Usuarios().Create(gestor))
	require.NoError(t, store.Usuarios().Create(solicitante))

	uc := devoluciones.NewDevolucionUseCase(memory.NewTxRunner(store), store.Repos().Devoluciones,
		store.Usuarios(), nil, logger.Nop())
	return uc, store, gestor, solicitante
}

func TestRegistrar_DevolucionReponeStock(t *testing.T) {
	uc, store, gestor, solicitante := nuevaFixture(t)
	item := &entity.Item{
		ID:                uuid.New().String(),
		Codigo:            "PAP-0600",
		Nombre:            "Engrapadora",
		IDCategoria:       uuid.New().String(),
		Unidad:            "unidad",
		Tipo:              "devolutivo",
		InventarioInicial: 4,
		StockReal:         4,
	}
	require.NoError(t, store.Repos().Items.Create(item))

	devolucion, err := uc.Registrar(context.Background(), gestor.ID, dto.RegistrarDevolucionRequest{
		IDSolicitante: solicitante.ID,
		Observacion:   "Devuelta al cierre del semestre",
		Items:         []dto.LineaDevolucionRequest{{IDItem: item.ID, Cantidad: 2}},
	})
	require.NoError(t, err)

	actual, err := store.Repos().Items.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, actual.StockReal)

	suma, err := store.Repos().Movimientos.SumByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, suma)

	lineas, err := store.Repos().Devoluciones.ListItems(context.Background(), devolucion.ID)
	require.NoError(t, err)
	require.Len(t, lineas, 1)
	assert.Equal(t, 2, lineas[0].Cantidad)
}

func TestRegistrar_SolicitanteInexistente(t *testing.T) {
	uc, _, gestor, _ := nuevaFixture(t)
	_, err := uc.Registrar(context.Background(), gestor.ID, dto.RegistrarDevolucionRequest{
		IDSolicitante: uuid.New().String(),
		Items:         []dto.LineaDevolucionRequest{{IDItem: uuid.New().String(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
