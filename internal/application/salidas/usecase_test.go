package salidas_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/salidas"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/memory"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

type notificadorSpy struct {
	mu       sync.Mutex
	emitidas []alertaEmitida
}

type alertaEmitida struct {
	Tipo      string
	Mensaje   string
	IDUsuario string
}

func (n *notificadorSpy) Emitir(_ context.Context, tipo, mensaje, idUsuario string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emitidas = append(n.emitidas, alertaEmitida{Tipo: tipo, Mensaje: mensaje, IDUsuario: idUsuario})
	return nil
}

type fixture struct {
	store       *memory.Store
	uc          *salidas.SalidaUseCase
	spy         *notificadorSpy
	gestor      *entity.Usuario
	solicitante *entity.Usuario
}

func nuevaFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	spy := &notificadorSpy{}

	gestor := &entity.Usuario{ID: uuid.New().String(), Cedula: "111", Nombre: "Gloria",
		Correo: "gloria@example.com", Rol: entity.RolGestor, Estado: "active"}
	solicitante := &entity.Usuario{ID: uuid.New().String(), Cedula: "222", Nombre: "Samuel",
		Correo: "samuel@example.com", Rol: entity.RolSolicitante, Estado: "active"}
	require.NoError(t, store.Usuarios().Create(gestor))
	require.NoError(t, store.Usuarios().Create(solicitante))

	uc := salidas.NewSalidaUseCase(memory.NewTxRunner(store), store.Repos().Salidas,
		store.Repos().Items, store.Usuarios(), nil, spy, nil, logger.Nop())
	return &fixture{store: store, uc: uc, spy: spy, gestor: gestor, solicitante: solicitante}
}

func (f *fixture) nuevoItem(t *testing.T, codigo string, inicial, minimo int) *entity.Item {
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
	require.NoError(t, f.store.Repos().Items.Create(item))
	return item
}

func (f *fixture) stockDe(t *testing.T, idItem string) int {
	t.Helper()
	item, err := f.store.Repos().Items.GetByID(idItem)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.StockReal
}

// El despacho parcial es legítimo: se descuenta lo despachado y ambas cifras
// quedan en la línea para auditoría.
func TestRegistrar_DespachoParcial(t *testing.T) {
	f := nuevaFixture(t)
	item := f.nuevoItem(t, "PAP-0200", 20, 2)

	salida, err := f.uc.Registrar(context.Background(), f.gestor.ID, dto.RegistrarSalidaRequest{
		IDSolicitante: f.solicitante.ID,
		Actividad:     "Taller de acuarela",
		Items: []dto.LineaSalidaRequest{
			{IDItem: item.ID, CantidadRequerida: 10, CantidadDespachada: 6},
		},
	}, nil, "")
	require.NoError(t, err)
	require.NotNil(t, salida)

	assert.Equal(t, 14, f.stockDe(t, item.ID))

	lineas, err := f.store.Repos().Salidas.ListItems(context.Background(), salida.ID)
	require.NoError(t, err)
	require.Len(t, lineas, 1)
	assert.Equal(t, 10, lineas[0].CantidadRequerida)
	assert.Equal(t, 6, lineas[0].CantidadDespachada)
}

// Cada línea es su propia transacción: si la línea 2 excede el stock, la 1
// queda confirmada y el caller recibe el detalle exacto del fallo parcial.
func TestRegistrar_FalloParcial(t *testing.T) {
	f := nuevaFixture(t)
	abundante := f.nuevoItem(t, "PAP-0201", 50, 5)
	escaso := f.nuevoItem(t, "PAP-0202", 3, 1)

	salida, err := f.uc.Registrar(context.Background(), f.gestor.ID, dto.RegistrarSalidaRequest{
		IDSolicitante: f.solicitante.ID,
		Actividad:     "Semana cultural",
		Items: []dto.LineaSalidaRequest{
			{IDItem: abundante.ID, CantidadRequerida: 10, CantidadDespachada: 10},
			{IDItem: escaso.ID, CantidadRequerida: 8, CantidadDespachada: 8},
		},
	}, nil, "")
	require.Error(t, err)
	require.NotNil(t, salida, "la cabecera con líneas confirmadas se conserva")

	var parcial *domain.PartialFailure
	require.ErrorAs(t, err, &parcial)
	assert.Equal(t, []int{0}, parcial.Applied)
	assert.Equal(t, 1, parcial.Failed)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 40, f.stockDe(t, abundante.ID), "la línea confirmada no se revierte")
	assert.Equal(t, 3, f.stockDe(t, escaso.ID), "la línea fallida no toca el stock")
}

// Si falla la primera línea no hay fallo parcial: error plano y nada aplicado.
func TestRegistrar_PrimeraLineaFalla(t *testing.T) {
	f := nuevaFixture(t)
	escaso := f.nuevoItem(t, "PAP-0203", 2, 1)

	salida, err := f.uc.Registrar(context.Background(), f.gestor.ID, dto.RegistrarSalidaRequest{
		IDSolicitante: f.solicitante.ID,
		Actividad:     "Feria de ciencias",
		Items: []dto.LineaSalidaRequest{
			{IDItem: escaso.ID, CantidadRequerida: 5, CantidadDespachada: 5},
		},
	}, nil, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, salida)

	var parcial *domain.PartialFailure
	assert.False(t, errors.As(err, &parcial))
	assert.Equal(t, 2, f.stockDe(t, escaso.ID))
}

func TestRegistrar_AlertaStockBajoAlGestor(t *testing.T) {
	f := nuevaFixture(t)
	item := f.nuevoItem(t, "PAP-0204", 10, 4)

	_, err := f.uc.Registrar(context.Background(), f.gestor.ID, dto.RegistrarSalidaRequest{
		IDSolicitante: f.solicitante.ID,
		Actividad:     "Jornada pedagógica",
		Items: []dto.LineaSalidaRequest{
			{IDItem: item.ID, CantidadRequerida: 6, CantidadDespachada: 6},
		},
	}, nil, "")
	require.NoError(t, err)

	f.spy.mu.Lock()
	defer f.spy.mu.Unlock()
	require.Len(t, f.spy.emitidas, 1)
	assert.Equal(t, entity.AlertaStockBajo, f.spy.emitidas[0].Tipo)
	assert.Equal(t, f.gestor.ID, f.spy.emitidas[0].IDUsuario)
	assert.Contains(t, f.spy.emitidas[0].Mensaje, "PAP-0204")
}

func TestRegistrar_GestorInexistente(t *testing.T) {
	f := nuevaFixture(t)
	item := f.nuevoItem(t, "PAP-0205", 10, 2)

	_, err := f.uc.Registrar(context.Background(), uuid.New().String(), dto.RegistrarSalidaRequest{
		IDSolicitante: f.solicitante.ID,
		Actividad:     "Actividad cualquiera",
		Items: []dto.LineaSalidaRequest{
			{IDItem: item.ID, CantidadRequerida: 1, CantidadDespachada: 1},
		},
	}, nil, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
