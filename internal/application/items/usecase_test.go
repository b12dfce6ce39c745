package items_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/items"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/memory"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

// notificadorSpy captura las alertas emitidas durante el test.
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

func (n *notificadorSpy) porTipo(tipo string) []alertaEmitida {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]alertaEmitida, 0)
	for _, a := range n.emitidas {
		if a.Tipo == tipo {
			out = append(out, a)
		}
	}
	return out
}

type fixture struct {
	store     *memory.Store
	uc        *items.ItemUseCase
	spy       *notificadorSpy
	gestor    *entity.Usuario
	categoria *entity.Categoria
}

func nuevaFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	spy := &notificadorSpy{}

	gestor := &entity.Usuario{
		ID:     uuid.New().String(),
		Cedula: "100200300",
		Nombre: "Marta",
		Correo: "marta@example.com",
		Rol:    entity.RolGestor,
		Estado: "active",
	}
	require.NoError(t, store.Usuarios().Create(gestor))

	categoria := &entity.Categoria{ID: uuid.New().String(), Nombre: "Papelería", CreatedAt: time.Now()}
	require.NoError(t, store.Categorias().Create(categoria))

	uc := items.NewItemUseCase(memory.NewTxRunner(store), store.Repos().Items,
		store.Categorias(), store.Usuarios(), spy, nil, logger.Nop())
	return &fixture{store: store, uc: uc, spy: spy, gestor: gestor, categoria: categoria}
}

func (f *fixture) registrar(t *testing.T, codigo, nombre string, inicial, minimo int) *entity.Item {
	t.Helper()
	item, err := f.uc.Registrar(context.Background(), dto.RegistrarItemRequest{
		Codigo:            codigo,
		Nombre:            nombre,
		IDCategoria:       f.categoria.ID,
		Unidad:            "unidad",
		StockMinimo:       minimo,
		InventarioInicial: inicial,
	})
	require.NoError(t, err)
	return item
}

func TestRegistrar_SiembraElStockInicial(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0100", "Resma carta", 50, 10)
	assert.Equal(t, 50, item.StockReal)
	assert.Equal(t, 50, item.InventarioInicial)
}

func TestRegistrar_CodigoDuplicado(t *testing.T) {
	f := nuevaFixture(t)
	f.registrar(t, "PAP-0101", "Grapadora", 5, 1)

	_, err := f.uc.Registrar(context.Background(), dto.RegistrarItemRequest{
		Codigo:            "PAP-0101",
		Nombre:            "Otra grapadora",
		IDCategoria:       f.categoria.ID,
		Unidad:            "unidad",
		InventarioInicial: 1,
	})
	assert.ErrorIs(t, err, domain.ErrCodigoAlreadyUsed)
}

func TestRegistrar_CategoriaInexistente(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.uc.Registrar(context.Background(), dto.RegistrarItemRequest{
		Codigo:      "PAP-0102",
		Nombre:      "Cinta",
		IDCategoria: uuid.New().String(),
		Unidad:      "unidad",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La edición del catálogo puede traer un stock_real distinto al vigente; ese
// cambio no es una escritura directa sino un ajuste manual con motivo.
func TestActualizar_CambioDeStockExigeMotivo(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0103", "Marcadores", 20, 5)

	nuevoStock := 15
	req := dto.ActualizarItemRequest{
		Nombre:      item.Nombre,
		IDCategoria: item.IDCategoria,
		Unidad:      item.Unidad,
		StockMinimo: item.StockMinimo,
		StockReal:   &nuevoStock,
	}
	_, err := f.uc.Actualizar(context.Background(), f.gestor.ID, item.ID, req)
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	// Con motivo el ajuste pasa y queda asentado en el libro.
	req.Motivo = "conteo rápido de estante"
	actualizado, err := f.uc.Actualizar(context.Background(), f.gestor.ID, item.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 15, actualizado.StockReal)

	suma, err := f.store.Repos().Movimientos.SumByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, -5, suma)
}

func TestActualizar_SinCambioDeStockNoAsientaMovimiento(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0104", "Tijeras", 8, 2)

	_, err := f.uc.Actualizar(context.Background(), f.gestor.ID, item.ID, dto.ActualizarItemRequest{
		Nombre:      "Tijeras escolares",
		IDCategoria: item.IDCategoria,
		Unidad:      item.Unidad,
		StockMinimo: 3,
	})
	require.NoError(t, err)

	suma, err := f.store.Repos().Movimientos.SumByItem(item.ID)
	require.NoError(t, err)
	assert.Zero(t, suma)

	actual, err := f.uc.Detalle(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tijeras escolares", actual.Nombre)
	assert.Equal(t, 8, actual.StockReal)
}

func TestAjusteManual_EmiteAlertaDeStockBajo(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0105", "Sobres manila", 10, 4)

	_, err := f.uc.AjusteManual(context.Background(), f.gestor.ID, item.ID, dto.AjusteManualRequest{
		Cantidad: -7,
		Motivo:   "deterioro por humedad",
	})
	require.NoError(t, err)

	alertas := f.spy.porTipo(entity.AlertaStockBajo)
	require.Len(t, alertas, 1)
	assert.Equal(t, f.gestor.ID, alertas[0].IDUsuario)
	assert.Contains(t, alertas[0].Mensaje, "PAP-0105")
}

func TestEliminar_ItemReferenciado(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0106", "Carpetas", 12, 2)

	_, err := f.uc.AjusteManual(context.Background(), f.gestor.ID, item.ID, dto.AjusteManualRequest{
		Cantidad: -1,
		Motivo:   "préstamo no devuelto",
	})
	require.NoError(t, err)

	err = f.uc.Eliminar(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrItemReferenced)
}

func TestEliminar_SinReferencias(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0107", "Borrador", 3, 1)

	require.NoError(t, f.uc.Eliminar(context.Background(), item.ID))
	_, err := f.uc.Detalle(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// "papeleria" debe encontrar "Papelería": la búsqueda ignora mayúsculas y tildes.
func TestListar_BusquedaIgnoraTildes(t *testing.T) {
	f := nuevaFixture(t)
	f.registrar(t, "PAP-0108", "Papelería premium", 5, 1)
	f.registrar(t, "PAP-0109", "Lápiz mirado", 30, 5)
	f.registrar(t, "CAF-0001", "Café molido", 4, 2)

	encontrados, err := f.uc.Listar(context.Background(), "papeleria")
	require.NoError(t, err)
	require.Len(t, encontrados, 1)
	assert.Equal(t, "Papelería premium", encontrados[0].Nombre)

	encontrados, err = f.uc.Listar(context.Background(), "LAPIZ")
	require.NoError(t, err)
	require.Len(t, encontrados, 1)
	assert.Equal(t, "Lápiz mirado", encontrados[0].Nombre)
}

// El umbral es inclusivo: un ítem exactamente en su mínimo ya está bajo.
func TestStockBajo_UmbralInclusivo(t *testing.T) {
	f := nuevaFixture(t)
	f.registrar(t, "PAP-0110", "En el mínimo", 4, 4)
	f.registrar(t, "PAP-0111", "Por encima", 5, 4)
	f.registrar(t, "PAP-0112", "Por debajo", 3, 4)

	bajos, err := f.uc.StockBajo(context.Background())
	require.NoError(t, err)
	codigos := make([]string, 0, len(bajos))
	for _, it := range bajos {
		codigos = append(codigos, it.Codigo)
	}
	assert.ElementsMatch(t, []string{"PAP-0110", "PAP-0112"}, codigos)
}

func TestDesbloquear_LevantaElVeto(t *testing.T) {
	f := nuevaFixture(t)
	item := f.registrar(t, "PAP-0113", "Item vetado", 10, 2)
	require.NoError(t, f.store.Repos().Items.SetBloqueado(item.ID, true))

	require.NoError(t, f.uc.Desbloquear(context.Background(), item.ID))

	actual, err := f.uc.Detalle(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, actual.Bloqueado)
}

func TestCrearCategoria_NombreDuplicado(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.uc.CrearCategoria(context.Background(), "Papelería")
	assert.ErrorIs(t, err, domain.ErrCategoriaAlreadyExists)
}

// notificadorFallido simula un repositorio de alertas caído.
type notificadorFallido struct{}

func (notificadorFallido) Emitir(context.Context, string, string, string) error {
	return errors.New("alertas fuera de servicio")
}

// La alerta es best-effort: si no se puede persistir, el ajuste queda firme
// y el fallo sale por el log.
func TestAjusteManual_FalloDeAlertaNoFallaElAjuste(t *testing.T) {
	store := memory.NewStore()
	gestor := &entity.Usuario{ID: uuid.New().String(), Cedula: "700", Nombre: "Nora",
		Correo: "nora@example.com", Rol: entity.RolGestor, Estado: "active"}
	require.NoError(t, store.Usuarios().Create(gestor))
	categoria := &entity.Categoria{ID: uuid.New().String(), Nombre: "Papelería", CreatedAt: time.Now()}
	require.NoError(t, store.Categorias().Create(categoria))

	var logs bytes.Buffer
	uc := items.NewItemUseCase(memory.NewTxRunner(store), store.Repos().Items,
		store.Categorias(), store.Usuarios(), notificadorFallido{}, nil, logger.NewWithWriter(&logs, "warn"))

	item, err := uc.Registrar(context.Background(), dto.RegistrarItemRequest{
		Codigo:            "PAP-0114",
		Nombre:            "Sobres manila",
		IDCategoria:       categoria.ID,
		Unidad:            "unidad",
		StockMinimo:       4,
		InventarioInicial: 10,
	})
	require.NoError(t, err)

	_, err = uc.AjusteManual(context.Background(), gestor.ID, item.ID, dto.AjusteManualRequest{
		Cantidad: -7,
		Motivo:   "deterioro por humedad",
	})
	require.NoError(t, err)

	actual, err := uc.Detalle(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, actual.StockReal)
	assert.Contains(t, logs.String(), "emitir alerta de stock bajo")
	assert.Contains(t, logs.String(), "alertas fuera de servicio")
}
