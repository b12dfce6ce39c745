package solicitudes_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/solicitudes"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
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
	store       *memory.Store
	uc          *solicitudes.SolicitudUseCase
	spy         *notificadorSpy
	admin       *entity.Usuario
	gestor      *entity.Usuario
	solicitante *entity.Usuario
	item        *entity.Item
}

func nuevaFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	spy := &notificadorSpy{}

	admin := &entity.Usuario{ID: uuid.New().String(), Cedula: "444", Nombre: "Amalia",
		Correo: "amalia@example.com", Rol: entity.RolAdmin, Estado: "active"}
	gestor := &entity.Usuario{ID: uuid.New().String(), Cedula: "555", Nombre: "Germán",
		Correo: "german@example.com", Rol: entity.RolGestor, Estado: "active"}
	solicitante := &entity.Usuario{ID: uuid.New().String(), Cedula: "666", Nombre: "Sofía",
		Correo: "sofia@example.com", Rol: entity.RolSolicitante, Estado: "active"}
	for _, u := range []*entity.Usuario{admin, gestor, solicitante} {
		require.NoError(t, store.Usuarios().Create(u))
	}

	item := &entity.Item{
		ID:                uuid.New().String(),
		Codigo:            "PAP-0400",
		Nombre:            "Resma carta",
		IDCategoria:       uuid.New().String(),
		Unidad:            "resma",
		StockMinimo:       2,
		InventarioInicial: 30,
		StockReal:         30,
	}
	require.NoError(t, store.Repos().Items.Create(item))

	uc := solicitudes.NewSolicitudUseCase(memory.NewTxRunner(store), store.Repos().Solicitudes,
		store.Repos().Items, store.Usuarios(), spy, logger.Nop())
	return &fixture{store: store, uc: uc, spy: spy, admin: admin, gestor: gestor,
		solicitante: solicitante, item: item}
}

func (f *fixture) crear(t *testing.T, actividad string, lineas []dto.LineaSolicitudRequest) *entity.Solicitud {
	t.Helper()
	sol, err := f.uc.Crear(context.Background(), f.solicitante.ID, dto.CrearSolicitudRequest{
		Actividad: actividad,
		Items:     lineas,
	})
	require.NoError(t, err)
	return sol
}

func TestCrear_SinLineasNiDescripcion(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.uc.Crear(context.Background(), f.solicitante.ID, dto.CrearSolicitudRequest{
		Actividad: "Actividad sin contenido",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrear_SoloDescripcionDeMaterial(t *testing.T) {
	f := nuevaFixture(t)
	sol, err := f.uc.Crear(context.Background(), f.solicitante.ID, dto.CrearSolicitudRequest{
		Actividad:           "Día del idioma",
		DescripcionMaterial: "Pendones y material que no está en catálogo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SolicitudPendiente, sol.Estado)
}

func TestCrear_LineaConItemInexistente(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.uc.Crear(context.Background(), f.solicitante.ID, dto.CrearSolicitudRequest{
		Actividad: "Bazar",
		Items:     []dto.LineaSolicitudRequest{{IDItem: uuid.New().String(), Cantidad: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Aprobar con líneas de catálogo exige gestor asignado: él recibe la alerta
// de despacho pendiente.
func TestAprobar_SinGestorConLineas(t *testing.T) {
	f := nuevaFixture(t)
	sol := f.crear(t, "Taller de lectura", []dto.LineaSolicitudRequest{
		{IDItem: f.item.ID, Cantidad: 3},
	})

	_, err := f.uc.Aprobar(context.Background(), f.admin.ID, sol.ID, dto.AprobarSolicitudRequest{})
	assert.ErrorIs(t, err, domain.ErrManagerRequired)
}

func TestAprobar_NotificaSolicitanteYGestor(t *testing.T) {
	f := nuevaFixture(t)
	sol := f.crear(t, "Taller de lectura", []dto.LineaSolicitudRequest{
		{IDItem: f.item.ID, Cantidad: 3},
	})

	aprobada, err := f.uc.Aprobar(context.Background(), f.admin.ID, sol.ID,
		dto.AprobarSolicitudRequest{IDGestor: f.gestor.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.SolicitudAprobada, aprobada.Estado)
	assert.Equal(t, f.admin.ID, aprobada.IDAdministrador)
	assert.Equal(t, f.gestor.ID, aprobada.IDGestor)

	alSolicitante := f.spy.porTipo(entity.AlertaSolicitudAprobada)
	require.Len(t, alSolicitante, 1)
	assert.Equal(t, f.solicitante.ID, alSolicitante[0].IDUsuario)

	alGestor := f.spy.porTipo(entity.AlertaSalidaPendiente)
	require.Len(t, alGestor, 1)
	assert.Equal(t, f.gestor.ID, alGestor[0].IDUsuario)
	assert.Contains(t, alGestor[0].Mensaje, "3 x Resma carta (PAP-0400)")
}

// Sin líneas de catálogo la aprobación no exige gestor ni emite alerta de
// despacho: no hay nada que despachar.
func TestAprobar_SoloDescripcionNoExigeGestor(t *testing.T) {
	f := nuevaFixture(t)
	sol, err := f.uc.Crear(context.Background(), f.solicitante.ID, dto.CrearSolicitudRequest{
		Actividad:           "Izada de bandera",
		DescripcionMaterial: "Escarapelas",
	})
	require.NoError(t, err)

	aprobada, err := f.uc.Aprobar(context.Background(), f.admin.ID, sol.ID, dto.AprobarSolicitudRequest{})
	require.NoError(t, err)
	assert.Empty(t, aprobada.IDGestor)
	assert.Empty(t, f.spy.porTipo(entity.AlertaSalidaPendiente))
}

// La transición es terminal: procesada una vez, cualquier reintento falla.
func TestAprobar_DobleProcesamiento(t *testing.T) {
	f := nuevaFixture(t)
	sol := f.crear(t, "Festival", []dto.LineaSolicitudRequest{
		{IDItem: f.item.ID, Cantidad: 1},
	})

	_, err := f.uc.Aprobar(context.Background(), f.admin.ID, sol.ID,
		dto.AprobarSolicitudRequest{IDGestor: f.gestor.ID})
	require.NoError(t, err)

	_, err = f.uc.Aprobar(context.Background(), f.admin.ID, sol.ID,
		dto.AprobarSolicitudRequest{IDGestor: f.gestor.ID})
	assert.ErrorIs(t, err, domain.ErrRequestClosed)

	_, err = f.uc.Rechazar(context.Background(), f.admin.ID, sol.ID, dto.RechazarSolicitudRequest{})
	assert.ErrorIs(t, err, domain.ErrRequestClosed)
}

func TestRechazar_MotivoPorDefecto(t *testing.T) {
	f := nuevaFixture(t)
	sol := f.crear(t, "Salida pedagógica", []dto.LineaSolicitudRequest{
		{IDItem: f.item.ID, Cantidad: 2},
	})

	rechazada, err := f.uc.Rechazar(context.Background(), f.admin.ID, sol.ID, dto.RechazarSolicitudRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.SolicitudRechazada, rechazada.Estado)
	assert.Equal(t, "La solicitud no fue aprobada.", rechazada.MotivoRechazo)

	alertas := f.spy.porTipo(entity.AlertaSolicitudRechazada)
	require.Len(t, alertas, 1)
	assert.Equal(t, f.solicitante.ID, alertas[0].IDUsuario)
	assert.Contains(t, alertas[0].Mensaje, "La solicitud no fue aprobada.")
}

func TestRechazar_ConMotivoExplicito(t *testing.T) {
	f := nuevaFixture(t)
	sol := f.crear(t, "Salida pedagógica", []dto.LineaSolicitudRequest{
		{IDItem: f.item.ID, Cantidad: 2},
	})

	rechazada, err := f.uc.Rechazar(context.Background(), f.admin.ID, sol.ID,
		dto.RechazarSolicitudRequest{Motivo: "Sin presupuesto este mes"})
	require.NoError(t, err)
	assert.Equal(t, "Sin presupuesto este mes", rechazada.MotivoRechazo)
}

func TestListar_FiltroPorSolicitante(t *testing.T) {
	f := nuevaFixture(t)
	f.crear(t, "Actividad propia", []dto.LineaSolicitudRequest{{IDItem: f.item.ID, Cantidad: 1}})

	otro := &entity.Usuario{ID: uuid.New().String(), Cedula: "777", Nombre: "Óscar",
		Correo: "oscar@example.com", Rol: entity.RolSolicitante, Estado: "active"}
	require.NoError(t, f.store.Usuarios().Create(otro))
	_, err := f.uc.Crear(context.Background(), otro.ID, dto.CrearSolicitudRequest{
		Actividad:           "Actividad ajena",
		DescripcionMaterial: "Material vario",
	})
	require.NoError(t, err)

	propias, err := f.uc.Listar(context.Background(),
		repository.FiltroSolicitudes{IDSolicitante: f.solicitante.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, propias, 1)
	assert.Equal(t, "Actividad propia", propias[0].Actividad)

	todas, err := f.uc.Listar(context.Background(), repository.FiltroSolicitudes{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
