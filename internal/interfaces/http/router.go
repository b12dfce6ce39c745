package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/alertas"
	"github.com/jmcanizales/papeleria-api/internal/application/auth"
	"github.com/jmcanizales/papeleria-api/internal/application/devoluciones"
	"github.com/jmcanizales/papeleria-api/internal/application/entradas"
	"github.com/jmcanizales/papeleria-api/internal/application/fisico"
	"github.com/jmcanizales/papeleria-api/internal/application/items"
	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
	"github.com/jmcanizales/papeleria-api/internal/application/salidas"
	"github.com/jmcanizales/papeleria-api/internal/application/solicitudes"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ItemUC       *items.ItemUseCase
	EntradaUC    *entradas.EntradaUseCase
	SalidaUC     *salidas.SalidaUseCase
	DevolucionUC *devoluciones.DevolucionUseCase
	LibroUC      *movimientos.LibroUseCase
	InventarioUC *fisico.InventarioUseCase
	SolicitudUC  *solicitudes.SolicitudUseCase
	AlertaUC     *alertas.AlertaUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	soloAdmin := RequireRole(entity.RolAdmin)
	gestion := RequireRole(entity.RolAdmin, entity.RolGestor)

	// Usuarios (admin crea; gestores listables para asignación)
	usuarios := protected.Group("/usuarios")
	usuarios.Post("/", soloAdmin, authHandler.CrearUsuario)
	usuarios.Get("/gestores", gestion, authHandler.ListarGestores)

	// Catálogo de ítems (lectura para todos; mutación para gestión)
	itemHandler := NewItemHandler(deps.ItemUC)
	itemsGroup := protected.Group("/items")
	itemsGroup.Get("/", itemHandler.Listar)
	itemsGroup.Get("/stock-bajo", gestion, itemHandler.StockBajo)
	itemsGroup.Get("/:id", itemHandler.Detalle)
	itemsGroup.Post("/", gestion, itemHandler.Registrar)
	itemsGroup.Put("/:id", gestion, itemHandler.Actualizar)
	itemsGroup.Delete("/:id", gestion, itemHandler.Eliminar)
	itemsGroup.Post("/:id/ajustes", gestion, itemHandler.AjusteManual)
	itemsGroup.Post("/:id/desbloquear", soloAdmin, itemHandler.Desbloquear)

	categorias := protected.Group("/categorias")
	categorias.Get("/", itemHandler.ListarCategorias)
	categorias.Post("/", gestion, itemHandler.CrearCategoria)

	// Operaciones de stock (solo gestión)
	entradaHandler := NewEntradaHandler(deps.EntradaUC)
	entradasGroup := protected.Group("/entradas", gestion)
	entradasGroup.Post("/", entradaHandler.Registrar)
	entradasGroup.Get("/", entradaHandler.Listar)
	entradasGroup.Get("/:id", entradaHandler.Detalle)

	salidaHandler := NewSalidaHandler(deps.SalidaUC)
	salidasGroup := protected.Group("/salidas", gestion)
	salidasGroup.Post("/", salidaHandler.Registrar)
	salidasGroup.Get("/", salidaHandler.Listar)
	salidasGroup.Get("/:id", salidaHandler.Detalle)

	devolucionHandler := NewDevolucionHandler(deps.DevolucionUC)
	devolucionesGroup := protected.Group("/devoluciones", gestion)
	devolucionesGroup.Post("/", devolucionHandler.Registrar)
	devolucionesGroup.Get("/", devolucionHandler.Listar)
	devolucionesGroup.Get("/:id", devolucionHandler.Detalle)

	// Libro de movimientos (trazabilidad, solo gestión)
	movHandler := NewMovimientoHandler(deps.LibroUC)
	protected.Get("/movimientos", gestion, movHandler.Listar)
	protected.Get("/items/:id/movimientos", gestion, movHandler.ListarPorItem)

	// Inventario físico (solo gestión)
	invHandler := NewInventarioHandler(deps.InventarioUC)
	inventarios := protected.Group("/inventarios", gestion)
	inventarios.Post("/", invHandler.Iniciar)
	inventarios.Get("/", invHandler.Listar)
	inventarios.Get("/:id", invHandler.Detalle)
	inventarios.Put("/:id/conteos", invHandler.GuardarConteo)
	inventarios.Post("/:id/finalizar", invHandler.Finalizar)

	// Solicitudes (crear: cualquier autenticado; procesar: solo admin)
	solicitudHandler := NewSolicitudHandler(deps.SolicitudUC)
	solicitudesGroup := protected.Group("/solicitudes")
	solicitudesGroup.Post("/", solicitudHandler.Crear)
	solicitudesGroup.Get("/", solicitudHandler.Listar)
	solicitudesGroup.Get("/:id", solicitudHandler.Detalle)
	solicitudesGroup.Post("/:id/aprobar", soloAdmin, solicitudHandler.Aprobar)
	solicitudesGroup.Post("/:id/rechazar", soloAdmin, solicitudHandler.Rechazar)

	// Alertas
	alertaHandler := NewAlertaHandler(deps.AlertaUC)
	alertasGroup := protected.Group("/alertas")
	alertasGroup.Get("/", alertaHandler.Ultimas)
	alertasGroup.Get("/historial", alertaHandler.Historial)
	alertasGroup.Get("/todas", soloAdmin, alertaHandler.Todas)
	alertasGroup.Put("/:id/inactiva", alertaHandler.MarcarInactiva)
}
