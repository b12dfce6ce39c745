package http

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/salidas"
)

// SalidaHandler maneja el registro y consulta de salidas.
type SalidaHandler struct {
	uc *salidas.SalidaUseCase
}

// NewSalidaHandler construye el handler.
func NewSalidaHandler(uc *salidas.SalidaUseCase) *SalidaHandler {
	return &SalidaHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar salida de materiales
// @Description  Acepta JSON directo, o multipart con el campo "data" (JSON) y
//               el archivo "firma" (imagen de la firma del solicitante).
// @Tags         salidas
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.RegistrarSalidaRequest  true  "id_solicitante, actividad, items"
// @Success      201   {object}  dto.SalidaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.PartialFailureResponse
// @Router       /api/salidas [post]
func (h *SalidaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarSalidaRequest
	var firma []byte
	var firmaContentType string

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		data := c.FormValue("data")
		if data == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "campo multipart 'data' requerido"})
		}
		if err := json.Unmarshal([]byte(data), &in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "campo 'data' no es JSON válido"})
		}
		if fh, err := c.FormFile("firma"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la firma"})
			}
			defer f.Close()
			firma, err = io.ReadAll(f)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la firma"})
			}
			firmaContentType = fh.Header.Get("Content-Type")
		}
		if err := validate.Struct(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
	} else {
		if ok, resp := parseAndValidate(c, &in); !ok {
			return resp
		}
	}

	salida, err := h.uc.Registrar(c.Context(), GetUserID(c), in, firma, firmaContentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSalidaResponse(salida, nil))
}

// Listar devuelve las salidas más recientes.
func (h *SalidaHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	lista, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SalidaResponse, 0, len(lista))
	for _, s := range lista {
		out = append(out, dto.ToSalidaResponse(s, nil))
	}
	return c.JSON(out)
}

// Detalle devuelve una salida con sus líneas.
func (h *SalidaHandler) Detalle(c *fiber.Ctx) error {
	salida, lineas, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSalidaResponse(salida, lineas))
}
