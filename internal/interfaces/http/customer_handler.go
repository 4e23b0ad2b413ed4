package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	svc *usecase.CustomerAppService
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(svc *usecase.CustomerAppService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List GET /api/customers?skip=0&take=50
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	skip, take, errs := parsePagination(c)
	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationProblem(errs))
	}
	res := h.svc.List(c.Context(), skip, take)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// Get GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	res := h.svc.Get(c.Context(), c.Params("id"))
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUpdateCustomerDto
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if st := in.Validate(); st.IsFailed() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationProblem(st.Errors()))
	}
	res := h.svc.Create(c.Context(), in)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.Status(fiber.StatusCreated).JSON(res.Value())
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateUpdateCustomerDto
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if st := in.Validate(); st.IsFailed() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationProblem(st.Errors()))
	}
	res := h.svc.Update(c.Context(), c.Params("id"), in)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	st := h.svc.Delete(c.Context(), c.Params("id"))
	if st.IsFailed() {
		return respondErrors(c, st.Errors())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePagination lee skip y take de la query. Ausentes quedan en nil
// para que la capa de aplicación aplique sus valores por defecto; valores
// no numéricos se reportan como errores de validación por campo.
func parsePagination(c *fiber.Ctx) (skip, take *int, errs []result.Error) {
	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, result.Validation("skip", "Skip must be an integer."))
		} else {
			skip = &n
		}
	}
	if raw := c.Query("take"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, result.Validation("take", "Take must be an integer."))
		} else {
			take = &n
		}
	}
	return skip, take, errs
}
