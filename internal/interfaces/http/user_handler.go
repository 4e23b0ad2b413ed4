package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de cuentas de usuario
// (protegido; las operaciones sobre otros usuarios exigen rol admin, que
// el caso de uso revalida contra el almacenamiento).
type UserHandler struct {
	svc *usecase.UserAccountService
}

// NewUserHandler construye el handler.
func NewUserHandler(svc *usecase.UserAccountService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	res := h.svc.GetCurrentUser(c.Context(), GetUserID(c))
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// List GET /api/users?skip=0&take=50
func (h *UserHandler) List(c *fiber.Ctx) error {
	skip, take, errs := parsePagination(c)
	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationProblem(errs))
	}
	res := h.svc.ListUsers(c.Context(), GetUserID(c), skip, take)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// Create POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserDto
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if st := in.Validate(); st.IsFailed() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationProblem(st.Errors()))
	}
	res := h.svc.CreateUser(c.Context(), GetUserID(c), in)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.Status(fiber.StatusCreated).JSON(res.Value())
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	res := h.svc.GetUserByID(c.Context(), GetUserID(c), c.Params("id"))
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserDto
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := h.svc.UpdateUser(c.Context(), GetUserID(c), c.Params("id"), in)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	st := h.svc.DeleteUser(c.Context(), GetUserID(c), c.Params("id"))
	if st.IsFailed() {
		return respondErrors(c, st.Errors())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
