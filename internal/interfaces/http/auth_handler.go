package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password"
// @Success      201   {object}  dto.UserDto
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationProblem
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if st := in.Validate(); st.IsFailed() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationProblem(st.Errors()))
	}
	res := h.uc.Register(c.Context(), in)
	if res.IsFailed() {
		return respondErrors(c, res.Errors())
	}
	return c.Status(fiber.StatusCreated).JSON(res.Value())
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := h.uc.Login(c.Context(), in)
	if res.IsFailed() {
		// Credenciales malas responden 401, no el 403 genérico del mapeo.
		if _, ok := res.Errors()[0].(*result.AccessDeniedError); ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return respondErrors(c, res.Errors())
	}
	return c.JSON(res.Value())
}
