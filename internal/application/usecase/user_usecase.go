package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Clientes-api/internal/application"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// UserAccountService gestiona cuentas de usuario sobre el subsistema de
// identidad. Toda escritura exige que el llamador sea admin; la pertenencia
// al rol se comprueba contra el almacenamiento en cada llamada, sin caché
// por petición.
type UserAccountService struct {
	users repository.UserRepository
	ids   application.IDGenerator
}

// NewUserAccountService construye el servicio.
func NewUserAccountService(users repository.UserRepository, ids application.IDGenerator) *UserAccountService {
	return &UserAccountService{users: users, ids: ids}
}

// GetCurrentUser devuelve el usuario autenticado actual.
func (s *UserAccountService) GetCurrentUser(ctx context.Context, callerID string) result.Result[dto.UserDto] {
	userResult := s.currentUser(ctx, callerID)
	if userResult.IsFailed() {
		return result.Fail[dto.UserDto](userResult.Errors()...)
	}
	user := userResult.Value()
	isAdmin, err := s.users.HasRole(ctx, user.ID, entity.RoleAdmin)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	return result.Ok(dto.NewUserDto(user, isAdmin))
}

// ListUsers devuelve una página de usuarios con su bandera de admin.
func (s *UserAccountService) ListUsers(ctx context.Context, callerID string, skip, take *int) result.Result[dto.Page[dto.UserDto]] {
	if st := application.ValidatePagination(skip, take); st.IsFailed() {
		return result.FailFrom[dto.Page[dto.UserDto]](st)
	}
	skipValue, takeValue := application.ApplyPaginationDefaults(skip, take)

	if st := s.callerIsAdmin(ctx, callerID); st.IsFailed() {
		return result.FailFrom[dto.Page[dto.UserDto]](st)
	}

	totalCount, err := s.users.Count(ctx)
	if err != nil {
		return result.Fail[dto.Page[dto.UserDto]](result.Unknown(err))
	}
	usersPage, err := s.users.List(ctx, skipValue, takeValue)
	if err != nil {
		return result.Fail[dto.Page[dto.UserDto]](result.Unknown(err))
	}

	// Resolver los admins de la página con una sola consulta en lugar de
	// una llamada HasRole por usuario.
	adminIDs, err := s.users.IDsInRole(ctx, entity.RoleAdmin)
	if err != nil {
		return result.Fail[dto.Page[dto.UserDto]](result.Unknown(err))
	}
	items := make([]dto.UserDto, 0, len(usersPage))
	for _, u := range usersPage {
		_, isAdmin := adminIDs[u.ID]
		items = append(items, dto.NewUserDto(u, isAdmin))
	}
	return result.Ok(dto.NewPage(totalCount, items))
}

// CreateUser crea una cuenta nueva y, si se pide, le asigna el rol admin.
// Si la asignación de rol falla después de crear la cuenta, se compensa
// eliminando el usuario recién creado para no dejar la bandera inconsistente.
func (s *UserAccountService) CreateUser(ctx context.Context, callerID string, in dto.CreateUserDto) result.Result[dto.UserDto] {
	if st := s.callerIsAdmin(ctx, callerID); st.IsFailed() {
		return result.FailFrom[dto.UserDto](st)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	now := time.Now().UTC()
	newUser := &entity.User{
		ID:           s.ids.NewID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return result.Fail[dto.UserDto](result.Conflict("A user with that email already exists."))
		}
		return result.Fail[dto.UserDto](result.Unknown(err))
	}

	if in.IsAdmin {
		if err := s.users.AssignRole(ctx, newUser.ID, entity.RoleAdmin); err != nil {
			_ = s.users.Delete(ctx, newUser.ID)
			return result.Fail[dto.UserDto](result.Unknown(err))
		}
	}

	isAdmin, err := s.users.HasRole(ctx, newUser.ID, entity.RoleAdmin)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	return result.Ok(dto.NewUserDto(newUser, isAdmin))
}

// GetUserByID devuelve un usuario por id (solo admin).
func (s *UserAccountService) GetUserByID(ctx context.Context, callerID, id string) result.Result[dto.UserDto] {
	if st := s.callerIsAdmin(ctx, callerID); st.IsFailed() {
		return result.FailFrom[dto.UserDto](st)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	if user == nil {
		return result.Fail[dto.UserDto](result.NotFound("User not found."))
	}
	isAdmin, err := s.users.HasRole(ctx, user.ID, entity.RoleAdmin)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	return result.Ok(dto.NewUserDto(user, isAdmin))
}

// UpdateUser actualiza email, contraseña o rol de un usuario (solo admin).
// Un usuario no puede quitarse su propio rol de admin.
func (s *UserAccountService) UpdateUser(ctx context.Context, callerID, id string, in dto.UpdateUserDto) result.Result[dto.UserDto] {
	if st := s.callerIsAdmin(ctx, callerID); st.IsFailed() {
		return result.FailFrom[dto.UserDto](st)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	if user == nil {
		return result.Fail[dto.UserDto](result.NotFound("User not found."))
	}

	changed := false
	if in.NewEmail != "" {
		user.Email = in.NewEmail
		changed = true
	}
	if in.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return result.Fail[dto.UserDto](result.Unknown(err))
		}
		user.PasswordHash = string(hash)
		changed = true
	}
	if changed {
		user.ModifiedDate = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return result.Fail[dto.UserDto](result.Conflict("A user with that email already exists."))
			}
			return result.Fail[dto.UserDto](result.Unknown(err))
		}
	}

	if in.IsAdmin != nil {
		currentlyAdmin, err := s.users.HasRole(ctx, user.ID, entity.RoleAdmin)
		if err != nil {
			return result.Fail[dto.UserDto](result.Unknown(err))
		}
		switch {
		case *in.IsAdmin && !currentlyAdmin:
			if err := s.users.AssignRole(ctx, user.ID, entity.RoleAdmin); err != nil {
				return result.Fail[dto.UserDto](result.Unknown(err))
			}
		case !*in.IsAdmin && currentlyAdmin:
			if callerID == user.ID {
				return result.Fail[dto.UserDto](
					result.Conflict("Users cannot remove their own admin role."),
				)
			}
			if err := s.users.RemoveRole(ctx, user.ID, entity.RoleAdmin); err != nil {
				return result.Fail[dto.UserDto](result.Unknown(err))
			}
		}
	}

	isAdmin, err := s.users.HasRole(ctx, user.ID, entity.RoleAdmin)
	if err != nil {
		return result.Fail[dto.UserDto](result.Unknown(err))
	}
	return result.Ok(dto.NewUserDto(user, isAdmin))
}

// DeleteUser elimina una cuenta (solo admin). Un usuario no puede borrarse
// a sí mismo ni borrar la última cuenta admin restante.
func (s *UserAccountService) DeleteUser(ctx context.Context, callerID, id string) result.Status {
	if st := s.callerIsAdmin(ctx, callerID); st.IsFailed() {
		return st
	}
	if callerID == id {
		return result.Failure(result.Conflict("Users cannot delete their own account."))
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return result.Failure(result.Unknown(err))
	}
	if user == nil {
		return result.Failure(result.NotFound("User not found."))
	}

	isTargetAdmin, err := s.users.HasRole(ctx, user.ID, entity.RoleAdmin)
	if err != nil {
		return result.Failure(result.Unknown(err))
	}
	if isTargetAdmin {
		admins, err := s.users.CountInRole(ctx, entity.RoleAdmin)
		if err != nil {
			return result.Failure(result.Unknown(err))
		}
		if admins <= 1 {
			return result.Failure(result.Conflict("Cannot delete the last admin user."))
		}
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return result.Failure(result.Unknown(err))
	}
	return result.Success()
}

// currentUser carga la cuenta del llamador; sin autenticación o sin cuenta
// el resultado es AccessDenied.
func (s *UserAccountService) currentUser(ctx context.Context, callerID string) result.Result[*entity.User] {
	if callerID == "" {
		return result.Fail[*entity.User](result.AccessDenied("User is not authenticated."))
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return result.Fail[*entity.User](result.Unknown(err))
	}
	if user == nil {
		return result.Fail[*entity.User](result.AccessDenied("User not found."))
	}
	return result.Ok(user)
}

// callerIsAdmin comprueba contra el almacenamiento que el llamador existe y
// pertenece al rol admin.
func (s *UserAccountService) callerIsAdmin(ctx context.Context, callerID string) result.Status {
	userResult := s.currentUser(ctx, callerID)
	if userResult.IsFailed() {
		return userResult.Status()
	}
	isAdmin, err := s.users.HasRole(ctx, userResult.Value().ID, entity.RoleAdmin)
	if err != nil {
		return result.Failure(result.Unknown(err))
	}
	if !isAdmin {
		return result.Failure(result.AccessDenied("User is not an admin."))
	}
	return result.Success()
}
