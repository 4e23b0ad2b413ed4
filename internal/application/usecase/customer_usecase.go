package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/application"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// CustomerScope agrupa el repositorio y la unidad de trabajo que comparten
// una operación de escritura. La fábrica crea un scope nuevo por operación
// (ámbito de petición), igual que el tx runner ata repos a una transacción.
type CustomerScope struct {
	Repo repository.Repository[*entity.Customer, string]
	UoW  repository.UnitOfWork
}

// CustomerAppService orquesta validación, mutación de dominio, persistencia
// y mapeo a DTO para clientes. Cada operación es un pipeline corto de una
// pasada; las lecturas van por el query service (sin tracking).
type CustomerAppService struct {
	newScope func() CustomerScope
	query    repository.QueryService[*entity.Customer, string, dto.CustomerDto]
	ids      application.IDGenerator
	mapper   func(*entity.Customer) dto.CustomerDto
}

// NewCustomerAppService construye el servicio con sus colaboradores
// inyectados desde la raíz de composición.
func NewCustomerAppService(
	newScope func() CustomerScope,
	query repository.QueryService[*entity.Customer, string, dto.CustomerDto],
	ids application.IDGenerator,
	mapper func(*entity.Customer) dto.CustomerDto,
) *CustomerAppService {
	return &CustomerAppService{newScope: newScope, query: query, ids: ids, mapper: mapper}
}

// Get devuelve el cliente por id o NotFound si no existe.
func (s *CustomerAppService) Get(ctx context.Context, id string) result.Result[dto.CustomerDto] {
	customerDto, err := s.query.GetByID(ctx, id)
	if err != nil {
		return result.Fail[dto.CustomerDto](result.Unknown(err))
	}
	if customerDto == nil {
		return result.Fail[dto.CustomerDto](
			result.NotFound(fmt.Sprintf("Customer with ID '%s' was not found.", id)),
		)
	}
	return result.Ok(*customerDto)
}

// List valida la paginación y devuelve una página de clientes con el total.
func (s *CustomerAppService) List(ctx context.Context, skip, take *int) result.Result[dto.Page[dto.CustomerDto]] {
	if st := application.ValidatePagination(skip, take); st.IsFailed() {
		return result.FailFrom[dto.Page[dto.CustomerDto]](st)
	}
	skipValue, takeValue := application.ApplyPaginationDefaults(skip, take)

	totalCount, err := s.query.Count(ctx)
	if err != nil {
		return result.Fail[dto.Page[dto.CustomerDto]](result.Unknown(err))
	}
	items, err := s.query.GetPage(ctx, skipValue, takeValue, nil)
	if err != nil {
		return result.Fail[dto.Page[dto.CustomerDto]](result.Unknown(err))
	}
	return result.Ok(dto.NewPage(totalCount, items))
}

// Create construye la entidad vía factoría, la persiste y devuelve el DTO.
func (s *CustomerAppService) Create(ctx context.Context, in dto.CreateUpdateCustomerDto) result.Result[dto.CustomerDto] {
	customerResult := entity.NewCustomer(
		s.ids.NewID(),
		in.Name,
		in.Email,
		in.Number,
		in.Notes,
		in.CreatedDate,
		in.ModifiedDate,
	)
	if customerResult.IsFailed() {
		return result.Fail[dto.CustomerDto](mapErrorsToResult(customerResult.Errors())...)
	}
	customer := customerResult.Value()

	scope := s.newScope()
	defer scope.UoW.Close(ctx)

	if err := scope.Repo.Add(ctx, customer); err != nil {
		return result.Fail[dto.CustomerDto](result.Unknown(err))
	}
	if _, err := scope.UoW.SaveChanges(ctx); err != nil {
		return result.Fail[dto.CustomerDto](saveError(err))
	}
	return result.Ok(s.mapper(customer))
}

// Update carga la entidad, aplica cada actualización de campo de forma
// independiente y acumula los fallos antes de persistir.
func (s *CustomerAppService) Update(ctx context.Context, id string, in dto.CreateUpdateCustomerDto) result.Result[dto.CustomerDto] {
	scope := s.newScope()
	defer scope.UoW.Close(ctx)

	customer, err := scope.Repo.GetByID(ctx, id)
	if err != nil {
		return result.Fail[dto.CustomerDto](result.Unknown(err))
	}
	if customer == nil {
		return result.Fail[dto.CustomerDto](
			result.NotFound(fmt.Sprintf("Customer with ID '%s' was not found.", id)),
		)
	}

	merged := result.Merge(
		customer.UpdateName(in.Name),
		customer.UpdateEmail(in.Email),
		customer.UpdateNumber(in.Number),
		customer.UpdateNotes(in.Notes),
		customer.UpdateCreatedDate(in.CreatedDate),
		customer.UpdateModifiedDate(in.ModifiedDate),
	)
	if merged.IsFailed() {
		return result.Fail[dto.CustomerDto](mapErrorsToResult(merged.Errors())...)
	}

	if err := scope.Repo.Update(ctx, customer); err != nil {
		return result.Fail[dto.CustomerDto](result.Unknown(err))
	}
	if _, err := scope.UoW.SaveChanges(ctx); err != nil {
		return result.Fail[dto.CustomerDto](saveError(err))
	}
	return result.Ok(s.mapper(customer))
}

// Delete elimina el cliente por id; NotFound si no existe.
func (s *CustomerAppService) Delete(ctx context.Context, id string) result.Status {
	scope := s.newScope()
	defer scope.UoW.Close(ctx)

	customer, err := scope.Repo.GetByID(ctx, id)
	if err != nil {
		return result.Failure(result.Unknown(err))
	}
	if customer == nil {
		return result.Failure(
			result.NotFound(fmt.Sprintf("Customer with ID '%s' was not found.", id)),
		)
	}
	if err := scope.Repo.Delete(ctx, customer); err != nil {
		return result.Failure(result.Unknown(err))
	}
	if _, err := scope.UoW.SaveChanges(ctx); err != nil {
		return result.Failure(saveError(err))
	}
	return result.Success()
}

// saveError traduce el error del guardado: una violación de unicidad es un
// conflicto de negocio; el resto se propaga sin clasificar.
func saveError(err error) result.Error {
	if errors.Is(err, domain.ErrDuplicate) {
		return result.Conflict("A customer with the same unique value already exists.")
	}
	return result.Unknown(err)
}
