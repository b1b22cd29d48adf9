package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/repository"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.EmployeeDetail, error)
	ExistsByNIK(ctx context.Context, nik, excludeID string) (bool, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Deactivate(ctx context.Context, id string) error
}

// EmployeeService implements staff roster management.
type EmployeeService struct {
	employees employeeRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs an EmployeeService.
func NewEmployeeService(employees employeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employees: employees, validate: validator.New(), logger: logger}
}

// List returns employees matching the filter.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDetail, *models.Pagination, error) {
	employees, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list employees")
	}
	return employees, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get fetches one employee.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.EmployeeDetail, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get employee")
	}
	return employee, nil
}

// Create registers a new employee after checking NIK uniqueness.
func (s *EmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	exists, err := s.employees.ExistsByNIK(ctx, req.NIK, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check employee nik")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "employee NIK already registered")
	}

	employee := &models.Employee{
		NIK:          req.NIK,
		FullName:     req.FullName,
		RoleTitle:    req.RoleTitle,
		StoreID:      req.StoreID,
		IsSupervisor: req.IsSupervisor,
		Active:       true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create employee")
	}
	s.logger.Info("employee created", zap.String("employee_id", employee.ID))
	return employee, nil
}

// Update rewrites an employee's mutable fields.
func (s *EmployeeService) Update(ctx context.Context, id string, req dto.UpdateEmployeeRequest) (*models.Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.employees.ExistsByNIK(ctx, req.NIK, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check employee nik")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "employee NIK already registered")
	}

	employee := current.Employee
	employee.NIK = req.NIK
	employee.FullName = req.FullName
	employee.RoleTitle = req.RoleTitle
	employee.StoreID = req.StoreID
	employee.IsSupervisor = req.IsSupervisor
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if err := s.employees.Update(ctx, &employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update employee")
	}
	return &employee, nil
}

// Deactivate soft-deletes an employee.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	if err := s.employees.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "deactivate employee")
	}
	return nil
}
