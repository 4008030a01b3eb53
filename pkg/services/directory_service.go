package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/repositories"
)

// DirectoryService manages the customer and technician registries.
type DirectoryService interface {
	AddCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
	FindCustomerByName(ctx context.Context, name string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	// RemoveCustomer deletes the customer and, through the schema cascades,
	// their mobile numbers and maintenance history.
	RemoveCustomer(ctx context.Context, customerID uuid.UUID) error

	AddMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error
	ListMobileNumbers(ctx context.Context, customerID uuid.UUID) ([]*models.MobileNumber, error)
	RemoveMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error

	AddEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error)
	FindEmployeeByMobile(ctx context.Context, mobileNumber string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	RemoveEmployee(ctx context.Context, employeeID uuid.UUID) error
}

type directoryDeps struct {
	scopes       ScopeProvider
	customerRepo repositories.CustomerRepository
	employeeRepo repositories.EmployeeRepository
	logger       *zap.Logger
}

type directoryService struct {
	deps directoryDeps
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(
	scopes ScopeProvider,
	customerRepo repositories.CustomerRepository,
	employeeRepo repositories.EmployeeRepository,
	logger *zap.Logger,
) DirectoryService {
	return &directoryService{
		deps: directoryDeps{
			scopes:       scopes,
			customerRepo: customerRepo,
			employeeRepo: employeeRepo,
			logger:       logger.Named("directory"),
		},
	}
}

var _ DirectoryService = (*directoryService)(nil)

func (s *directoryService) AddCustomer(ctx context.Context, customer *models.Customer) error {
	if err := s.deps.customerRepo.Create(s.deps.scopes.WithScope(ctx), customer); err != nil {
		return err
	}
	s.deps.logger.Info("Customer added", zap.String("customer_id", customer.ID.String()))
	return nil
}

func (s *directoryService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	return s.deps.customerRepo.GetByID(s.deps.scopes.WithScope(ctx), customerID)
}

func (s *directoryService) FindCustomerByName(ctx context.Context, name string) (*models.Customer, error) {
	return s.deps.customerRepo.GetByName(s.deps.scopes.WithScope(ctx), name)
}

func (s *directoryService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.deps.customerRepo.List(s.deps.scopes.WithScope(ctx))
}

func (s *directoryService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.deps.customerRepo.Update(s.deps.scopes.WithScope(ctx), customer)
}

func (s *directoryService) RemoveCustomer(ctx context.Context, customerID uuid.UUID) error {
	if err := s.deps.customerRepo.Delete(s.deps.scopes.WithScope(ctx), customerID); err != nil {
		return err
	}
	s.deps.logger.Info("Customer removed", zap.String("customer_id", customerID.String()))
	return nil
}

func (s *directoryService) AddMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error {
	return s.deps.customerRepo.AddMobileNumber(s.deps.scopes.WithScope(ctx), customerID, number)
}

func (s *directoryService) ListMobileNumbers(ctx context.Context, customerID uuid.UUID) ([]*models.MobileNumber, error) {
	return s.deps.customerRepo.ListMobileNumbers(s.deps.scopes.WithScope(ctx), customerID)
}

func (s *directoryService) RemoveMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error {
	return s.deps.customerRepo.RemoveMobileNumber(s.deps.scopes.WithScope(ctx), customerID, number)
}

func (s *directoryService) AddEmployee(ctx context.Context, employee *models.Employee) error {
	if err := s.deps.employeeRepo.Create(s.deps.scopes.WithScope(ctx), employee); err != nil {
		return err
	}
	s.deps.logger.Info("Employee added", zap.String("employee_id", employee.ID.String()))
	return nil
}

func (s *directoryService) GetEmployee(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error) {
	return s.deps.employeeRepo.GetByID(s.deps.scopes.WithScope(ctx), employeeID)
}

func (s *directoryService) FindEmployeeByMobile(ctx context.Context, mobileNumber string) (*models.Employee, error) {
	return s.deps.employeeRepo.GetByMobile(s.deps.scopes.WithScope(ctx), mobileNumber)
}

func (s *directoryService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.deps.employeeRepo.List(s.deps.scopes.WithScope(ctx))
}

func (s *directoryService) RemoveEmployee(ctx context.Context, employeeID uuid.UUID) error {
	return s.deps.employeeRepo.Delete(s.deps.scopes.WithScope(ctx), employeeID)
}
