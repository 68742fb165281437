package customers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
	"github.com/joseph-ayodele/po-reader/internal/repository"
)

// Service handles customer directory business logic.
type Service struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewService creates a new customer service.
func NewService(customerRepo repository.CustomerRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateCustomerRequest represents customer creation parameters.
type CreateCustomerRequest struct {
	CompanyName string
	DisplayName string
	GivenName   string
	FamilyName  string
	Email       string
	WebAddr     string
}

// CreateCustomer adds a customer to the directory. The display name defaults
// to the company name.
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*entity.Customer, error) {
	company := strings.TrimSpace(req.CompanyName)
	display := strings.TrimSpace(req.DisplayName)
	if company == "" && display == "" {
		return nil, common.InvalidInputErrorf("company name or display name is required")
	}
	if display == "" {
		display = company
	}

	given := strings.TrimSpace(req.GivenName)
	family := strings.TrimSpace(req.FamilyName)
	c := &entity.Customer{
		Name:        strings.TrimSpace(given + " " + family),
		DisplayName: display,
		CompanyName: company,
		GivenName:   given,
		FamilyName:  family,
		Email:       strings.TrimSpace(req.Email),
		WebAddr:     strings.TrimSpace(req.WebAddr),
	}

	created, err := s.customerRepo.Create(ctx, c)
	if err != nil {
		return nil, common.WrapError(err, "create customer")
	}

	s.logger.Info("customer created successfully", "customer_id", created.ID, "display_name", created.DisplayName)
	return created, nil
}

// ListCustomers returns all customers, oldest first.
func (s *Service) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	list, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, common.WrapError(err, "list customers")
	}
	return list, nil
}

// CountCustomers returns the directory size.
func (s *Service) CountCustomers(ctx context.Context) (int, error) {
	n, err := s.customerRepo.Count(ctx)
	if err != nil {
		return 0, common.WrapError(err, "count customers")
	}
	return n, nil
}
