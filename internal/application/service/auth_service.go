package service

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/otp"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// AuthService handles staff login and guest table sessions
type AuthService struct {
	userRepo     repository.UserRepository
	tableRepo    repository.TableRepository
	customerRepo repository.CustomerRepository
	otpSvc       *otp.Service
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tableRepo repository.TableRepository,
	customerRepo repository.CustomerRepository,
	otpSvc *otp.Service,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tableRepo:    tableRepo,
		customerRepo: customerRepo,
		otpSvc:       otpSvc,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the staff login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the staff login response
type LoginOutput struct {
	AccessToken string       `json:"access_token"`
	User        *entity.User `json:"user"`
}

// Login authenticates a staff member and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(input.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, apperror.ErrForbidden
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{AccessToken: token, User: user}, nil
}

// Refresh reissues an access token for a still-active staff member
func (s *AuthService) Refresh(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrUnauthorized
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{AccessToken: token, User: user}, nil
}

// GetCurrentUser returns the authenticated staff member
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// TableSessionOutput represents a guest session bound to a table
type TableSessionOutput struct {
	SessionToken string              `json:"session_token"`
	Table        *entity.DiningTable `json:"table"`
	Customer     *entity.Customer    `json:"customer,omitempty"`
}

// ScanTable exchanges a table QR token for an anonymous guest session
func (s *AuthService) ScanTable(ctx context.Context, qrToken string) (*TableSessionOutput, error) {
	table, err := s.tableRepo.GetByQRToken(ctx, qrToken)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	if !table.Active {
		return nil, apperror.ErrTableInactive
	}

	token, err := s.jwtManager.GenerateGuestToken(table.ID, nil)
	if err != nil {
		return nil, err
	}

	return &TableSessionOutput{SessionToken: token, Table: table}, nil
}

// RequestOTP sends a verification code to the guest's phone
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return apperror.NewBadRequestError("Invalid phone number")
	}
	return s.otpSvc.Request(ctx, phone)
}

// VerifyOTP checks the code, upserts the customer record and reissues
// the guest session token with the customer attached.
func (s *AuthService) VerifyOTP(ctx context.Context, tableID uuid.UUID, phone, code, name string) (*TableSessionOutput, error) {
	if !s.otpSvc.Verify(phone, code) {
		return nil, apperror.ErrInvalidOTP
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{
			ID:       utils.NewUUID(),
			Phone:    phone,
			Name:     name,
			Verified: true,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
	} else if !customer.Verified || (name != "" && customer.Name != name) {
		customer.Verified = true
		if name != "" {
			customer.Name = name
		}
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
	}

	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	token, err := s.jwtManager.GenerateGuestToken(table.ID, &customer.ID)
	if err != nil {
		return nil, err
	}

	return &TableSessionOutput{SessionToken: token, Table: table, Customer: customer}, nil
}

// CreateUserInput represents the create staff user input
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// CreateUser registers a new staff account (admin only)
func (s *AuthService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if input.Role != entity.RoleAdmin && input.Role != entity.RoleKitchen && input.Role != entity.RoleWaiter {
		return nil, apperror.NewBadRequestError("Unknown role")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already in use")
	}

	user := &entity.User{
		ID:     utils.NewUUID(),
		Email:  input.Email,
		Name:   input.Name,
		Role:   input.Role,
		Active: true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
