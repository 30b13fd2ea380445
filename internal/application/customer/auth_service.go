package customer

import (
	"context"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
)

// PasswordHasher hashes and verifies customer passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer issues session tokens for authenticated customers.
type TokenIssuer interface {
	Issue(customerID uuid.UUID, email string) (string, error)
}

// ResetTokenStore holds short-lived password reset tokens. Consume resolves
// a token to the customer it was issued for and invalidates it.
type ResetTokenStore interface {
	Store(ctx context.Context, token string, customerID uuid.UUID) error
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthService handles registration, login and password recovery
type AuthService struct {
	customerRepo customer.CustomerRepository
	hasher       PasswordHasher
	tokens       TokenIssuer
	resetTokens  ResetTokenStore
	notification checkout.Notification
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	customerRepo customer.CustomerRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	resetTokens ResetTokenStore,
	notification checkout.Notification,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		hasher:       hasher,
		tokens:       tokens,
		resetTokens:  resetTokens,
		notification: notification,
		logger:       logger,
	}
}

// Register creates a customer account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if existing, err := s.customerRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	cust, err := customer.NewCustomer(req.Email, hash, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	cust.Newsletter = req.Newsletter

	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}
	return s.issue(cust)
}

// Login verifies the credentials and issues a session token. Wrong email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	cust, err := s.customerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}
	if !cust.Active || !s.hasher.Compare(cust.PasswordHash, req.Password) {
		return nil, shared.ErrUnauthenticated
	}
	return s.issue(cust)
}

// ForgotPassword starts a password reset. The response is identical whether
// or not the email matches an account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) {
	cust, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		return
	}

	token := uuid.NewString()
	if err := s.resetTokens.Store(ctx, token, cust.ID); err != nil {
		s.logger.Warn("reset token store failed", zap.Error(err))
		return
	}
	s.notification.SendPasswordReset(ctx, cust.Email, token)
}

// ResetPassword completes a password reset started by ForgotPassword. The
// token works once; any failure reads as the same invalid-token error.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	invalidToken := shared.NewDomainError("UNAUTHENTICATED", "Invalid or expired reset token")

	customerID, err := s.resetTokens.Consume(ctx, req.Token)
	if err != nil {
		return invalidToken
	}
	cust, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return invalidToken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	if err := cust.ChangePassword(hash); err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return err
	}

	s.logger.Info("password reset completed", zap.String("customer_id", cust.ID.String()))
	return nil
}

func (s *AuthService) issue(cust *customer.Customer) (*AuthResult, error) {
	token, err := s.tokens.Issue(cust.ID, cust.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Customer: cust}, nil
}
