package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/email"
	"github.com/sangkips/tailorshop-api/pkg/utils"
	"go.uber.org/zap"
)

// WelcomeMailer sends the welcome email of a new shop manager.
type WelcomeMailer interface {
	IsConfigured() bool
	SendManagerWelcome(w email.ManagerWelcome) error
}

// ShopService manages shops and the managers who run them. Owner only.
type ShopService struct {
	shopRepo repository.ShopRepository
	userRepo repository.UserRepository
	mailer   WelcomeMailer
	log      *zap.Logger
}

// NewShopService creates a new shop service
func NewShopService(
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	mailer WelcomeMailer,
	log *zap.Logger,
) *ShopService {
	return &ShopService{
		shopRepo: shopRepo,
		userRepo: userRepo,
		mailer:   mailer,
		log:      log,
	}
}

// ManagerInput describes the manager profile created with a shop
type ManagerInput struct {
	FullName string
	Email    string
	Password string
}

// CreateShopInput represents the create shop input
type CreateShopInput struct {
	Name     string
	Location string
	Phone    string
	Manager  *ManagerInput
}

// CreateShop creates a shop and, when given, its manager profile.
func (s *ShopService) CreateShop(ctx context.Context, input *CreateShopInput) (*entity.Shop, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Shop name is required")
	}

	var manager *entity.User
	if input.Manager != nil {
		var err error
		manager, err = s.newManager(ctx, input.Manager)
		if err != nil {
			return nil, err
		}
	}

	shop := &entity.Shop{
		Name: name,
		Settings: entity.ShopSettings{
			Location: strings.TrimSpace(input.Location),
			Phone:    strings.TrimSpace(input.Phone),
		},
	}
	if err := s.shopRepo.Create(ctx, shop, manager); err != nil {
		if errors.Is(err, infraRepo.ErrDuplicate) {
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, err
	}

	if manager != nil {
		shop.ManagerName = manager.FullName
		shop.ManagerEmail = manager.Email
		s.sendWelcome(shop, manager, input.Manager.Password)
	}

	s.log.Info("shop created", zap.String("shop_id", shop.ID.String()), zap.String("name", shop.Name))
	return shop, nil
}

// newManager validates input and builds an unsaved manager profile.
func (s *ShopService) newManager(ctx context.Context, input *ManagerInput) (*entity.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	addr := strings.ToLower(strings.TrimSpace(input.Email))

	var fieldErrors []apperror.FieldError
	if fullName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "manager.full_name", Message: "Manager name is required"})
	}
	if addr == "" || !strings.Contains(addr, "@") {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "manager.email", Message: "A valid email is required"})
	}
	if len(input.Password) < utils.MinPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "manager.password", Message: utils.ErrPasswordTooShort.Error()})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.userRepo.GetByEmail(ctx, addr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		FullName: fullName,
		Email:    addr,
		Password: hashed,
		Role:     enum.RoleManager,
		Provider: "local",
	}, nil
}

// sendWelcome is best effort: the shop exists whether or not mail goes out.
func (s *ShopService) sendWelcome(shop *entity.Shop, manager *entity.User, password string) {
	if s.mailer == nil || !s.mailer.IsConfigured() {
		return
	}
	err := s.mailer.SendManagerWelcome(email.ManagerWelcome{
		ManagerName: manager.FullName,
		Email:       manager.Email,
		ShopName:    shop.Name,
		Password:    password,
	})
	if err != nil {
		s.log.Warn("manager welcome email failed",
			zap.String("shop_id", shop.ID.String()),
			zap.Error(err),
		)
	}
}

// ListShops returns every shop with its manager and worker count
func (s *ShopService) ListShops(ctx context.Context) ([]entity.Shop, error) {
	return s.shopRepo.List(ctx)
}

// GetShop retrieves a shop by ID
func (s *ShopService) GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return shop, nil
}

// UpdateShopInput represents the update shop input
type UpdateShopInput struct {
	Name     *string
	Location *string
	Phone    *string
}

// UpdateShop renames a shop or changes its contact details
func (s *ShopService) UpdateShop(ctx context.Context, id uuid.UUID, input *UpdateShopInput) (*entity.Shop, error) {
	shop, err := s.GetShop(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Shop name is required")
		}
		shop.Name = name
	}
	if input.Location != nil {
		shop.Settings.Location = strings.TrimSpace(*input.Location)
	}
	if input.Phone != nil {
		shop.Settings.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// AppointManager creates a manager profile for a shop that has none.
func (s *ShopService) AppointManager(ctx context.Context, shopID uuid.UUID, input *ManagerInput) (*entity.User, error) {
	shop, err := s.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	current, err := s.userRepo.GetManagerByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, apperror.NewConflictError("Shop already has a manager")
	}

	manager, err := s.newManager(ctx, input)
	if err != nil {
		return nil, err
	}
	manager.ShopID = &shop.ID

	if err := s.userRepo.Create(ctx, manager); err != nil {
		if errors.Is(err, infraRepo.ErrDuplicate) {
			if raced, _ := s.userRepo.GetManagerByShop(ctx, shop.ID); raced != nil {
				return nil, apperror.NewConflictError("Shop already has a manager")
			}
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, err
	}

	s.sendWelcome(shop, manager, input.Password)
	return manager, nil
}

// ResetManagerPassword sets a new password on the manager of the shop.
func (s *ShopService) ResetManagerPassword(ctx context.Context, shopID uuid.UUID, newPassword string) error {
	if _, err := s.GetShop(ctx, shopID); err != nil {
		return err
	}

	manager, err := s.userRepo.GetManagerByShop(ctx, shopID)
	if err != nil {
		return err
	}
	if manager == nil {
		return apperror.NewNotFoundError("Manager")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooShort) {
			return apperror.NewFieldError("new_password", err.Error())
		}
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, manager.ID, hashed); err != nil {
		return err
	}

	s.log.Info("manager password reset", zap.String("shop_id", shopID.String()), zap.String("user_id", manager.ID.String()))
	return nil
}

// FireManager removes the manager profile bound to the shop
func (s *ShopService) FireManager(ctx context.Context, shopID uuid.UUID) error {
	if _, err := s.GetShop(ctx, shopID); err != nil {
		return err
	}

	removed, err := s.userRepo.DeleteManagersByShop(ctx, shopID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperror.NewNotFoundError("Manager")
	}

	s.log.Info("manager removed", zap.String("shop_id", shopID.String()), zap.Int64("profiles", removed))
	return nil
}

// DeleteShop removes a shop with everything recorded against it
func (s *ShopService) DeleteShop(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetShop(ctx, id); err != nil {
		return err
	}

	if err := s.shopRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.log.Info("shop deleted", zap.String("shop_id", id.String()))
	return nil
}
