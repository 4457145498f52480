package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
)

const defaultExpenseItem = "General"

// ExpenseService handles expense-related operations
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	shopRepo    repository.ShopRepository
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, shopRepo repository.ShopRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		shopRepo:    shopRepo,
		now:         time.Now,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	ShopID     *uuid.UUID
	ItemName   string
	Amount     ledger.Amount
	Category   string
	Notes      string
	IncurredAt *time.Time
}

// CreateExpense records money spent by a shop
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	shopID, err := resolveShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, apperror.NewFieldError("amount", "Amount must be greater than zero")
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	item := strings.TrimSpace(input.ItemName)
	if item == "" {
		item = defaultExpenseItem
	}
	incurred := s.now()
	if input.IncurredAt != nil && !input.IncurredAt.IsZero() {
		incurred = *input.IncurredAt
	}

	expense := &entity.Expense{
		ShopID:     shopID,
		ItemName:   item,
		Amount:     input.Amount,
		Category:   enum.ParseExpenseCategory(input.Category),
		Notes:      strings.TrimSpace(input.Notes),
		IncurredAt: incurred,
		RecordedBy: callerID(ctx),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	expense.Shop = shop
	return expense, nil
}

// ListExpensesInput represents the expense list filters
type ListExpensesInput struct {
	Pagination *pagination.PaginationParams
	ShopID     *uuid.UUID
	Category   string
	From       *time.Time
	To         *time.Time
}

// ListExpenses lists expenses, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, input *ListExpensesInput) (*pagination.PaginatedResult[entity.Expense], error) {
	params := &repository.ExpenseFilterParams{
		Pagination: input.Pagination,
		ShopID:     filterShop(ctx, input.ShopID),
		From:       input.From,
		To:         input.To,
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if c := strings.TrimSpace(input.Category); c != "" {
		category := enum.ParseExpenseCategory(c)
		params.Category = &category
	}

	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ExpenseCategories lists the categories expenses are filed under
func (s *ExpenseService) ExpenseCategories() []enum.ExpenseCategory {
	return enum.ExpenseCategories()
}
