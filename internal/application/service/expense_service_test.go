package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
)

func newExpenseFixture() (*ExpenseService, *stubExpenseRepo, uuid.UUID) {
	shop := &entity.Shop{ID: uuid.New(), Name: "CBD"}
	expenses := newStubExpenseRepo()
	svc := NewExpenseService(expenses, newStubShopRepo(newStubUserRepo(), shop))
	return svc, expenses, shop.ID
}

func TestExpenseServiceCreateExpense(t *testing.T) {
	svc, _, shopID := newExpenseFixture()
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := managerCtx(shopID)

	e, err := svc.CreateExpense(ctx, &CreateExpenseInput{Amount: 150000, Category: "utilities"})
	require.NoError(t, err)
	assert.Equal(t, "General", e.ItemName)
	assert.Equal(t, enum.ExpenseUtilities, e.Category)
	assert.Equal(t, now, e.IncurredAt)
	assert.Equal(t, shopID, e.ShopID)
	require.NotNil(t, e.RecordedBy)

	e, err = svc.CreateExpense(ctx, &CreateExpenseInput{ItemName: "Thread", Amount: 500, Category: "Fabric"})
	require.NoError(t, err)
	assert.Equal(t, enum.ExpenseOther, e.Category)

	_, err = svc.CreateExpense(ctx, &CreateExpenseInput{Amount: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(err))

	_, err = svc.CreateExpense(ownerCtx(), &CreateExpenseInput{Amount: 100})
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(err))

	missing := uuid.New()
	_, err = svc.CreateExpense(ownerCtx(), &CreateExpenseInput{ShopID: &missing, Amount: 100})
	assert.Equal(t, http.StatusNotFound, appErrorCode(err))
}

func TestExpenseServiceListAndDelete(t *testing.T) {
	svc, expenses, shopID := newExpenseFixture()
	ctx := ownerCtx()

	e, err := svc.CreateExpense(ctx, &CreateExpenseInput{ShopID: &shopID, ItemName: "Rent", Amount: 2000000, Category: "Rent"})
	require.NoError(t, err)

	res, err := svc.ListExpenses(ctx, &ListExpensesInput{
		ShopID:     &shopID,
		Category:   "Rent",
		Pagination: &pagination.PaginationParams{Page: 0, PerPage: 500},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 100, res.Pagination.PerPage)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	require.NotNil(t, expenses.lastParams.Category)
	assert.Equal(t, enum.ExpenseRent, *expenses.lastParams.Category)
	require.NotNil(t, expenses.lastParams.ShopID)

	_, err = svc.ListExpenses(managerCtx(shopID), &ListExpensesInput{ShopID: &shopID})
	require.NoError(t, err)
	assert.Nil(t, expenses.lastParams.ShopID)
	assert.Nil(t, expenses.lastParams.Category)

	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
	assert.Equal(t, http.StatusNotFound, appErrorCode(svc.DeleteExpense(ctx, e.ID)))

	assert.Contains(t, svc.ExpenseCategories(), enum.ExpenseSalaries)
}
