package enum

import "strings"

// ExpenseCategory groups shop expenses for reporting.
type ExpenseCategory string

const (
	ExpenseSalaries    ExpenseCategory = "Salaries"
	ExpenseMarketing   ExpenseCategory = "Marketing"
	ExpenseRent        ExpenseCategory = "Rent"
	ExpenseUtilities   ExpenseCategory = "Utilities"
	ExpenseMaintenance ExpenseCategory = "Maintenance"
	ExpenseSupplies    ExpenseCategory = "Supplies"
	ExpenseEquipment   ExpenseCategory = "Equipment"
	ExpenseOther       ExpenseCategory = "Other"
)

// ExpenseCategories lists the categories offered to managers.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseSalaries, ExpenseMarketing, ExpenseRent, ExpenseUtilities,
		ExpenseMaintenance, ExpenseSupplies, ExpenseEquipment, ExpenseOther,
	}
}

// ParseExpenseCategory matches c case-insensitively. Blank and unknown
// categories become Other.
func ParseExpenseCategory(c string) ExpenseCategory {
	c = strings.TrimSpace(c)
	for _, known := range ExpenseCategories() {
		if strings.EqualFold(string(known), c) {
			return known
		}
	}
	return ExpenseOther
}
