package testutil

import (
	"time"

	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// Txn builds a transaction for tests. date is "YYYY-MM-DD" and amount a decimal string.
func Txn(id string, typ model.TransactionType, amount, date, categoryID string) model.Transaction {
	day, err := time.Parse(model.DayLayout, date)
	if err != nil {
		panic(err)
	}
	cat, ok := model.FindCategory(model.DefaultCategories(), categoryID)
	if !ok {
		cat = model.Category{ID: categoryID, Name: categoryID, Color: model.DefaultCategoryColor}
	}
	return model.Transaction{
		ID:       id,
		Date:     day.Add(12 * time.Hour),
		Type:     typ,
		Amount:   decimal.RequireFromString(amount),
		Category: cat,
	}
}

// RandomTransactions generates n plausible transactions spread over 2024-2025.
// The same seed always yields the same list.
func RandomTransactions(seed int64, n int) []model.Transaction {
	faker := gofakeit.New(seed)
	categories := model.DefaultCategories()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)

	txns := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		typ := model.TypeExpense
		if faker.Bool() {
			typ = model.TypeIncome
		}
		choices := model.CategoriesFor(categories, typ)
		cat := choices[faker.Number(0, len(choices)-1)]

		txns = append(txns, model.Transaction{
			ID:       faker.UUID(),
			Date:     faker.DateRange(start, end),
			Type:     typ,
			Amount:   decimal.NewFromFloat(faker.Price(1, 5000)).Round(2),
			Category: cat,
			Note:     faker.Word(),
		})
	}
	return txns
}
