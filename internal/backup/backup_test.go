package backup

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Theme = model.ThemeDark
	settings.BackupEmail = "me@example.com"

	data := Data{
		ExportDate: time.Date(2025, 10, 1, 14, 0, 0, 0, time.UTC),
		Settings:   settings,
		Transactions: []model.Transaction{
			testutil.Txn("1", model.TypeIncome, "100", "2025-10-01", model.CategorySalary),
			testutil.Txn("2", model.TypeExpense, "12.34", "2025-10-01", model.CategoryFood),
		},
		Categories: model.DefaultCategories(),
	}
	data.Transactions[1].Note = "lunch"

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, data))
	assert.Contains(t, buf.String(), "\n  \"settings\": {")
	assert.Contains(t, buf.String(), `"amount": 12.34`)

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.True(t, data.ExportDate.Equal(got.ExportDate))
	assert.Equal(t, data.Settings, got.Settings)
	assert.Equal(t, data.Categories, got.Categories)
	require.Len(t, got.Transactions, 2)
	for i := range data.Transactions {
		want, have := data.Transactions[i], got.Transactions[i]
		assert.Equal(t, want.ID, have.ID)
		assert.True(t, want.Date.Equal(have.Date))
		assert.True(t, want.Amount.Equal(have.Amount))
		assert.Equal(t, want.Category, have.Category)
		assert.Equal(t, want.Note, have.Note)
	}
}

func TestEncodeEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Data{Settings: model.DefaultSettings()}))
	assert.Contains(t, buf.String(), `"transactions": []`)

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Transactions)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "definitely not json"},
		{"truncated", `{"transactions": [`},
		{"missing transactions", `{"categories": [], "settings": {}}`},
		{"missing categories", `{"transactions": [], "settings": {}}`},
		{"missing settings", `{"transactions": [], "categories": []}`},
		{"wrong shape", `{"transactions": {}, "categories": [], "settings": {}}`},
		{"null section", `{"transactions": null, "categories": [], "settings": {}}`},
		{"bad amount", `{"transactions": [{"id":"1","type":"income","amount":"abc"}], "categories": [], "settings": {}}`},
		{"bad type", `{"transactions": [{"id":"1","type":"transfer","amount":1}], "categories": [], "settings": {}}`},
		{"missing id", `{"transactions": [{"type":"income","amount":1}], "categories": [], "settings": {}}`},
		{"bad export date", `{"transactions": [], "categories": [], "settings": {}, "exportDate": "yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, common.ErrInvalidBackup)
		})
	}
}

func TestDecodeWithoutExportDate(t *testing.T) {
	got, err := Decode(strings.NewReader(`{"transactions": [], "categories": [], "settings": {"currency":"USD"}}`))
	require.NoError(t, err)
	assert.True(t, got.ExportDate.IsZero())
	assert.Equal(t, "USD", got.Settings.Currency)
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "ledger-backup-2025-10-01.json", DefaultFileName(time.Date(2025, 10, 1, 23, 0, 0, 0, time.UTC)))
}
