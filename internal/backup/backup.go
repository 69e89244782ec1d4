// Package backup reads and writes the portable JSON backup document.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/model"
)

// Data is the full exported state of the ledger.
type Data struct {
	ExportDate   time.Time           `json:"exportDate"`
	Settings     model.AppSettings   `json:"settings"`
	Transactions []model.Transaction `json:"transactions"`
	Categories   []model.Category    `json:"categories"`
}

// DefaultFileName names a backup written on day t.
func DefaultFileName(t time.Time) string {
	return fmt.Sprintf("ledger-backup-%s.json", t.Format(model.DayLayout))
}

// Encode writes data as two-space indented JSON.
func Encode(w io.Writer, data Data) error {
	if data.Transactions == nil {
		data.Transactions = []model.Transaction{}
	}
	if data.Categories == nil {
		data.Categories = []model.Category{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// document mirrors Data with raw fields so missing sections can be told apart
// from empty ones.
type document struct {
	Transactions json.RawMessage `json:"transactions"`
	Categories   json.RawMessage `json:"categories"`
	Settings     json.RawMessage `json:"settings"`
	ExportDate   json.RawMessage `json:"exportDate"`
}

// Decode parses a backup file. Every failure wraps common.ErrInvalidBackup.
// An absent exportDate is tolerated; the three collections are not.
func Decode(r io.Reader) (Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Data{}, fmt.Errorf("%w: %w", common.ErrInvalidBackup, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Data{}, fmt.Errorf("%w: %w", common.ErrInvalidBackup, err)
	}

	var data Data
	if err := decodeSection("transactions", doc.Transactions, '[', &data.Transactions); err != nil {
		return Data{}, err
	}
	if err := decodeSection("categories", doc.Categories, '[', &data.Categories); err != nil {
		return Data{}, err
	}
	if err := decodeSection("settings", doc.Settings, '{', &data.Settings); err != nil {
		return Data{}, err
	}
	if len(doc.ExportDate) > 0 && !bytes.Equal(doc.ExportDate, []byte("null")) {
		if err := json.Unmarshal(doc.ExportDate, &data.ExportDate); err != nil {
			return Data{}, fmt.Errorf("%w: exportDate: %w", common.ErrInvalidBackup, err)
		}
	}

	for i, t := range data.Transactions {
		if t.ID == "" || !t.Type.Valid() || t.Amount.IsNegative() {
			return Data{}, fmt.Errorf("%w: transaction %d is incomplete", common.ErrInvalidBackup, i)
		}
	}

	return data, nil
}

func decodeSection(name string, raw json.RawMessage, open byte, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != open {
		return fmt.Errorf("%w: missing or malformed %s", common.ErrInvalidBackup, name)
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrInvalidBackup, name, err)
	}
	return nil
}
