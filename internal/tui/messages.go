package tui

import (
	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
)

type monthLoadedMsg struct {
	err      error
	settings model.AppSettings
	view     ledger.MonthView
}

type transactionDeletedMsg struct {
	err         error
	transaction model.Transaction
}
