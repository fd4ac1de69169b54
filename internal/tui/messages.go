package tui

import (
	"github.com/localpay/localpay/internal/model"
)

// Data loading messages.
type profileLoadedMsg struct {
	err     error
	account *model.Account
}

type historyLoadedMsg struct {
	err          error
	transactions []model.Transaction
	pagination   model.Pagination
	offset       int
}

type notificationsLoadedMsg struct {
	err           error
	notifications []model.Notification
	unread        int
}

type contactsLoadedMsg struct {
	err      error
	contacts []model.Contact
}

type searchResultsMsg struct {
	err     error
	query   string
	results []model.Account
}

// Wizard completion messages. The generation token lets the machine
// discard results that arrive after a reset or re-submit.
type verifyResultMsg struct {
	err   error
	quote model.Quote
	gen   uint64
}

type executeResultMsg struct {
	err     error
	receipt model.Receipt
	gen     uint64
}

// Local bookkeeping messages.
type receiptRecordedMsg struct {
	err error
}

type notificationMarkedMsg struct {
	err error
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}
