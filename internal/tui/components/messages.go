package components

import (
	"time"

	"github.com/localpay/localpay/internal/model"
)

// VerifyRequestedMsg is emitted when the wizard form submits its input
// and the parent must run the flow's verify call.
type VerifyRequestedMsg struct {
	Generation uint64
}

// ExecuteRequestedMsg is emitted when the wizard form confirms the
// quote and the parent must run the flow's execute call.
type ExecuteRequestedMsg struct {
	Generation uint64
}

// WizardDismissedMsg is emitted when the user leaves the wizard from
// the input or done step.
type WizardDismissedMsg struct{}

// TransactionSelectedMsg is sent when a history row is opened.
type TransactionSelectedMsg struct {
	Transaction model.Transaction
	Index       int
}

// LoadMoreMsg asks the parent to fetch the next history page.
type LoadMoreMsg struct {
	Offset int
}

// AccountSelectedMsg is sent when a search result or saved contact is
// picked as a transfer target.
type AccountSelectedMsg struct {
	CBU  string
	Name string
}

// SearchQueryMsg asks the parent to run an account search.
type SearchQueryMsg struct {
	Query string
}

// ContactDeletedMsg asks the parent to forget a saved contact.
type ContactDeletedMsg struct {
	CBU string
}

// NotificationReadMsg asks the parent to mark one notification read.
type NotificationReadMsg struct {
	ID string
}

// NotificationsClearedMsg asks the parent to delete all notifications.
type NotificationsClearedMsg struct{}

// CodeTickMsg drives the withdrawal code countdown.
type CodeTickMsg time.Time
