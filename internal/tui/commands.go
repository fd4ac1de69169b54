package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/localpay/localpay/internal/contacts"
	"github.com/localpay/localpay/internal/model"
)

const (
	requestTimeout = 30 * time.Second
	storageTimeout = 5 * time.Second
)

// loadProfile re-fetches the session account. This is the only trusted
// source for the balance shown on the dashboard.
func (m Model) loadProfile() tea.Cmd {
	client, acct := m.config.Client, m.acctType
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		account, err := client.Me(ctx, acct)
		return profileLoadedMsg{account: account, err: err}
	}
}

// loadHistory fetches one page of transactions.
func (m Model) loadHistory(offset int) tea.Cmd {
	client, acct := m.config.Client, m.acctType
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		txns, pagination, err := client.History(ctx, acct, historyPageSize, offset)
		return historyLoadedMsg{
			transactions: txns,
			pagination:   pagination,
			offset:       offset,
			err:          err,
		}
	}
}

// loadNotifications reads the local notification log.
func (m Model) loadNotifications() tea.Cmd {
	store := m.config.Storage
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		notifications, err := store.ListNotifications(ctx, false)
		if err != nil {
			return notificationsLoadedMsg{err: err}
		}
		unread, err := store.UnreadCount(ctx)
		return notificationsLoadedMsg{notifications: notifications, unread: unread, err: err}
	}
}

// loadContacts merges saved contacts with history counterparts.
func (m Model) loadContacts() tea.Cmd {
	store := m.config.Storage
	txns := m.transactions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		saved, err := store.ListContacts(ctx)
		if err != nil {
			return contactsLoadedMsg{err: err}
		}
		return contactsLoadedMsg{contacts: contacts.Aggregate(saved, txns)}
	}
}

// deleteContact forgets a saved contact and reloads the merged list.
func (m Model) deleteContact(cbu string) tea.Cmd {
	store := m.config.Storage
	txns := m.transactions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		if err := store.DeleteContact(ctx, cbu); err != nil {
			return contactsLoadedMsg{err: err}
		}
		saved, err := store.ListContacts(ctx)
		if err != nil {
			return contactsLoadedMsg{err: err}
		}
		return contactsLoadedMsg{contacts: contacts.Aggregate(saved, txns)}
	}
}

// searchAccounts runs a backend account search.
func (m Model) searchAccounts(query string) tea.Cmd {
	client, acct := m.config.Client, m.acctType
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		results, err := client.Search(ctx, acct, query, "")
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// runVerify executes the active flow's verify call for a generation.
func (m Model) runVerify(gen uint64) tea.Cmd {
	flow := m.machine.Flow()
	input := m.machine.Input()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		quote, err := flow.Verify(ctx, input)
		return verifyResultMsg{gen: gen, quote: quote, err: err}
	}
}

// runExecute executes the active flow's execute call for a generation.
func (m Model) runExecute(gen uint64) tea.Cmd {
	flow := m.machine.Flow()
	input := m.machine.Input()
	quote := *m.machine.Quote()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		receipt, err := flow.Execute(ctx, input, quote)
		return executeResultMsg{gen: gen, receipt: receipt, err: err}
	}
}

// recordReceipt logs a completed operation as a local notification and
// remembers the counterpart as a contact when it has a CBU.
func (m Model) recordReceipt(title string, quote *model.Quote, receipt model.Receipt) tea.Cmd {
	store := m.config.Storage
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		_, err := store.AppendNotification(ctx, model.Notification{
			Title:   title,
			Message: receipt.Message,
			Type:    model.NotificationSuccess,
		})
		if err != nil {
			return receiptRecordedMsg{err: err}
		}

		if quote != nil && quote.Counterpart.CBU != "" {
			err = store.SaveContact(ctx, model.Contact{
				Name:     quote.Counterpart.DisplayName(),
				CBU:      quote.Counterpart.CBU,
				Email:    quote.Counterpart.Email,
				LastUsed: time.Now().UTC(),
			})
		}
		return receiptRecordedMsg{err: err}
	}
}

// markNotificationRead marks one notification read and reloads.
func (m Model) markNotificationRead(id string) tea.Cmd {
	store := m.config.Storage
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		if err := store.MarkNotificationRead(ctx, id); err != nil {
			return notificationMarkedMsg{err: err}
		}
		return notificationMarkedMsg{}
	}
}

// clearNotifications deletes the whole local notification log.
func (m Model) clearNotifications() tea.Cmd {
	store := m.config.Storage
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		if err := store.ClearNotifications(ctx); err != nil {
			return notificationMarkedMsg{err: err}
		}
		return notificationMarkedMsg{}
	}
}
