// Package tui implements the interactive dashboard: the balance home
// screen, the money-moving wizards, history, search, notifications and
// the account's payment QR.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/flows"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/components"
	"github.com/localpay/localpay/internal/tui/themes"
	"github.com/localpay/localpay/internal/wizard"
)

// State represents the current screen of the TUI.
type State int

const (
	StateHome State = iota
	StateWizard
	StateCode
	StateHistory
	StateDetail
	StateSearch
	StateNotifications
	StateProfile
	StateMyQR
	StateHelp
)

const historyPageSize = 20

// Model holds the main TUI state.
type Model struct {
	config       Config
	theme        themes.Theme
	keymap       KeyMap
	account      model.Account
	acctType     model.AccountType
	machine      *wizard.Machine
	wizardView   components.WizardFormModel
	codeView     components.WithdrawalCodeModel
	txnList      components.TransactionListModel
	txnDetail    components.TransactionDetailModel
	searchView   components.SearchModel
	notifView    components.NotificationsModel
	transactions []model.Transaction
	pagination   model.Pagination
	contacts     []model.Contact
	lastError    string
	unread       int
	width        int
	height       int
	state        State
	quitting     bool
}

// newModel creates a model with the given configuration.
func newModel(cfg Config) Model {
	theme := cfg.Theme
	return Model{
		config:     cfg,
		theme:      theme,
		keymap:     DefaultKeyMap(),
		account:    cfg.Account,
		acctType:   cfg.AccountType,
		state:      StateHome,
		txnList:    components.NewTransactionList(nil, model.Pagination{}, theme),
		searchView: components.NewSearch(nil, theme),
		notifView:  components.NewNotifications(nil, theme),
		width:      cfg.Width,
		height:     cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadProfile(),
		m.loadHistory(0),
		m.loadNotifications(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if newM, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newM, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case profileLoadedMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.account = *msg.account
		return m, nil

	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case notificationsLoadedMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.unread = msg.unread
		m.notifView.SetNotifications(msg.notifications)
		return m, nil

	case contactsLoadedMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.contacts = msg.contacts
		m.searchView.SetContacts(msg.contacts)
		return m, nil

	case searchResultsMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.searchView.SetResults(msg.query, msg.results)
		return m, nil

	case components.VerifyRequestedMsg:
		if m.machine == nil {
			return m, nil
		}
		return m, m.runVerify(msg.Generation)

	case components.ExecuteRequestedMsg:
		if m.machine == nil {
			return m, nil
		}
		return m, m.runExecute(msg.Generation)

	case verifyResultMsg:
		if m.machine != nil {
			m.machine.ResolveVerify(msg.gen, msg.quote, msg.err)
			m.wizardView.Sync()
		}
		return m, nil

	case executeResultMsg:
		return m.handleExecuteResult(msg)

	case components.WizardDismissedMsg:
		return m.closeWizard()

	case components.TransactionSelectedMsg:
		m.txnDetail = components.NewTransactionDetail(msg.Transaction, m.theme)
		m.state = StateDetail
		return m, nil

	case components.LoadMoreMsg:
		return m, m.loadHistory(msg.Offset)

	case components.AccountSelectedMsg:
		return m.startSendTo(msg.CBU)

	case components.ContactDeletedMsg:
		return m, m.deleteContact(msg.CBU)

	case components.SearchQueryMsg:
		return m, m.searchAccounts(msg.Query)

	case components.NotificationReadMsg:
		return m, m.markNotificationRead(msg.ID)

	case components.NotificationsClearedMsg:
		return m, m.clearNotifications()

	case notificationMarkedMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		return m, m.loadNotifications()

	case receiptRecordedMsg:
		if msg.err != nil {
			return m.withError(msg.err)
		}
		return m, nil

	case errorMsg:
		return m.withError(msg.err)
	}

	return m.updateActiveComponent(msg)
}

// updateActiveComponent delegates a message to the focused screen.
func (m Model) updateActiveComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateWizard:
		m.wizardView, cmd = m.wizardView.Update(msg)
	case StateCode:
		m.codeView, cmd = m.codeView.Update(msg)
	case StateHistory:
		m.txnList, cmd = m.txnList.Update(msg)
	case StateDetail:
		m.txnDetail, cmd = m.txnDetail.Update(msg)
	case StateSearch:
		m.searchView, cmd = m.searchView.Update(msg)
	case StateNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	}
	return m, cmd
}

// handleGlobalKeys handles keys that work across screens. Returns
// handled=false when the active component should see the key instead.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	// Ctrl+C always quits; other globals only apply outside text entry.
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit, true
	}
	if key.Matches(msg, m.keymap.ClearScreen) {
		return m, tea.ClearScreen, true
	}

	switch m.state {
	case StateHome:
		return m.handleHomeKey(msg)

	case StateHelp, StateProfile, StateMyQR, StateDetail:
		if key.Matches(msg, m.keymap.Back, m.keymap.Quit, m.keymap.Select) {
			if m.state == StateDetail {
				m.state = StateHistory
			} else {
				m.state = StateHome
			}
			return m, nil, true
		}

	case StateHistory, StateSearch, StateNotifications:
		if key.Matches(msg, m.keymap.Back) {
			m.state = StateHome
			m.lastError = ""
			return m, m.loadProfile(), true
		}

	case StateCode:
		if key.Matches(msg, m.keymap.Back, m.keymap.Select) {
			return m.dismissCode()
		}
	}

	return m, nil, false
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	m.lastError = ""

	switch {
	case key.Matches(msg, m.keymap.Quit, m.keymap.Back):
		m.quitting = true
		return m, tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		return m, nil, true

	case key.Matches(msg, m.keymap.Refresh):
		return m, tea.Batch(m.loadProfile(), m.loadHistory(0), m.loadNotifications()), true

	case key.Matches(msg, m.keymap.Send):
		if m.acctType == model.AccountTypeUser {
			return m.startWizard(flows.NewSend(m.config.Client))
		}

	case key.Matches(msg, m.keymap.Deposit):
		if m.acctType == model.AccountTypeStore {
			return m.startWizard(flows.NewAddMoney(m.config.Client))
		}

	case key.Matches(msg, m.keymap.Withdraw):
		if m.acctType == model.AccountTypeUser {
			return m.startWizard(flows.NewGenerateWithdrawal(m.config.Client, m.account.Balance))
		}
		return m.startWizard(flows.NewProcessWithdrawal(m.config.Client))

	case key.Matches(msg, m.keymap.History):
		m.state = StateHistory
		return m, m.loadHistory(0), true

	case key.Matches(msg, m.keymap.Search):
		m.searchView = components.NewSearch(m.contacts, m.theme)
		m.state = StateSearch
		return m, tea.Batch(m.loadContacts(), m.searchView.Init()), true

	case key.Matches(msg, m.keymap.Notifications):
		m.state = StateNotifications
		return m, m.loadNotifications(), true

	case key.Matches(msg, m.keymap.Profile):
		m.state = StateProfile
		return m, m.loadProfile(), true

	case key.Matches(msg, m.keymap.MyQR):
		if m.acctType == model.AccountTypeUser {
			m.state = StateMyQR
			return m, nil, true
		}
	}

	return m, nil, false
}

// startWizard opens a fresh wizard for the given flow.
func (m Model) startWizard(flow wizard.Flow) (tea.Model, tea.Cmd, bool) {
	m.machine = wizard.New(flow)
	m.wizardView = components.NewWizardForm(m.machine, m.theme)
	m.state = StateWizard
	return m, m.wizardView.Init(), true
}

// startSendTo opens a send wizard with the CBU prefilled, e.g. from a
// search result or saved contact.
func (m Model) startSendTo(cbu string) (tea.Model, tea.Cmd) {
	if m.acctType != model.AccountTypeUser {
		return m, nil
	}
	m.machine = wizard.New(flows.NewSend(m.config.Client))
	m.machine.SetField(flows.FieldCBU, cbu)
	m.wizardView = components.NewWizardForm(m.machine, m.theme)
	m.wizardView.Sync()
	m.state = StateWizard
	return m, m.wizardView.Init()
}

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.withError(msg.err)
	}
	if msg.offset > 0 {
		m.transactions = append(m.transactions, msg.transactions...)
	} else {
		m.transactions = msg.transactions
	}
	m.pagination = msg.pagination
	if msg.offset > 0 {
		m.txnList.SetTransactions(m.transactions, m.pagination)
	} else {
		m.txnList = components.NewTransactionList(m.transactions, m.pagination, m.theme)
		m.txnList.Resize(m.width, m.height)
	}
	return m, nil
}

func (m Model) handleExecuteResult(msg executeResultMsg) (tea.Model, tea.Cmd) {
	if m.machine == nil {
		return m, nil
	}

	quote := m.machine.Quote()
	m.machine.ResolveExecute(msg.gen, msg.receipt, msg.err)
	m.wizardView.Sync()

	if m.machine.Step() != wizard.StepDone {
		return m, nil
	}

	cmds := []tea.Cmd{
		m.recordReceipt(m.machine.Flow().Title(), quote, msg.receipt),
		m.loadProfile(),
	}

	// A generated withdrawal code gets its own countdown screen and
	// stays up until dismissed; every other receipt closes on its own
	// after a short display delay.
	if msg.receipt.Code != nil && m.acctType == model.AccountTypeUser {
		m.codeView = components.NewWithdrawalCode(*msg.receipt.Code, m.theme)
		m.state = StateCode
		cmds = append(cmds, m.codeView.Init())
	} else {
		cmds = append(cmds, m.wizardView.AutoClose())
	}

	return m, tea.Batch(cmds...)
}

// closeWizard resets the machine and returns home, refreshing the
// profile so the balance reflects any completed operation.
func (m Model) closeWizard() (tea.Model, tea.Cmd) {
	if m.machine != nil {
		m.machine.Reset()
	}
	m.machine = nil
	m.state = StateHome
	return m, tea.Batch(m.loadProfile(), m.loadHistory(0))
}

// dismissCode closes the withdrawal code screen.
func (m Model) dismissCode() (tea.Model, tea.Cmd, bool) {
	if m.machine != nil {
		m.machine.Reset()
		m.machine = nil
	}
	m.state = StateHome
	return m, m.loadProfile(), true
}

func (m Model) withError(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	if errors.Is(err, common.ErrSessionExpired) {
		m.quitting = true
		return m, tea.Quit
	}
	m.lastError = common.Message(err, "")
	return m, nil
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.txnList.Resize(m.width, m.height)
	m.txnDetail.Resize(m.width, m.height)
	m.searchView.Resize(m.width, m.height)
	m.notifView.Resize(m.width, m.height)
	m.wizardView.Resize(m.width, m.height)
	m.codeView.Resize(m.width, m.height)
}
