package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carepoint/medibill/internal/bill"
	"github.com/carepoint/medibill/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateBill
)

type InvoicesModel struct {
	CommonModel
	invService *invoice.Service
	header     bill.Header

	state invoicesState
	table table.Model
	invs  []*invoice.Invoice

	// Bill being viewed
	current *invoice.Invoice

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(invSvc *invoice.Service, header bill.Header) InvoicesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Patient", Width: 28},
		{Title: "Items", Width: 6},
		{Title: "Grand Total", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		invService: invSvc,
		header:     header,
		table:      t,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStateBill {
		return "Esc: back to list"
	}
	return "Esc: back | Enter: view bill | x: delete (restores stock) | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.invs = msg.invs
		m.refreshTable()
		return m, nil

	case invoiceDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Invoice deleted, stock restored"
		}
		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.state == invoicesStateBill {
			if keyMsg.Type == tea.KeyEsc {
				m.state = invoicesStateBrowse
				m.current = nil
				m.table.Focus()
			}
			return m, nil
		}

		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInvoicesCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.invs) {
				m.current = m.invs[idx]
				m.state = invoicesStateBill
				m.table.Blur()
			}
			return m, nil
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == invoicesStateBill && m.current != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			bill.Render(m.header, m.current) + "\n(Esc to back)",
		)
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invs))
	for _, inv := range m.invs {
		rows = append(rows, table.Row{
			FormatDate(inv.CreatedAt),
			string(inv.BillType),
			inv.CustomerName,
			strconv.Itoa(len(inv.Items)),
			FormatAmount(inv.GrandTotal),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invs []*invoice.Invoice
	err  error
}

func (m InvoicesModel) loadInvoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invs, err := m.invService.List(ctx, invoice.ListFilter{})
		return loadInvoicesMsg{invs: invs, err: err}
	}
}

type invoiceDeletedMsg struct {
	err error
}

func (m InvoicesModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invs) {
		return nil
	}

	id := m.invs[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return invoiceDeletedMsg{err: m.invService.Delete(ctx, id)}
	}
}
