package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/carepoint/medibill/cmd/tui/internal/view"
	"github.com/carepoint/medibill/internal/bill"
	"github.com/carepoint/medibill/internal/config"
	"github.com/carepoint/medibill/internal/database"
	"github.com/carepoint/medibill/internal/invoice"
	invoiceStore "github.com/carepoint/medibill/internal/invoice/store"
	"github.com/carepoint/medibill/internal/medicine"
	medicineStore "github.com/carepoint/medibill/internal/medicine/store"
)

type model struct {
	medService *medicine.Service
	invService *invoice.Service
	header     bill.Header

	currentView View

	inventoryView view.InventoryModel
	billingView   view.BillingModel
	invoicesView  view.InvoicesModel
}

type View int

const (
	ViewMenu      View = 0
	ViewInventory View = 1
	ViewBilling   View = 2
	ViewInvoices  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	medSvc := medicine.NewService(medicineStore.New(db))
	invSvc := invoice.NewService(invoiceStore.New(db), medSvc)

	header := bill.Header{
		Name:    cfg.Hospital.Name,
		Address: cfg.Hospital.Address,
		Phone:   cfg.Hospital.Phone,
	}

	return model{
		medService:    medSvc,
		invService:    invSvc,
		header:        header,
		currentView:   ViewMenu,
		inventoryView: view.NewInventoryModel(medSvc),
		billingView:   view.NewBillingModel(invSvc, medSvc, header),
		invoicesView:  view.NewInvoicesModel(invSvc, header),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.medService)

				return m, m.inventoryView.Init()
			case "2":
				m.currentView = ViewBilling
				m.billingView = view.NewBillingModel(m.invService, m.medService, m.header)

				return m, m.billingView.Init()
			case "3":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invService, m.header)

				return m, m.invoicesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewBilling:
		var newModel tea.Model
		newModel, cmd = m.billingView.Update(msg)
		m.billingView = newModel.(view.BillingModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Medibill TUI\n\n" +
				"1. Manage Inventory\n" +
				"2. New Bill\n" +
				"3. Browse Invoices\n\n" +
				"q. Quit",
		)
	case ViewInventory:
		return m.inventoryView.View()
	case ViewBilling:
		return m.billingView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
