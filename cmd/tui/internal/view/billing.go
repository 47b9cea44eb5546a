package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/carepoint/medibill/internal/bill"
	"github.com/carepoint/medibill/internal/invoice"
	"github.com/carepoint/medibill/internal/medicine"
)

type billingState int

const (
	billingStatePatient billingState = iota
	billingStateItems
	billingStatePickMedicine
	billingStateCustomItem
	billingStateTotals
	billingStateDone
)

type billingLine struct {
	params invoice.ItemParams
	name   string
}

// BillingModel walks through composing a new bill: patient details, line
// items, then discount and tax. Saving reserves stock through the invoice
// service, so a short shelf surfaces here as an error.
type BillingModel struct {
	CommonModel
	invService *invoice.Service
	medService *medicine.Service
	header     bill.Header

	state      billingState
	form       *huh.Form
	itemsTable table.Model
	lines      []billingLine
	meds       []*medicine.Medicine

	saved  *invoice.Invoice
	status string

	// Patient form bindings
	formCustomer   string
	formContact    string
	formBillType   invoice.BillType
	formAge        string
	formSex        string
	formAddress    string
	formConsultant string

	// Item form bindings
	formMedIdx  int
	formQty     string
	formItem    string
	formPrice   string
	formDiscStr string
	formTaxStr  string
}

func NewBillingModel(invSvc *invoice.Service, medSvc *medicine.Service, header bill.Header) BillingModel {
	columns := []table.Column{
		{Title: "Item", Width: 36},
		{Title: "Qty", Width: 5},
		{Title: "Rate", Width: 10},
		{Title: "Amount", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	m := BillingModel{
		invService:   invSvc,
		medService:   medSvc,
		header:       header,
		itemsTable:   t,
		formBillType: invoice.BillTypeMedical,
	}
	m.form = m.patientForm()

	return m
}

func (m BillingModel) Title() string { return "New Bill" }
func (m BillingModel) ShortHelp() string {
	switch m.state {
	case billingStateItems:
		return "m: add medicine | c: add charge | x: remove | t: totals | Esc: back"
	case billingStateDone:
		return "Esc: back"
	default:
		return "Navigate form | Esc: back"
	}
}

func (m BillingModel) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.loadMedsCmd())
}

func (m BillingModel) patientForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer").
				Title("Patient / Customer Name").
				Value(&m.formCustomer).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("contact").
				Title("Contact").
				Value(&m.formContact),

			huh.NewSelect[invoice.BillType]().
				Key("bill_type").
				Title("Bill Type").
				Options(
					huh.NewOption("Medical (pharmacy counter)", invoice.BillTypeMedical),
					huh.NewOption("Hospital (inpatient)", invoice.BillTypeHospital),
				).
				Value(&m.formBillType),

			huh.NewInput().
				Key("age").
				Title("Age (hospital bills)").
				Value(&m.formAge),

			huh.NewInput().
				Key("sex").
				Title("Sex (hospital bills)").
				Value(&m.formSex),

			huh.NewInput().
				Key("address").
				Title("Address (hospital bills)").
				Value(&m.formAddress),

			huh.NewInput().
				Key("consultant").
				Title("Consultant (hospital bills)").
				Value(&m.formConsultant),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BillingModel) medicineForm() *huh.Form {
	options := make([]huh.Option[int], 0, len(m.meds))
	for i, med := range m.meds {
		label := fmt.Sprintf("%s (stock %d, %s)", med.Name, med.Quantity, FormatAmount(med.Price))
		options = append(options, huh.NewOption(label, i))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("medicine").
				Title("Medicine").
				Options(options...).
				Value(&m.formMedIdx),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("must be at least 1")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m BillingModel) customItemForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("item").
				Title("Charge").
				Placeholder("Dressing").
				Value(&m.formItem).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("charge name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("must be at least 1")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Rate").
				Placeholder("500.00").
				Value(&m.formPrice).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BillingModel) totalsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("discount").
				Title("Discount").
				Placeholder("0.00").
				Value(&m.formDiscStr).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("tax").
				Title("Tax").
				Placeholder("0.00").
				Value(&m.formTaxStr).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m BillingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billingMedsMsg:
		if msg.err == nil {
			m.meds = msg.meds
		}
		return m, nil

	case billSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving bill: %v", msg.err)
			m.state = billingStateItems
			m.itemsTable.Focus()
			return m, nil
		}

		m.saved = msg.inv
		m.state = billingStateDone
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		switch m.state {
		case billingStatePickMedicine, billingStateCustomItem, billingStateTotals:
			m.state = billingStateItems
			m.form = nil
			m.itemsTable.Focus()
			return m, nil
		default:
			return m, Back
		}
	}

	switch m.state {
	case billingStatePatient:
		return m.updateForm(msg, func(m BillingModel) (tea.Model, tea.Cmd) {
			m.state = billingStateItems
			m.form = nil
			m.itemsTable.Focus()
			return m, nil
		})

	case billingStateItems:
		return m.updateItems(msg)

	case billingStatePickMedicine:
		return m.updateForm(msg, func(m BillingModel) (tea.Model, tea.Cmd) {
			return m.addMedicineLine()
		})

	case billingStateCustomItem:
		return m.updateForm(msg, func(m BillingModel) (tea.Model, tea.Cmd) {
			return m.addCustomLine()
		})

	case billingStateTotals:
		return m.updateForm(msg, func(m BillingModel) (tea.Model, tea.Cmd) {
			return m, m.saveCmd()
		})
	}

	return m, nil
}

// updateForm advances the active huh form and calls done when it completes.
func (m BillingModel) updateForm(msg tea.Msg, done func(BillingModel) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return done(m)
}

func (m BillingModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "m":
			if len(m.meds) == 0 {
				m.status = "No medicines in stock; add inventory first"
				return m, nil
			}

			m.formMedIdx = 0
			m.formQty = "1"
			m.form = m.medicineForm()
			m.state = billingStatePickMedicine
			m.itemsTable.Blur()
			return m, m.form.Init()
		case "c":
			m.formItem = ""
			m.formQty = "1"
			m.formPrice = ""
			m.form = m.customItemForm()
			m.state = billingStateCustomItem
			m.itemsTable.Blur()
			return m, m.form.Init()
		case "x":
			idx := m.itemsTable.Cursor()
			if idx >= 0 && idx < len(m.lines) {
				m.lines = append(m.lines[:idx], m.lines[idx+1:]...)
				m.refreshItems()
			}
			return m, nil
		case "t", "enter":
			if len(m.lines) == 0 {
				m.status = "Add at least one item"
				return m, nil
			}

			m.formDiscStr = "0.00"
			m.formTaxStr = "0.00"
			m.form = m.totalsForm()
			m.state = billingStateTotals
			m.itemsTable.Blur()
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.itemsTable, cmd = m.itemsTable.Update(msg)
	return m, cmd
}

func (m BillingModel) addMedicineLine() (tea.Model, tea.Cmd) {
	if m.formMedIdx < 0 || m.formMedIdx >= len(m.meds) {
		m.state = billingStateItems
		m.form = nil
		m.itemsTable.Focus()
		return m, nil
	}

	med := m.meds[m.formMedIdx]
	qty, _ := strconv.Atoi(strings.TrimSpace(m.formQty))

	id := med.ID
	m.lines = append(m.lines, billingLine{
		params: invoice.ItemParams{
			MedicineID: &id,
			Quantity:   qty,
			Price:      med.Price,
		},
		name: med.Name,
	})

	m.refreshItems()
	m.state = billingStateItems
	m.form = nil
	m.itemsTable.Focus()
	return m, nil
}

func (m BillingModel) addCustomLine() (tea.Model, tea.Cmd) {
	qty, _ := strconv.Atoi(strings.TrimSpace(m.formQty))
	price, _ := ParseAmount(m.formPrice)
	name := strings.TrimSpace(m.formItem)

	m.lines = append(m.lines, billingLine{
		params: invoice.ItemParams{
			Name:     name,
			Quantity: qty,
			Price:    price,
		},
		name: name,
	})

	m.refreshItems()
	m.state = billingStateItems
	m.form = nil
	m.itemsTable.Focus()
	return m, nil
}

func (m *BillingModel) refreshItems() {
	rows := make([]table.Row, 0, len(m.lines))
	for _, line := range m.lines {
		rows = append(rows, table.Row{
			line.name,
			strconv.Itoa(line.params.Quantity),
			FormatAmount(line.params.Price),
			FormatAmount(int64(line.params.Quantity) * line.params.Price),
		})
	}
	m.itemsTable.SetRows(rows)
}

func (m BillingModel) subtotal() int64 {
	var total int64
	for _, line := range m.lines {
		total += int64(line.params.Quantity) * line.params.Price
	}

	return total
}

func (m BillingModel) View() string {
	switch m.state {
	case billingStatePatient:
		return lipgloss.NewStyle().Padding(1, 2).Render("New Bill\n\n" + m.form.View())

	case billingStateDone:
		if m.saved == nil {
			return lipgloss.NewStyle().Padding(2).Render("Saved.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(1).Render(
			bill.Render(m.header, m.saved) + "\n(Esc to back)",
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.itemsTable.View())

	summary := fmt.Sprintf("%s | %s bill | subtotal %s",
		m.formCustomer, m.formBillType, FormatAmount(m.subtotal()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(summary),
		tableView,
	)

	if m.form != nil && m.state != billingStateItems {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(64).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type billingMedsMsg struct {
	meds []*medicine.Medicine
	err  error
}

func (m BillingModel) loadMedsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		meds, err := m.medService.List(ctx, medicine.ListFilter{})
		return billingMedsMsg{meds: meds, err: err}
	}
}

type billSavedMsg struct {
	inv *invoice.Invoice
	err error
}

func (m BillingModel) saveCmd() tea.Cmd {
	discount, _ := ParseAmount(m.formDiscStr)
	tax, _ := ParseAmount(m.formTaxStr)

	items := make([]invoice.ItemParams, 0, len(m.lines))
	for _, line := range m.lines {
		items = append(items, line.params)
	}

	params := invoice.CreateParams{
		CustomerName:    strings.TrimSpace(m.formCustomer),
		CustomerContact: strings.TrimSpace(m.formContact),
		PatientAge:      strings.TrimSpace(m.formAge),
		PatientSex:      strings.TrimSpace(m.formSex),
		PatientAddress:  strings.TrimSpace(m.formAddress),
		ConsultantName:  strings.TrimSpace(m.formConsultant),
		BillType:        m.formBillType,
		Items:           items,
		Discount:        discount,
		Tax:             tax,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invService.Create(ctx, params)
		return billSavedMsg{inv: inv, err: err}
	}
}
