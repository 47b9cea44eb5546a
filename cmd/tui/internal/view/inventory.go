package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/carepoint/medibill/internal/medicine"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateEdit
)

type InventoryModel struct {
	CommonModel
	medService *medicine.Service

	state inventoryState
	table table.Model
	meds  []*medicine.Medicine
	form  *huh.Form

	// nil while adding a new medicine
	editing *medicine.Medicine

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formBatch    string
	formMaker    string
	formQty      string
	formPrice    string
	formExpiry   string
	formSchedule medicine.Schedule
}

func NewInventoryModel(medSvc *medicine.Service) InventoryModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Batch", Width: 10},
		{Title: "Expiry", Width: 10},
		{Title: "Stock", Width: 6},
		{Title: "MRP", Width: 10},
		{Title: "Sch", Width: 4},
		{Title: "Manufacturer", Width: 20},
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

	return InventoryModel{
		medService: medSvc,
		table:      t,
	}
}

func (m InventoryModel) Title() string { return "Inventory" }
func (m InventoryModel) ShortHelp() string {
	if m.state == inventoryStateEdit {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | e: edit | x: delete | r: refresh"
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadMedsCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInventoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.meds = msg.meds
		m.refreshTable()
		return m, nil

	case inventorySaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = inventoryStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadMedsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case inventoryStateBrowse:
		return m.updateBrowse(msg)
	case inventoryStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadMedsCmd()
		case "a":
			return m.enterEditMode(nil)
		case "e":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.meds) {
				return m.enterEditMode(m.meds[idx])
			}
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InventoryModel) enterEditMode(med *medicine.Medicine) (tea.Model, tea.Cmd) {
	m.editing = med

	if med != nil {
		m.formName = med.Name
		m.formBatch = med.BatchNumber
		m.formMaker = med.Manufacturer
		m.formQty = strconv.Itoa(med.Quantity)
		m.formPrice = FormatAmount(med.Price)
		m.formSchedule = med.Schedule
		m.formExpiry = ""
		if !med.ExpiryDate.IsZero() {
			m.formExpiry = med.ExpiryDate.Format("01/2006")
		}
	} else {
		m.formName = ""
		m.formBatch = ""
		m.formMaker = ""
		m.formQty = "0"
		m.formPrice = ""
		m.formExpiry = ""
		m.formSchedule = medicine.ScheduleNone
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("batch").
				Title("Batch No").
				Value(&m.formBatch),

			huh.NewInput().
				Key("manufacturer").
				Title("Manufacturer").
				Value(&m.formMaker),

			huh.NewInput().
				Key("quantity").
				Title("Stock Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("must be a non-negative number")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("MRP").
				Placeholder("30.00").
				Value(&m.formPrice).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("expiry").
				Title("Expiry (MM/YYYY)").
				Placeholder("03/2027").
				Value(&m.formExpiry).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse("01/2006", strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use MM/YYYY")
					}
					return nil
				}),

			huh.NewSelect[medicine.Schedule]().
				Key("schedule").
				Title("Schedule").
				Options(
					huh.NewOption("None", medicine.ScheduleNone),
					huh.NewOption("H", medicine.ScheduleH),
					huh.NewOption("H1", medicine.ScheduleH1),
					huh.NewOption("X", medicine.ScheduleX),
					huh.NewOption("Y", medicine.ScheduleY),
					huh.NewOption("Z", medicine.ScheduleZ),
				).
				Value(&m.formSchedule),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m InventoryModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = inventoryStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading inventory...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == inventoryStateEdit && m.form != nil {
		title := "Add Medicine"
		if m.editing != nil {
			title = "Edit Medicine"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InventoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.meds))
	for _, med := range m.meds {
		expiry := ""
		if !med.ExpiryDate.IsZero() {
			expiry = med.ExpiryDate.Format("01/2006")
		}

		rows = append(rows, table.Row{
			med.Name,
			med.BatchNumber,
			expiry,
			strconv.Itoa(med.Quantity),
			FormatAmount(med.Price),
			string(med.Schedule),
			med.Manufacturer,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadInventoryMsg struct {
	meds []*medicine.Medicine
	err  error
}

func (m InventoryModel) loadMedsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		meds, err := m.medService.List(ctx, medicine.ListFilter{})
		return loadInventoryMsg{meds: meds, err: err}
	}
}

type inventorySaveMsg struct {
	err error
}

func (m InventoryModel) saveCmd() tea.Cmd {
	editing := m.editing
	name := strings.TrimSpace(m.formName)
	batch := strings.TrimSpace(m.formBatch)
	maker := strings.TrimSpace(m.formMaker)
	schedule := m.formSchedule

	qty, _ := strconv.Atoi(strings.TrimSpace(m.formQty))
	price, _ := ParseAmount(m.formPrice)

	var expiry time.Time
	if s := strings.TrimSpace(m.formExpiry); s != "" {
		expiry, _ = time.Parse("01/2006", s)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			_, err := m.medService.Create(ctx, medicine.CreateParams{
				Name:         name,
				Price:        price,
				Quantity:     qty,
				ExpiryDate:   expiry,
				Manufacturer: maker,
				BatchNumber:  batch,
				Schedule:     schedule,
			})

			return inventorySaveMsg{err: err}
		}

		editing.Name = name
		editing.Price = price
		editing.Quantity = qty
		editing.ExpiryDate = expiry
		editing.Manufacturer = maker
		editing.BatchNumber = batch
		editing.Schedule = schedule

		return inventorySaveMsg{err: m.medService.Update(ctx, editing)}
	}
}

func (m InventoryModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.meds) {
		return nil
	}

	id := m.meds[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.medService.Delete(ctx, id); err != nil {
			return inventorySaveMsg{err: err}
		}

		return inventorySaveMsg{}
	}
}
