package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	locationSvcs "github.com/ghuser/eventplanner/services/location/application/services"
	locationModels "github.com/ghuser/eventplanner/services/location/domain/models"
	roadmapSvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

type tab int

const (
	tabRoadmap tab = iota
	tabLocation
)

const defaultCategory = "Geral"

// statusFilters is the cycle order of the status filter.
var statusFilters = []string{models.FilterAll, string(models.StatusPlanning), string(models.StatusSearching), string(models.StatusContracted), string(models.StatusCompleted)}

type loadedMsg struct{ err error }

type mutationMsg struct {
	action string
	err    error
}

type suggestionsMsg locationSvcs.Suggestions

// Model is the bubbletea model of the planner.
type Model struct {
	tracker     *roadmapSvcs.Tracker
	suggester   *locationSvcs.Suggester
	suggestions <-chan locationSvcs.Suggestions
	timeout     time.Duration

	tab      tab
	view     models.Overview
	status   int
	category int
	cursor   int
	loading  bool

	adding bool
	add    textinput.Model

	place     textinput.Model
	results   []locationModels.LocationResult
	selected  int
	location  string
	lastQuery string

	message string
	isError bool
	help    help.Model
	width   int
}

func NewModel(tracker *roadmapSvcs.Tracker, suggester *locationSvcs.Suggester, suggestions <-chan locationSvcs.Suggestions, timeout time.Duration) Model {
	add := textinput.New()
	add.Placeholder = "Categoria: título"
	add.CharLimit = 120

	place := textinput.New()
	place.Placeholder = "Cidade, bairro ou endereço"
	place.CharLimit = 120

	return Model{
		tracker:     tracker,
		suggester:   suggester,
		suggestions: suggestions,
		timeout:     timeout,
		view:        tracker.View(models.AllItems),
		add:         add,
		place:       place,
		help:        help.New(),
		loading:     true,
	}
}

// latest returns a Suggester callback that keeps only the newest
// suggestions in ch, which must have capacity 1.
func latest(ch chan locationSvcs.Suggestions) func(locationSvcs.Suggestions) {
	return func(s locationSvcs.Suggestions) {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// listen blocks until the next suggestions arrive.
func listen(ch <-chan locationSvcs.Suggestions) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return suggestionsMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), listen(m.suggestions))
}

func (m Model) load() tea.Cmd {
	tracker, timeout := m.tracker, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadedMsg{err: tracker.Load(ctx)}
	}
}

func (m Model) mutate(action string, fn func(ctx context.Context) error) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mutationMsg{action: action, err: fn(ctx)}
	}
}

func (m Model) filter() models.Filter {
	f := models.Filter{Status: statusFilters[m.status], Category: models.FilterAll}
	if m.category > 0 && m.category <= len(m.view.Categories) {
		f.Category = m.view.Categories[m.category-1]
	}
	return f
}

// refresh recomputes the page from the tracker and keeps the cursor and
// category selection in range.
func (m *Model) refresh() {
	current := ""
	if f := m.filter(); f.Category != models.FilterAll {
		current = f.Category
	}
	m.view = m.tracker.View(models.AllItems)
	m.category = 0
	for i, c := range m.view.Categories {
		if c == current {
			m.category = i + 1
		}
	}
	m.view = m.tracker.View(m.filter())
	if m.cursor >= len(m.view.Items) {
		m.cursor = len(m.view.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setMessage(msg string, isErr bool) {
	m.message, m.isError = msg, isErr
}

func (m Model) selectedItem() (models.RoadmapItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Items) {
		return models.RoadmapItem{}, false
	}
	return m.view.Items[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setMessage(describe(msg.err), true)
		} else {
			m.setMessage(fmt.Sprintf("%d itens carregados", len(m.tracker.Items())), false)
		}
		m.refresh()
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.setMessage(msg.action+": "+describe(msg.err), true)
		} else {
			m.setMessage(msg.action+": ok", false)
		}
		m.refresh()
		return m, nil

	case suggestionsMsg:
		// Results for anything but the text currently in the field are old.
		if msg.Query == m.place.Value() && m.location != msg.Query {
			m.results = msg.Results
			m.selected = 0
		}
		return m, listen(m.suggestions)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if key.Matches(msg, keys.SwitchTab) && !m.adding {
			m.switchTab()
			return m, nil
		}
		if m.tab == tabLocation {
			return m.updateLocation(msg)
		}
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateRoadmap(msg)
	}
	return m, nil
}

func (m *Model) switchTab() {
	if m.tab == tabRoadmap {
		m.tab = tabLocation
		m.place.Focus()
		return
	}
	m.tab = tabRoadmap
	m.place.Blur()
}

func (m Model) updateRoadmap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.view.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.CycleStatus):
		m.status = (m.status + 1) % len(statusFilters)
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, keys.CycleCategory):
		m.category = (m.category + 1) % (len(m.view.Categories) + 1)
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, m.load()
	case key.Matches(msg, keys.Add):
		m.adding = true
		m.add.Reset()
		m.add.Focus()
	case key.Matches(msg, keys.Delete):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		tracker := m.tracker
		return m, m.mutate("excluir "+item.Title, func(ctx context.Context) error {
			return tracker.DeleteItem(ctx, item.ID)
		})
	case key.Matches(msg, keys.SetStatus):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		s := models.Statuses[int(msg.Runes[0]-'1')]
		tracker := m.tracker
		return m, m.mutate(item.Title+" → "+s.Label(), func(ctx context.Context) error {
			_, err := tracker.ChangeStatus(ctx, item.ID, s)
			return err
		})
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.adding = false
		m.add.Blur()
		return m, nil
	case key.Matches(msg, keys.Confirm):
		in := m.quickAdd(m.add.Value())
		m.adding = false
		m.add.Blur()
		tracker := m.tracker
		return m, m.mutate("adicionar "+in.Title, func(ctx context.Context) error {
			_, err := tracker.CreateItem(ctx, in)
			return err
		})
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

// quickAdd reads "Category: Title". Without a colon the whole text is the
// title and the category is the active category filter, or Geral.
func (m Model) quickAdd(text string) models.NewItem {
	category, title, ok := strings.Cut(text, ":")
	if !ok {
		title = text
		category = defaultCategory
		if f := m.filter(); f.Category != models.FilterAll {
			category = f.Category
		}
	}
	status := models.StatusPlanning
	if f := m.filter(); f.Status != models.FilterAll {
		status = models.Status(f.Status)
	}
	return models.NewItem{
		Category: strings.TrimSpace(category),
		Title:    strings.TrimSpace(title),
		Status:   status,
	}
}

func (m Model) updateLocation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case tea.KeyDown:
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil
	case tea.KeyEsc:
		m.results = nil
		return m, nil
	case tea.KeyEnter:
		if m.selected < len(m.results) {
			m.location = m.results[m.selected].FullName
			m.place.SetValue(m.location)
			m.place.CursorEnd()
			m.results = nil
			m.setMessage("local: "+m.location, false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.place, cmd = m.place.Update(msg)
	if v := m.place.Value(); v != m.lastQuery {
		m.lastQuery = v
		m.location = ""
		m.suggester.Input(v)
	}
	return m, cmd
}

// describe turns a tracker error into a status-line message.
func describe(err error) string {
	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		return "dados inválidos (" + fields.Error() + ")"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item não encontrado"
	case errors.Is(err, domain.ErrBackendUnauthorized):
		return "sessão expirada ou sem permissão"
	case errors.Is(err, domain.ErrBackendRejected):
		return "recusado pelo servidor"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "servidor indisponível"
	}
	return err.Error()
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTab    = tabStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusColors = map[models.Status]lipgloss.Color{
		models.StatusPlanning:   "244",
		models.StatusSearching:  "214",
		models.StatusContracted: "39",
		models.StatusCompleted:  "42",
	}
)

func badge(s models.Status) string {
	return lipgloss.NewStyle().Width(12).Foreground(statusColors[s]).Render(s.Label())
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func (m Model) View() string {
	var b strings.Builder

	tabs := []string{tabStyle.Render("Roadmap"), tabStyle.Render("Local")}
	tabs[m.tab] = activeTab.Render([]string{"Roadmap", "Local"}[m.tab])
	b.WriteString(titleStyle.Render("Planner · "+m.tracker.EventID()) + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	if m.tab == tabLocation {
		b.WriteString(m.locationView())
	} else {
		b.WriteString(m.roadmapView())
	}

	if m.message != "" {
		style := okStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.message) + "\n")
	}
	var km help.KeyMap = roadmapHelp{}
	if m.tab == tabLocation {
		km = locationHelp{}
	}
	b.WriteString("\n" + m.help.View(km))
	return b.String()
}

func (m Model) roadmapView() string {
	var b strings.Builder
	s := m.view.Summary
	fmt.Fprintf(&b, "%d itens · %s %d · %s %d · %s %d · %s %d · %d%% contratado\n",
		s.Total,
		models.StatusPlanning.Label(), s.Planning,
		models.StatusSearching.Label(), s.Searching,
		models.StatusContracted.Label(), s.Contracted,
		models.StatusCompleted.Label(), s.Completed,
		m.view.Completion)
	fmt.Fprintf(&b, "Orçamento %s · contratado %s", money(m.view.Budget.Planned), money(m.view.Budget.Committed))
	if m.view.Budget.Unpriced > 0 {
		fmt.Fprintf(&b, " · %d sem preço", m.view.Budget.Unpriced)
	}
	b.WriteString("\n")
	f := m.filter()
	b.WriteString(dimStyle.Render(fmt.Sprintf("status: %s  categoria: %s", f.Status, f.Category)) + "\n\n")

	if m.loading {
		b.WriteString(dimStyle.Render("carregando…") + "\n")
	}
	if len(m.view.Items) == 0 && !m.loading {
		b.WriteString(dimStyle.Render("nenhum item") + "\n")
	}
	for i, it := range m.view.Items {
		line := fmt.Sprintf("%s %-14s %s", badge(it.Status), it.Category, it.Title)
		if it.Price != "" {
			line += dimStyle.Render("  " + it.Price)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("› ") + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	if m.adding {
		b.WriteString("\nnovo item: " + m.add.View() + "\n")
	}
	return b.String()
}

func (m Model) locationView() string {
	var b strings.Builder
	b.WriteString("Local do evento: " + m.place.View() + "\n\n")
	for i, r := range m.results {
		line := fmt.Sprintf("%-12s %s", string(r.Kind), r.FullName)
		if i == m.selected {
			b.WriteString(cursorStyle.Render("› ") + line + "\n")
			continue
		}
		b.WriteString("  " + dimStyle.Render(line) + "\n")
	}
	if m.location != "" {
		b.WriteString("\n" + okStyle.Render("✓ "+m.location) + "\n")
	}
	return b.String()
}
