package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QMSS-G5072-2024/nutrilog/internal/edamam"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	fieldQuantity = iota
	fieldUnit
	fieldIngredient
)

type field struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	return field{label: label, input: ti}
}

// Model is the bubbletea model for entering one food item.
type Model struct {
	fields    []field
	activeIdx int
	err       string
	done      bool
	cancelled bool
	query     edamam.Query
}

// New returns a form with the quantity field focused.
func New() Model {
	fields := []field{
		newField("quantity", "100"),
		newField("unit", "g"),
		newField("ingredient", "chicken breast"),
	}
	fields[fieldQuantity].input.Focus()
	return Model{fields: fields}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) focus(idx int) tea.Cmd {
	m.fields[m.activeIdx].input.Blur()
	m.activeIdx = (idx + len(m.fields)) % len(m.fields)
	m.fields[m.activeIdx].input.Focus()
	return textinput.Blink
}

// Update handles key presses. Enter on the last field submits.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.fields[m.activeIdx].input, cmd = m.fields[m.activeIdx].input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "tab", "down":
		return m, m.focus(m.activeIdx + 1)

	case "shift+tab", "up":
		return m, m.focus(m.activeIdx - 1)

	case "enter":
		if m.activeIdx < len(m.fields)-1 {
			return m, m.focus(m.activeIdx + 1)
		}
		q, err := m.parse()
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.query = q
		m.done = true
		return m, tea.Quit
	}

	m.err = ""
	var cmd tea.Cmd
	m.fields[m.activeIdx].input, cmd = m.fields[m.activeIdx].input.Update(msg)
	return m, cmd
}

func (m Model) parse() (edamam.Query, error) {
	qty, err := edamam.ParseQuantity(m.fields[fieldQuantity].input.Value())
	if err != nil {
		return edamam.Query{}, err
	}
	ingredient := strings.TrimSpace(m.fields[fieldIngredient].input.Value())
	if ingredient == "" {
		return edamam.Query{}, fmt.Errorf("ingredient is required")
	}
	return edamam.Query{
		Quantity:   qty,
		Unit:       strings.TrimSpace(m.fields[fieldUnit].input.Value()),
		Ingredient: ingredient,
	}, nil
}

// View renders the form.
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Add food to the daily log"))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		prefix := "  "
		if i == m.activeIdx {
			prefix = "▸ "
		}
		b.WriteString(prefix + dimStyle.Render(fmt.Sprintf("%-11s", f.label+":")) + f.input.View() + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + errStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  tab:next  shift+tab:prev  enter:next/submit  esc:cancel"))
	return b.String()
}

// Result returns the submitted query. ok is false when the form was cancelled
// or never submitted.
func (m Model) Result() (edamam.Query, bool) {
	return m.query, m.done
}
