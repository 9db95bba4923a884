package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinerec/internal/domain"
)

// RecommendPort is the TUI-facing subset of the recommender service.
type RecommendPort interface {
	Recommend(title string, prefs domain.UserPreferences, topK int) ([]domain.Recommendation, error)
	Resolve(title string) (domain.Movie, error)
}

// Model is the Bubble Tea model for the interactive recommendation browser.
type Model struct {
	service  RecommendPort
	prefs    domain.UserPreferences
	topK     int
	input    textinput.Model
	viewport viewport.Model
	results  []domain.Recommendation
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(service RecommendPort, prefs domain.UserPreferences, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a movie title and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		prefs:    prefs,
		topK:     topK,
		input:    ti,
		viewport: vp,
		status:   "Corpus loaded. Type a title to get recommendations.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 1
		totalFooterLines := 1
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				seed, err := m.service.Resolve(q)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.results = nil
					m.viewport.SetContent(m.renderCurrentResult())
					return m, nil
				}
				res, err := m.service.Recommend(seed.Title, m.prefs, m.topK)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.results = nil
				} else {
					m.status = fmt.Sprintf("Because you watched %q", seed.Title)
					m.results = res
					m.cursor = 0
				}
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("cinerec")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No recommendations yet."
	}
	r := m.results[m.cursor]
	head := fmt.Sprintf("Recommendation %d/%d  score=%.3f", m.cursor+1, len(m.results), r.Score)
	var b strings.Builder
	b.WriteString(head + "\n\n")
	b.WriteString(titleStyle.Render(r.Title) + "\n")
	b.WriteString(fmt.Sprintf("Rating:   %.1f/10\n", r.Rating))
	b.WriteString("Genres:   " + m.renderGenres(r.Genres) + "\n")
	b.WriteString("Language: " + r.Language + "\n")
	return b.String()
}

// renderGenres highlights genres that match the active preferences.
func (m Model) renderGenres(genres []string) string {
	preferred := make(map[string]struct{}, len(m.prefs.PreferredGenres))
	for _, g := range m.prefs.PreferredGenres {
		preferred[g] = struct{}{}
	}
	out := make([]string, len(genres))
	for i, g := range genres {
		if _, ok := preferred[g]; ok {
			out[i] = highlightStyle.Render(g)
		} else {
			out[i] = g
		}
	}
	return strings.Join(out, ", ")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
