package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/maildraft/internal/compose"
	"github.com/nhle/maildraft/internal/draft"
	"github.com/nhle/maildraft/internal/keys"
	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/theme"
)

// OpenFunc launches the previewed draft.
type OpenFunc func(ctx context.Context, p *model.DraftProperties) (*compose.Result, error)

// OpenedMsg carries the outcome of an open request.
type OpenedMsg struct {
	Result *compose.Result
	Err    error
}

type pane struct {
	title   string
	content string
}

// Model is a read-only, scrollable preview of how a draft encodes: the
// EML text, the mailto URI and the plain-text body.
type Model struct {
	props    model.DraftProperties
	panes    []pane
	active   int
	viewport viewport.Model
	help     help.Model
	keys     *keys.KeyMap
	open     OpenFunc
	status   string
	failed   bool
	width    int
	height   int
}

// New creates a preview of p. open may be nil, which disables opening.
func New(p model.DraftProperties, keys *keys.KeyMap, open OpenFunc, width, height int) Model {
	vp := viewport.New(width, height-4)
	vp.Style = lipgloss.NewStyle()

	m := Model{
		props:    p,
		panes:    buildPanes(&p),
		viewport: vp,
		help:     help.New(),
		keys:     keys,
		open:     open,
		width:    width,
		height:   height,
	}
	m.viewport.SetContent(m.panes[0].content)
	return m
}

func buildPanes(p *model.DraftProperties) []pane {
	eml := draft.EMLContent(p)
	mailto := draft.MailtoURI(p, true)
	defer eml.Close()
	defer mailto.Close()

	text := p.Body
	if draft.IsHTML(p) {
		text, _ = draft.ToPlainText(p.Body, true)
	}

	return []pane{
		{title: "EML", content: eml.Text},
		{title: "mailto", content: wrapURI(mailto.URI, 72)},
		{title: "Text", content: text},
	}
}

// wrapURI breaks a long URI into fixed-width lines for display.
func wrapURI(uri string, width int) string {
	if width <= 0 || len(uri) <= width {
		return uri
	}
	var b strings.Builder
	for len(uri) > width {
		b.WriteString(uri[:width])
		b.WriteString("\n")
		uri = uri[width:]
	}
	b.WriteString(uri)
	return b.String()
}

// Init returns the initial command for the preview.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			m.status = "open failed: " + msg.Err.Error()
			m.failed = true
		} else {
			m.status = fmt.Sprintf("opened via %s: %s", msg.Result.Method, msg.Result.Target)
			m.failed = false
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.NextPane):
			m.selectPane((m.active + 1) % len(m.panes))
			return m, nil

		case key.Matches(msg, m.keys.PrevPane):
			m.selectPane((m.active + len(m.panes) - 1) % len(m.panes))
			return m, nil

		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil

		case key.Matches(msg, m.keys.Open):
			if m.open == nil {
				return m, nil
			}
			m.status = "opening..."
			m.failed = false
			return m, m.openCmd()
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) openCmd() tea.Cmd {
	props := m.props
	open := m.open
	return func() tea.Msg {
		res, err := open(context.Background(), &props)
		return OpenedMsg{Result: res, Err: err}
	}
}

func (m *Model) selectPane(i int) {
	m.active = i
	m.viewport.SetContent(m.panes[i].content)
	m.viewport.GotoTop()
}

// View renders the preview.
func (m Model) View() string {
	title := m.props.Subject
	if title == "" {
		title = "(no subject)"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.HeaderStyle.Render("maildraft"),
		" ",
		title,
		" ",
		theme.ContentTypeStyle(draft.ContentType(&m.props)).Render(draft.ContentType(&m.props)),
	)

	tabs := make([]string, len(m.panes))
	for i, p := range m.panes {
		if i == m.active {
			tabs[i] = theme.ActiveTabStyle.Render(p.title)
		} else {
			tabs[i] = theme.TabStyle.Render(p.title)
		}
	}

	status := theme.StatusBarStyle
	if m.failed {
		status = theme.ErrorStatusStyle
	}
	statusText := m.status
	if statusText == "" {
		statusText = "To: " + m.props.To.Join(", ")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		m.viewport.View(),
		status.Width(m.width).Render(statusText),
		theme.HelpStyle.Render(m.help.View(m.keys)),
	)
}

// ActivePane returns the title of the selected pane.
func (m Model) ActivePane() string {
	return m.panes[m.active].title
}

// PaneContent returns the content of the pane with the given title.
func (m Model) PaneContent(title string) string {
	for _, p := range m.panes {
		if p.title == title {
			return p.content
		}
	}
	return ""
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// SetSize updates the preview dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 4
	m.help.Width = width
}
