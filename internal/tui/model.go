// Package tui is a terminal browser for the book catalog: log in, page
// through books or personal recommendations, and peek at summaries and
// ratings.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookvault/internal/domain"
)

// CatalogPort is the TUI-facing subset of the API client.
type CatalogPort interface {
	Login(ctx context.Context, email, password string) error
	Books(ctx context.Context) ([]domain.BookView, error)
	Recommendations(ctx context.Context) ([]domain.BookView, string, error)
	BookSummary(ctx context.Context, id int64) (string, *float64, error)
}

type screen int

const (
	screenLogin screen = iota
	screenBrowse
)

// Model is the Bubble Tea model for the catalog browser.
type Model struct {
	client CatalogPort

	screen   screen
	email    textinput.Model
	password textinput.Model
	focused  int

	viewport viewport.Model
	books    []domain.BookView
	cursor   int
	listName string
	status   string
	ready    bool
}

// New creates the browser model, starting at the login screen.
func New(client CatalogPort) Model {
	email := textinput.New()
	email.Prompt = "email > "
	email.Placeholder = "you@example.com"
	email.Focus()
	email.CharLimit = 0

	password := textinput.New()
	password.Prompt = "password > "
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 0

	vp := viewport.New(0, 0)
	return Model{
		client:   client,
		email:    email,
		password: password,
		viewport: vp,
		listName: "catalog",
		status:   "Log in to browse the catalog.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := bookBoxStyle.GetFrameSize()
		reserved := 4 // header, list title, status, spacer
		vh := msg.Height - reserved - bh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderCurrentBook())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		return m.updateBrowse(msg)
	}
	return m.updateInputs(msg)
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focused = 1 - m.focused
		if m.focused == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.email.Value())
		password := m.password.Value()
		if email == "" || password == "" {
			m.status = "Both email and password are required."
			return m, nil
		}
		ctx := context.Background()
		if err := m.client.Login(ctx, email, password); err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		books, err := m.client.Books(ctx)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.screen = screenBrowse
		m.books = books
		m.cursor = 0
		m.listName = "catalog"
		m.status = fmt.Sprintf("Logged in. %d books. ↑/↓ browse, r recommendations, b catalog, s summary.", len(books))
		m.viewport.SetContent(m.renderCurrentBook())
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "down", "j":
		if len(m.books) > 0 {
			m.cursor = (m.cursor + 1) % len(m.books)
			m.viewport.SetContent(m.renderCurrentBook())
		}
		return m, nil
	case "up", "k":
		if len(m.books) > 0 {
			m.cursor = (m.cursor - 1 + len(m.books)) % len(m.books)
			m.viewport.SetContent(m.renderCurrentBook())
		}
		return m, nil
	case "r":
		views, note, err := m.client.Recommendations(context.Background())
		switch {
		case err != nil:
			m.status = "Error: " + err.Error()
		case note != "":
			m.status = note
		default:
			m.books = views
			m.cursor = 0
			m.listName = "recommendations"
			m.status = fmt.Sprintf("%d recommendations.", len(views))
			m.viewport.SetContent(m.renderCurrentBook())
		}
		return m, nil
	case "b":
		books, err := m.client.Books(context.Background())
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.books = books
		m.cursor = 0
		m.listName = "catalog"
		m.status = fmt.Sprintf("%d books.", len(books))
		m.viewport.SetContent(m.renderCurrentBook())
		return m, nil
	case "s":
		if len(m.books) == 0 {
			return m, nil
		}
		book := m.books[m.cursor]
		_, avg, err := m.client.BookSummary(context.Background(), book.ID)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		if avg == nil {
			m.status = fmt.Sprintf("%q has no reviews yet.", book.Title)
		} else {
			m.status = fmt.Sprintf("%q rates %.1f/5 on average.", book.Title, *avg)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.email, cmds[0] = m.email.Update(msg)
	m.password, cmds[1] = m.password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

// View renders the current screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("BookVault")
	status := statusStyle.Render(m.status)
	if m.screen == screenLogin {
		form := loginBoxStyle.Render(m.email.View() + "\n" + m.password.View())
		return header + "\n" + form + "\n" + status
	}
	title := dimStyle.Render(m.listTitle())
	body := bookBoxStyle.Render(m.viewport.View())
	return header + "\n" + title + "\n" + body + "\n" + status
}

func (m Model) listTitle() string {
	if len(m.books) == 0 {
		return m.listName
	}
	return fmt.Sprintf("%s — %d/%d", m.listName, m.cursor+1, len(m.books))
}

func (m Model) renderCurrentBook() string {
	if len(m.books) == 0 {
		return "Nothing here yet."
	}
	b := m.books[m.cursor]
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.Title))
	if b.Author != "" {
		sb.WriteString(" by " + b.Author)
	}
	if b.YearPublished != 0 {
		sb.WriteString(fmt.Sprintf(" (%d)", b.YearPublished))
	}
	sb.WriteString("\n")
	if len(b.Genres) > 0 {
		sb.WriteString(dimStyle.Render(strings.Join(domain.GenreStrings(b.Genres), ", ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(b.Summary)
	return sb.String()
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	bookBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	loginBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
