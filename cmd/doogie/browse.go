package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/PolySync/doogie"
	"github.com/PolySync/doogie/errors"
	"github.com/PolySync/doogie/node"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chromeHeight is the number of lines around the preview.
const chromeHeight = 9

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newBrowseCmd(a *app, tty func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse and edit the node tree of a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tty() {
				return errors.InvalidInput(errors.PhaseConfig, "browse needs an interactive terminal")
			}
			data, err := a.read(cmd, args[0])
			if err != nil {
				return err
			}

			root := doogie.ParseDocumentWithOptions(string(data), a.cfg.ParseOptions())
			defer root.Close()

			m := newBrowseModel(args[0], root, a.cfg)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			a.logger.Debug("browse finished", zap.String("file", args[0]), zap.Int("detached", m.detached))
			return err
		},
	}
}

type browseModel struct {
	root     *node.Node
	focus    *node.Node
	cfg      Config
	preview  viewport.Model
	search   textinput.Model
	filename string
	status   string
	detached int

	searching bool
}

func newBrowseModel(filename string, root *node.Node, cfg Config) *browseModel {
	search := textinput.New()
	search.Prompt = "type: "
	search.Placeholder = "heading, code_block, link, ..."
	search.Width = 40

	m := &browseModel{
		root:     root,
		focus:    root,
		cfg:      cfg,
		preview:  viewport.New(80, 20),
		search:   search,
		filename: filename,
	}
	m.refresh()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.preview.Width = msg.Width - 2
		m.preview.Height = max(msg.Height-chromeHeight, 3)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.root.Close()
			return m, tea.Quit

		case "down", "j":
			m.move("next sibling", m.focus.Traverse.NextSibling)
			return m, nil

		case "up", "k":
			m.move("previous sibling", m.focus.Traverse.PrevSibling)
			return m, nil

		case "left", "h":
			m.move("parent", m.focus.Traverse.Parent)
			return m, nil

		case "right", "l":
			m.move("child", m.focus.Traverse.FirstChild)
			return m, nil

		case "x":
			if m.cfg.Render.Format == FormatXML {
				m.cfg.Render.Format = FormatCommonMark
			} else {
				m.cfg.Render.Format = FormatXML
			}
			m.refresh()
			return m, nil

		case "d":
			m.detach()
			return m, nil

		case "/":
			m.searching = true
			m.search.Reset()
			return m, m.search.Focus()
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.jump(strings.TrimSpace(m.search.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// move focuses the node returned by step, if any.
func (m *browseModel) move(what string, step func() (*node.Node, error)) {
	n, err := step()
	switch {
	case err != nil:
		m.status = err.Error()
	case n == nil:
		m.status = "no " + what
	default:
		m.focus = n
		m.status = ""
	}
	m.refresh()
}

// detach unlinks the focused node, frees it and focuses a neighbour.
func (m *browseModel) detach() {
	parent, err := m.focus.Traverse.Parent()
	if err != nil {
		m.status = err.Error()
		return
	}
	if parent == nil {
		m.status = "cannot detach the document"
		return
	}

	next, _ := m.focus.Traverse.NextSibling()
	if next == nil {
		next, _ = m.focus.Traverse.PrevSibling()
	}
	if next == nil {
		next = parent
	}

	label := m.focus.String()
	detached, err := m.focus.Mutate.Unlink()
	if err != nil {
		m.status = err.Error()
		return
	}
	detached.Close()
	m.detached++

	m.focus = next
	m.status = "detached " + label
	m.refresh()
}

// jump focuses the next node of the named type after the focus in
// document order, wrapping around at the end.
func (m *browseModel) jump(name string) {
	t, ok := node.TypeByName(name)
	if !ok {
		m.status = fmt.Sprintf("unknown node type %q", name)
		return
	}
	focusID, _ := m.focus.Get.ID()

	var first, next *node.Node
	passed := false
	for n, ev := range m.root.Traverse.Walk() {
		if ev != node.EventEnter {
			continue
		}
		id, _ := n.Get.ID()
		if id == focusID {
			passed = true
			continue
		}
		if nt, _ := n.Get.Type(); nt != t {
			continue
		}
		if first == nil {
			first = n
		}
		if passed {
			next = n
			break
		}
	}
	if next == nil {
		next = first
	}
	if next == nil {
		m.status = "no other " + name
		return
	}
	m.focus = next
	m.status = ""
	m.refresh()
}

func (m *browseModel) refresh() {
	m.preview.SetContent(m.cfg.RenderNode(m.focus))
	m.preview.GotoTop()
}

// path lists the types from the root down to the focus.
func (m *browseModel) path() string {
	var parts []string
	for n := m.focus; n != nil; {
		parts = append(parts, n.String())
		parent, err := n.Traverse.Parent()
		if err != nil {
			break
		}
		n = parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " › ")
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("doogie"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	b.WriteString(pathStyle.Render(m.path()))
	b.WriteString("\n")
	if line, err := describe(m.focus); err == nil {
		b.WriteString(focusStyle.Render(line))
	}
	b.WriteString("\n")

	b.WriteString(previewStyle.Render(m.preview.View()))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter jump • esc cancel"))
		return b.String()
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"h/j/k/l move • / find • x %s • d detach • q quit", m.otherFormat())))
	return b.String()
}

func (m *browseModel) otherFormat() string {
	if m.cfg.Render.Format == FormatXML {
		return FormatCommonMark
	}
	return FormatXML
}
