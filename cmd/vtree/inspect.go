package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/vtree/pkg/vdom"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	shadowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func inspectCmd(c *cli) *cobra.Command {
	var (
		interactive bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the element hierarchy of a tree",
		Long: `Parse FILE into a tree and print its hierarchy.

Each line shows the NodeID and the element as tag#id.class. Nested
trees appear under a [shadow] branch.

Examples:
  vtree inspect index.html
  vtree inspect -i index.html
  vtree inspect --json index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(t.BuildTree())
			case interactive:
				return browse(t, c.stdin, w)
			case isTerminal(w):
				_, err = fmt.Fprintln(w, styleDump(t.String()))
				return err
			default:
				_, err = fmt.Fprint(w, t.String())
				return err
			}
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the hierarchy in a scrollable view")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the hierarchy as JSON")

	return cmd
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styleDump highlights the header and the shadow branches of a dump.
func styleDump(dump string) string {
	lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = titleStyle.Render(line)
		case strings.Contains(line, "[shadow]"):
			lines[i] = shadowStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// browseModel is a scrollable view of a tree dump.
type browseModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newBrowseModel(t *vdom.Tree) browseModel {
	dump := styleDump(t.String())
	title, body, _ := strings.Cut(dump, "\n")
	return browseModel{title: title, content: body}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := msg.Height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.header() + "\n" + m.viewport.View() + "\n" + m.footer()
}

func (m browseModel) header() string {
	return m.title
}

func (m browseModel) footer() string {
	pct := 100
	if m.ready {
		pct = int(m.viewport.ScrollPercent() * 100)
	}
	return helpStyle.Render(fmt.Sprintf("%3d%%  ↑/↓ scroll • q quit", pct))
}

// browse runs the interactive view until the user quits.
func browse(t *vdom.Tree, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newBrowseModel(t),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
