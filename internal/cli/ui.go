package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorAmber = lipgloss.Color("220") // Amber - transitions
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)

	styleCell   = lipgloss.NewStyle().Width(14)
	styleIndex  = lipgloss.NewStyle().Width(4).Foreground(colorDim)
	styleHeader = styleCell.Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func stateStyle(s uipanel.State) lipgloss.Style {
	switch s {
	case uipanel.Opened:
		return styleCell.Foreground(colorGreen)
	case uipanel.IsOpening, uipanel.IsClosing:
		return styleCell.Foreground(colorAmber)
	default:
		return styleCell.Foreground(colorDim)
	}
}

// renderStack draws the stack top first, followed by the panels that are not
// on it. Lazy panels are matched to their instance by name.
func renderStack(c *uipanel.Controller) string {
	var rows []string
	rows = append(rows, styleIndex.Render("#")+styleHeader.Render("panel")+styleHeader.Render("state"))

	stack := c.Stack()
	onStack := make(map[string]bool, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		p := stack[i]
		onStack[p.Name()] = true
		rows = append(rows, styleIndex.Render(fmt.Sprint(i))+styleCell.Render(p.Name())+stateStyle(p.State()).Render(p.State().String()))
	}

	for _, p := range c.Panels() {
		if p == nil || onStack[p.Name()] {
			continue
		}
		rows = append(rows, styleIndex.Render("-")+styleCell.Render(p.Name())+stateStyle(p.State()).Render(p.State().String()))
	}

	rows = append(rows, styleDim.Render(fmt.Sprintf("%d showing", c.ShowingPanelCount())))
	return strings.Join(rows, "\n")
}
