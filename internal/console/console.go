package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Dracula palette, matching the other CLIs in the project.
const (
	draculaRed     = "#FF5555"
	draculaOrange  = "#FFB86C"
	draculaGreen   = "#50FA7B"
	draculaCyan    = "#8BE9FD"
	draculaComment = "#6272A4"
)

// styles groups the lipgloss styles used by the console.
type styles struct {
	banner, heading, info, warning, error, alert, plain lipgloss.Style
}

// Console writes styled lines to an output.
type Console struct {
	// out receives every rendered line.
	out io.Writer
	// styles holds styles bound to the renderer of out.
	styles styles
	// mu keeps lines whole if several goroutines print.
	mu sync.Mutex
}

// New creates a console writing to out.
func New(out io.Writer) *Console {
	renderer := lipgloss.NewRenderer(out)

	return &Console{
		out: out,
		styles: styles{
			banner: renderer.NewStyle().
				Foreground(lipgloss.Color(draculaCyan)).
				Bold(true),
			heading: renderer.NewStyle().
				Foreground(lipgloss.Color(draculaComment)).
				Bold(true),
			info: renderer.NewStyle().
				Foreground(lipgloss.Color(draculaGreen)),
			warning: renderer.NewStyle().
				Foreground(lipgloss.Color(draculaOrange)),
			error: renderer.NewStyle().
				Foreground(lipgloss.Color(draculaRed)),
			alert: renderer.NewStyle().
				Foreground(lipgloss.Color(draculaRed)).
				Bold(true),
			plain: renderer.NewStyle(),
		},
	}
}

// Banner prints the program title.
func (c *Console) Banner(text string) {
	c.print(c.styles.banner, text)
}

// Heading prints a section heading preceded by a blank line.
func (c *Console) Heading(text string) {
	c.print(c.styles.plain, "")
	c.print(c.styles.heading, text)
}

// Line prints an unstyled line.
func (c *Console) Line(text string) {
	c.print(c.styles.plain, text)
}

// Info prints a system notice.
func (c *Console) Info(text string) {
	c.print(c.styles.info, text)
}

// Warning prints a degraded-but-handled condition.
func (c *Console) Warning(text string) {
	c.print(c.styles.warning, text)
}

// Error prints a user-facing error.
func (c *Console) Error(text string) {
	c.print(c.styles.error, text)
}

// Alert prints an alarm announcement.
func (c *Console) Alert(text string) {
	c.print(c.styles.alert, text)
}

// Report prints the system summary.
func (c *Console) Report(sensorsOnline int, armed bool) {
	c.Heading("Generating System Report...")
	c.Line(fmt.Sprintf("Sensors Online: %d", sensorsOnline))
	c.Line("System Armed: " + YesNo(armed))
}

// YesNo renders a flag the way the report prints it.
func YesNo(flag bool) string {
	if flag {
		return "YES"
	}

	return "NO"
}

func (c *Console) print(style lipgloss.Style, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Console output is best effort; a closed stdout must not stop the hub.
	_, _ = fmt.Fprintln(c.out, style.Render(text))
}
