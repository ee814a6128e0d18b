package cli

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// watchReporter feeds a live progress view while an enumeration runs.
// The enumeration goroutine bumps a counter; the bubbletea program
// samples it a few times per second. Display only - quitting the view
// does not cancel the run.
type watchReporter struct {
	count atomic.Int64
	prog  *tea.Program
}

// startWatch launches the progress view on stderr and returns the
// reporter the enumeration callback should bump.
func startWatch(ctx context.Context) *watchReporter {
	r := &watchReporter{}
	model := watchModel{reporter: r, start: time.Now()}
	r.prog = tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)
	go func() {
		// Errors here only affect the progress display, never the run.
		_, _ = r.prog.Run()
	}()
	return r
}

// bump records one emitted solution.
func (r *watchReporter) bump() {
	r.count.Add(1)
}

// stop ends the progress view and waits for it to tear down.
func (r *watchReporter) stop() {
	r.prog.Send(watchDoneMsg{})
	r.prog.Wait()
}

// =============================================================================
// Bubbletea Model
// =============================================================================

type watchTickMsg time.Time

type watchDoneMsg struct{}

var watchFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type watchModel struct {
	reporter *watchReporter
	start    time.Time
	frame    int
	done     bool
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func watchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case watchTickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, watchTick()
	case watchDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}
	frame := watchFrames[m.frame%len(watchFrames)]
	elapsed := time.Since(m.start).Round(100 * time.Millisecond)
	return fmt.Sprintf("%s %s solutions · %s",
		StyleNumber.Render(frame),
		StyleValue.Render(fmt.Sprintf("%d", m.reporter.count.Load())),
		StyleDim.Render(elapsed.String()),
	)
}
