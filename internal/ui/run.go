package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"kiln/internal/driver"
)

// RunProgress shows the progress view on out while work runs. work gets the
// callback to pass as driver.Options.Progress; the view closes once work
// returns.
func RunProgress(out io.Writer, title string, files []string, work func(driver.ProgressFunc) error) error {
	events := make(chan driver.Event, len(files)*4+1)
	errc := make(chan error, 1)
	go func() {
		defer close(events)
		errc <- work(func(ev driver.Event) { events <- ev })
	}()

	prog := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	if _, err := prog.Run(); err != nil {
		// вид упал: дожидаемся работы, вычитывая события
		for range events {
		}
		if werr := <-errc; werr != nil {
			return werr
		}
		return err
	}
	return <-errc
}
