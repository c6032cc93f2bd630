package form

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/QMSS-G5072-2024/nutrilog/internal/edamam"
)

// ErrCancelled is returned by Prompt when the user leaves the form.
var ErrCancelled = errors.New("entry cancelled")

// Prompt runs the form on in/out and returns the submitted query.
func Prompt(in io.Reader, out io.Writer) (edamam.Query, error) {
	p := tea.NewProgram(New(), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return edamam.Query{}, fmt.Errorf("run form: %w", err)
	}
	q, ok := final.(Model).Result()
	if !ok {
		return edamam.Query{}, ErrCancelled
	}
	return q, nil
}
