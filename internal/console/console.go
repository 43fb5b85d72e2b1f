// Package console plays a session over line-based text input and output.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"TempeQuest/internal/game"
)

type styles struct {
	title   lipgloss.Style
	speaker lipgloss.Style
	option  lipgloss.Style
	err     lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		speaker: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		option:  r.NewStyle().Foreground(lipgloss.Color("252")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Run reads commands from in until quit or EOF. Options are numbered from 1.
// Besides numbers it accepts "stats", "level <stat>" and "quit".
func Run(in io.Reader, out io.Writer, s *game.Session) error {
	st := newStyles(out)
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, st.title.Render("Welcome to Tempe Quest!"))
	fmt.Fprintln(out, "A text adventure through the depths of ASU reality")

	for {
		v, err := s.Present()
		if err != nil {
			return err
		}
		render(out, st, v)

		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			done, next, err := handle(out, st, s, v, line)
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintln(out, "Goodbye.")
				return nil
			}
			if next {
				break
			}
		}
	}
}

// handle applies one line. next reports that the view must be re-rendered.
func handle(out io.Writer, st styles, s *game.Session, v *game.View, line string) (done, next bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, false, nil
	case "stats":
		printStats(out, s)
		return false, false, nil
	case "level":
		if len(fields) != 2 {
			fmt.Fprintln(out, st.err.Render("Usage: level <stat>"))
			return false, false, nil
		}
		if !s.LevelUp(fields[1]) {
			fmt.Fprintln(out, st.err.Render(fmt.Sprintf("Cannot increase %s.", fields[1])))
			return false, false, nil
		}
		printStats(out, s)
		return false, false, nil
	}

	n, convErr := strconv.Atoi(fields[0])
	if v.Kind == game.ViewCharacterSelect {
		name := line
		if convErr == nil && n >= 1 && n <= len(v.Options) {
			name = v.Options[n-1]
		}
		if !s.SelectCharacter(name) {
			fmt.Fprintln(out, st.err.Render(fmt.Sprintf("Invalid choice. Enter a number between 1 and %d.", len(v.Options))))
			return false, false, nil
		}
		return false, true, nil
	}

	if convErr != nil {
		fmt.Fprintln(out, st.err.Render("Enter the number of an option, \"stats\" or \"quit\"."))
		return false, false, nil
	}
	if _, err := s.Choose(n - 1); err != nil {
		if errors.Is(err, game.ErrInput) {
			fmt.Fprintln(out, st.err.Render(fmt.Sprintf("Invalid choice. Enter a number between 1 and %d.", len(v.Options))))
			return false, false, nil
		}
		return false, false, err
	}
	return false, true, nil
}

func render(out io.Writer, st styles, v *game.View) {
	fmt.Fprintln(out)
	switch v.Kind {
	case game.ViewCharacterSelect:
		fmt.Fprintln(out, st.title.Render(v.Text))
	case game.ViewDialogue:
		fmt.Fprintln(out, st.title.Render(v.Title))
		fmt.Fprintf(out, "%s %s\n", st.speaker.Render(v.Speaker+":"), v.Text)
	case game.ViewScene:
		fmt.Fprintln(out, st.title.Render(v.Title))
		fmt.Fprintln(out, v.Text)
	}
	for i, opt := range v.Options {
		fmt.Fprintln(out, st.option.Render(fmt.Sprintf("%d. %s", i+1, opt)))
	}
}

func printStats(out io.Writer, s *game.Session) {
	list := s.VisibleStats()
	if len(list) == 0 {
		fmt.Fprintln(out, "No character selected.")
		return
	}
	for _, stat := range list {
		fmt.Fprintf(out, "%s: %d\n", stat.Name.Label(), stat.Value)
	}
}
