package console

import (
	"fmt"
	"sort"
	"strings"
)

const (
	docHeader = "Documented commands (type help <topic>):"
	lineWidth = 80
)

func (c *Console) doHelp(arg string) (bool, error) {
	if arg != "" {
		if cmd, ok := c.commands[arg]; ok {
			c.println(cmd.help)
		} else {
			c.println("*** No help on " + arg)
		}
		return false, nil
	}

	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	c.println("")
	c.println(docHeader)
	c.println(strings.Repeat("=", len(docHeader)))
	for _, row := range columnize(names, lineWidth-1) {
		c.println(row)
	}
	c.println("")
	return false, nil
}

// columnize lays names out column-major in as few rows as fit width,
// columns separated by two spaces.
func columnize(names []string, width int) []string {
	if len(names) == 0 {
		return []string{"<empty>"}
	}

	for rows := 1; rows < len(names); rows++ {
		cols := (len(names) + rows - 1) / rows
		widths := make([]int, 0, cols)
		total := -2
		for col := 0; col < cols; col++ {
			w := 0
			for row := 0; row < rows; row++ {
				if i := row + rows*col; i < len(names) && len(names[i]) > w {
					w = len(names[i])
				}
			}
			widths = append(widths, w)
			total += w + 2
			if total > width {
				break
			}
		}
		if total <= width {
			return layout(names, rows, widths)
		}
	}

	// One name per row.
	return append([]string(nil), names...)
}

func layout(names []string, rows int, widths []int) []string {
	out := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var cells []string
		for col := range widths {
			if i := row + rows*col; i < len(names) {
				cells = append(cells, names[i])
			}
		}
		for i := 0; i < len(cells)-1; i++ {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cells[i])
		}
		out = append(out, strings.Join(cells, "  "))
	}
	return out
}
