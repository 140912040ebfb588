// Package console implements the hbnb line shell.
//
// Each input line names a command followed by its argument text. User
// mistakes (missing class, unknown id, ...) print a fixed message and the
// loop continues. Tokenizer and storage failures end the loop and are
// returned from Run.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"hbnb/internal/logging"
	"hbnb/internal/store"
)

// DefaultPrompt is printed before each line in interactive mode.
const DefaultPrompt = "(hbnb) "

// Console reads commands from in and writes results to out. All state
// lives in the engine.
type Console struct {
	engine      *store.Engine
	in          *bufio.Reader
	out         io.Writer
	prompt      string
	interactive bool

	commands map[string]command
}

// command handles one verb. stop ends the loop.
type command struct {
	run  func(arg string) (stop bool, err error)
	help string
}

// Option configures a Console.
type Option func(*Console)

// WithPrompt overrides DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(c *Console) { c.prompt = prompt }
}

// Interactive turns prompt printing on or off. It is off by default so
// piped input produces only command output.
func Interactive(on bool) Option {
	return func(c *Console) { c.interactive = on }
}

// New returns a console bound to engine.
func New(engine *store.Engine, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		engine: engine,
		in:     bufio.NewReader(in),
		out:    out,
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.commands = c.commandTable()
	return c
}

// Run reads and executes lines until quit, EOF or end of input. End of
// input behaves as the EOF command.
func (c *Console) Run() error {
	logging.Console("shell started (interactive=%v)", c.interactive)
	for {
		if c.interactive {
			fmt.Fprint(c.out, c.prompt)
		}

		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		if errors.Is(err, io.EOF) && line == "" {
			line = "EOF"
		}

		stop, err := c.Execute(strings.TrimRight(line, "\r\n"))
		if err != nil {
			logging.ConsoleError("command %q failed: %v", line, err)
			return err
		}
		if stop {
			logging.Console("shell stopped")
			return nil
		}
	}
}

// Execute runs one command line.
func (c *Console) Execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	name, arg := parseLine(line)
	logging.ConsoleDebug("dispatch %q arg=%q", name, arg)

	cmd, ok := c.commands[name]
	if !ok {
		return c.dotCall(line)
	}
	return cmd.run(arg)
}

// parseLine splits off the leading command word. "?" is shorthand for help.
func parseLine(line string) (name, arg string) {
	if strings.HasPrefix(line, "?") {
		line = "help " + line[1:]
	}
	i := 0
	for i < len(line) && isIdentByte(line[i]) {
		i++
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
