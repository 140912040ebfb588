package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"hbnb/internal/console"
)

// runShell runs the interactive loop on the command's stdin and stdout.
func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	in := cmd.InOrStdin()
	interactive := cfg.Console.ForcePrompt || isTerminal(in)
	logger.Debug("starting shell", zap.Bool("interactive", interactive))

	sh := console.New(engine, in, cmd.OutOrStdout(),
		console.WithPrompt(cfg.Console.Prompt),
		console.Interactive(interactive))
	return sh.Run()
}

// isTerminal reports whether r is a terminal file descriptor.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
