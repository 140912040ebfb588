package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hbnb/internal/console"
)

// runExec executes a single command line. The line arrives as one argument
// so its quoting reaches the tokenizer intact.
func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	line := args[0]
	logger.Debug("exec", zap.String("line", line))

	sh := console.New(engine, strings.NewReader(""), cmd.OutOrStdout())
	_, err = sh.Execute(line)
	return err
}
