package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errKeyMismatch = errors.New("key does not match class and id")

// runCheck rebuilds every stored record and stops at the first bad one.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	keys := engine.All().Keys()
	for _, key := range keys {
		r, err := engine.Record(key)
		if err != nil {
			return err
		}
		if r.Key() != key {
			return fmt.Errorf("record %s: %w (%s)", key, errKeyMismatch, r.Key())
		}
	}

	logger.Debug("check passed", zap.Int("records", len(keys)))
	fmt.Fprintf(cmd.OutOrStdout(), "%d records OK in %s\n", len(keys), engine.Backend().Name())
	return nil
}
