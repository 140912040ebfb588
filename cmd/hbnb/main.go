// Command hbnb is a line shell over a registry of typed records persisted
// as one JSON document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hbnb/internal/logging"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	storeFile   string
	backendName string

	// Logger
	logger *zap.Logger
)

// rootCmd starts the shell.
var rootCmd = &cobra.Command{
	Use:   "hbnb",
	Short: "hbnb - record shell",
	Long: `hbnb manages BaseModel, User, State, City, Place, Amenity and Review
records from a line-oriented shell. Every change is written back to a single
JSON document (file.json by default).

Run without arguments to start the shell. Type "help" inside it for commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: runShell,
}

// execCmd runs one shell line
var execCmd = &cobra.Command{
	Use:   "exec 'command line'",
	Short: "Run a single shell command and exit",
	Long: `Runs one command line exactly as the shell would and exits.

Quote the whole line as a single argument; quotes inside it are handled
by the shell tokenizer, not by your login shell.

Example:
  hbnb exec 'create User'
  hbnb exec 'update User 246c227a-d5c1-403d-9bc7-6a47bb9f0f68 name "Bob Smith"'
  hbnb exec 'User.update("246c227a-d5c1-403d-9bc7-6a47bb9f0f68", {"first_name": "Betty"})'`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

// checkCmd validates the stored document
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every record in the stored document",
	Long: `Reloads the document and rebuilds every record from it. Fails on the
first record with a malformed timestamp, an unknown class or a key that does
not match its class and id.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&storeFile, "file", "f", "", "JSON document path for the file backend (default: file.json)")
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "", "Storage backend: file, memory, sqlite, postgres, s3")

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
