// Command vtree parses HTML into a vtree, renders and inspects it, serves it
// to live browsers and publishes snapshots to S3.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/vtree/internal/config"
	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/logging"
	"github.com/vango-dev/vtree/pkg/publish"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌┬┐┬─┐┌─┐┌─┐
  └┐┌┘ │ ├┬┘├┤ ├┤
   └┘  ┴ ┴└─└─┘└─┘
`

// cli carries state shared by the subcommands.
type cli struct {
	configPath string
	verbose    bool

	cfg *config.Config

	stdin io.Reader

	// newPutter builds the object store client used by publish.
	newPutter func(config.PublishConfig) publish.ObjectPutter
}

func newCLI() *cli {
	return &cli{
		stdin: os.Stdin,
		newPutter: func(cfg config.PublishConfig) publish.ObjectPutter {
			return publish.NewS3Client(cfg)
		},
	}
}

func main() {
	if err := newRootCmd(newCLI()).Execute(); err != nil {
		vterrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Inspect, render and serve in-memory element trees",
		Long: `vtree loads HTML into an in-memory element tree.

The tree can be rendered back to HTML, inspected as a hierarchy,
served to browsers that follow every change over a WebSocket, or
published as a static snapshot to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to vtree.json (default: nearest in working directory or parents)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		renderCmd(c),
		inspectCmd(c),
		serveCmd(c),
		publishCmd(c),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and installs the logger.
func (c *cli) setup() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	logging.Set(logger)
	c.cfg = cfg
	logger.Debug("configuration loaded", zap.String("path", cfg.Path()))
	return nil
}

// loadConfig reads --config when given. Otherwise it uses the nearest
// vtree.json, falling back to defaults when there is none.
func (c *cli) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.LoadFile(c.configPath)
	}
	cfg, err := config.LoadFromWorkingDir()
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, vterrors.New(vterrors.CodeConfigNotFound)) {
		return config.New(), nil
	}
	return nil, err
}

// printBanner prints the vtree banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
