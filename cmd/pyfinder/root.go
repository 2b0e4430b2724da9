package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ochairo/pyfinder/internal/config"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/external-adapters/charmlog"
)

// endpoints locates the upstream feeds. Empty values use the public defaults.
type endpoints struct {
	cpython       string
	pypyVersions  string
	pypyChecksums string
	uv            string
}

// app carries the state shared by every command
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	viper      *viper.Viper
	cfg        *config.Config
	logger     interfaces.Logger
	endpoints  endpoints
	httpClient *http.Client
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, viper: config.New()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pyfinder",
		Short: "Find Python and uv downloads from upstream release feeds",
		Long: `pyfinder walks the python-build-standalone, PyPy and uv release feeds,
selects one build per version and platform, attaches published checksums
and renders the result as a lookup table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newPythonCmd(a),
		newUvCmd(a),
		newTripleCmd(a),
		newFilenameCmd(a),
	)
	return root
}

// init loads configuration and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	if err := config.BindFlags(a.viper, flags); err != nil {
		return err
	}

	cfg, err := config.Load(a.viper, config.ConfigFile(flags))
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := charmlog.New(a.stderr, charmlog.Options{
		Level:           cfg.Log.Level,
		ReportTimestamp: cfg.Log.Timestamps,
		Prefix:          "pyfinder",
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	return nil
}
