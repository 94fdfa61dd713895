// Command scoreprep fits and applies the student performance preprocessor.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/scoreprep/config"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/pkg/log"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	provider *log.ZerologProvider
	logger   log.Logger
}

func newApp() *app {
	return &app{v: viper.New()}
}

// execute runs the command line and closes the log sink whether or not the command failed.
func (a *app) execute(args []string, out io.Writer) (err error) {
	defer func() {
		if closeErr := a.close(); err == nil {
			err = closeErr
		}
	}()
	root := a.rootCommand()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	return root.Execute()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "scoreprep",
		Short:         "Preprocess student performance data for regression",
		Long:          "scoreprep fits a column preprocessor on training data, transforms train and test sets and stores the fitted preprocessor for inference.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	addFlags(root.PersistentFlags())
	bindFlags(a.v, root.PersistentFlags(), map[string]string{
		"log.level":       "log-level",
		"log.console":     "log-console",
		"log.path":        "log-path",
		"log.max_size":    "log-max-size",
		"log.max_age":     "log-max-age",
		"log.max_backups": "log-max-backups",
	})

	root.AddCommand(
		newTransformCommand(a),
		newInspectCommand(a),
		newApplyCommand(a),
		newVersionCommand(),
	)
	return root
}

func addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringP("config", "c", "", "configuration file path (toml, yaml or json)")
	flagSet.String("log-level", "info", "log level: debug, info, warn or error")
	flagSet.Bool("log-console", false, "human readable logs instead of JSON")
	flagSet.String("log-path", "", "path of log file")
	flagSet.Int("log-max-size", 100, "maximum size in megabytes of the log file")
	flagSet.Int("log-max-age", 0, "maximum number of days to retain old log files")
	flagSet.Int("log-max-backups", 0, "maximum number of old log files to retain")
}

// bindFlags binds config keys to flags. A flag only overrides the config when it is set.
func bindFlags(v *viper.Viper, flagSet *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flagSet.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(a.v, configPath)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	provider, err := log.NewZerologProviderFromConfig(cfg.Logging())
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	log.SetProvider(provider)

	a.cfg = cfg
	a.provider = provider
	a.logger = provider.GetLoggerWithName("scoreprep")
	a.logger.Debug("Loaded config", log.PathKey, configPath)
	return nil
}

func (a *app) close() error {
	if a.provider == nil {
		return nil
	}
	provider := a.provider
	a.provider = nil
	return provider.Close()
}

func main() {
	if err := newApp().execute(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
