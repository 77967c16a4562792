package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

type options struct {
	viper      *viper.Viper
	configFile string
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the extmemtest command tree with its own configuration
func NewRootCommand() *cobra.Command {
	opts := &options{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "extmemtest",
		Short: "Validate GPU external memory sharing",
		Long: `extmemtest exports device memory as external handles, imports those handles
into a second resource, and checks that a payload written through the first
resource can be read back through the second.

Each (resource, handle kind) case is run according to the capabilities the
device reports for it, and every object a case creates is released before the
next case begins.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./extmemtest.yaml or $HOME/.extmemtest/extmemtest.yaml)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	cobra.CheckErr(opts.viper.BindPFlags(flags))

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newKindsCommand())

	return rootCmd
}

// initConfig reads in config file and ENV variables
func (o *options) initConfig() error {
	if o.configFile != "" {
		o.viper.SetConfigFile(o.configFile)
	} else {
		o.viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			o.viper.AddConfigPath(filepath.Join(home, ".extmemtest"))
		}
		o.viper.SetConfigType("yaml")
		o.viper.SetConfigName("extmemtest")
	}

	o.viper.SetEnvPrefix("EXTMEM")
	o.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	o.viper.AutomaticEnv()

	err := o.viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (o.configFile != "" || !errors.As(err, &notFound)) {
		return errors.Wrap(err, "reading config")
	}

	return nil
}

func (o *options) logger(w io.Writer) (*slog.Logger, error) {
	levelName := strings.ToLower(o.viper.GetString("log-level"))
	level, ok := logLevels[levelName]
	if !ok {
		return nil, errors.Newf("unknown log level %q", levelName)
	}

	handlerOptions := &slog.HandlerOptions{Level: level}

	switch format := strings.ToLower(o.viper.GetString("log-format")); format {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	default:
		return nil, errors.Newf("unknown log format %q", format)
	}
}
