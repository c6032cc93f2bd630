package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/QMSS-G5072-2024/nutrilog/internal/config"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

var Version = "dev"

// envPrefix namespaces the environment variables read by viper.
const envPrefix = "NUTRILOG"

// annotationSkipConfigFile marks commands that must not read the config file.
const annotationSkipConfigFile = "nutrilog/skip-config-file"

type ctxKey struct{}

// runtimeEnv is the resolved configuration handed to every command.
type runtimeEnv struct {
	cfg        model.Config
	configFile string // Empty when no config file was read
	configFlag string // Value of --config
	logger     *slog.Logger
}

func envFrom(cmd *cobra.Command) *runtimeEnv {
	if env, ok := cmd.Context().Value(ctxKey{}).(*runtimeEnv); ok {
		return env
	}
	return &runtimeEnv{cfg: model.DefaultConfig(), logger: newLogger(io.Discard, false)}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	var verbose bool

	root := &cobra.Command{
		Use:   "nutrilog",
		Short: "Daily nutrition log backed by the Edamam API",
		Long:  "nutrilog looks up foods with the Edamam nutrition API, appends their nutrients to a daily CSV log, and charts calories and nutrient breakdowns over time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			// config init targets a file that may not exist yet
			_, skipFile := cmd.Annotations[annotationSkipConfigFile]
			used, err := initConfig(v, cfgFile, !skipFile)
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			if used != "" {
				logger.Debug("config loaded", "file", used)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, ctxKey{}, &runtimeEnv{cfg: cfg, configFile: used, configFlag: cfgFile, logger: logger}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/"+config.FileName+")")
	root.PersistentFlags().String("log-file", "", "CSV nutrition log (default: <data-root>/daily_nutrition.csv)")
	root.PersistentFlags().String("data-root", "", "Directory for the log and rendered charts (default: ~/.nutrilog)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = v.BindPFlag("log_file", root.PersistentFlags().Lookup("log-file"))
	_ = v.BindPFlag("data_root", root.PersistentFlags().Lookup("data-root"))

	root.AddCommand(
		newAddCmd(),
		newLookupCmd(),
		newChartCmd(),
		newGraphCmd(),
		newTotalCmd(),
		newStatusCmd(),
		newDoctorCmd(),
		newWebCmd(),
		newAppCmd(),
		newConfigCmd(),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("nutrilog %s\n", Version))

	return root
}

// initConfig loads .env, the environment and the config file into v. It
// returns the config file used, if any. A config file with unknown keys is an
// error.
func initConfig(v *viper.Viper, cfgFile string, readFile bool) (string, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("app_id", envPrefix+"_APP_ID", "EDAMAM_APP_ID")
	_ = v.BindEnv("app_key", envPrefix+"_APP_KEY", "EDAMAM_APP_KEY")

	if !readFile {
		return "", nil
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}

	// viper ignores unknown keys; the strict decoder catches typos.
	used := v.ConfigFileUsed()
	if _, err := config.Load(used); err != nil {
		return "", fmt.Errorf("%s: %w", used, err)
	}
	return used, nil
}

// resolveConfig layers flags, environment and config file over the defaults.
// data_root moves the default log file with it unless log_file is set.
func resolveConfig(v *viper.Viper) (model.Config, error) {
	defaults := model.DefaultConfig()
	v.SetDefault("data_root", defaults.DataRoot)
	v.SetDefault("log_file", "")
	v.SetDefault("port", defaults.Port)
	v.SetDefault("app_id", "")
	v.SetDefault("app_key", "")
	v.SetDefault("endpoint", defaults.Endpoint)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("legacy_carbs_unit", false)
	v.SetDefault("display", defaults.Display)

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile(cfg.DataRoot)
	}
	return cfg, nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
