package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/descent/pkg/errors"
	"github.com/YuminosukeSato/descent/pkg/log"
)

const (
	envPrefix = "DESCENT"

	configFlag    = "config"
	logLevelFlag  = "log-level"
	logFormatFlag = "log-format"
)

// newRootCmd builds the command tree. Each tree owns its viper instance, so
// flags, DESCENT_* variables and the config file never leak between runs.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "descent",
		Short:         "Fit regression models with gradient descent",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cmd.Flags()); err != nil {
				return err
			}
			return setupLogging(v, cmd)
		},
	}

	cmd.PersistentFlags().String(configFlag, "", "Path to a YAML, JSON or TOML configuration file")
	cmd.PersistentFlags().String(logLevelFlag, "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String(logFormatFlag, "zerolog", "Log backend: zerolog or slog")

	cmd.AddCommand(newFitCmd(v))
	return cmd
}

// initConfig binds flags and reads the optional config file.
// Precedence: flags > environment > config file > defaults.
func initConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if path := v.GetString(configFlag); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	}
	return nil
}

func setupLogging(v *viper.Viper, cmd *cobra.Command) error {
	level, err := log.ParseLevel(v.GetString(logLevelFlag))
	if err != nil {
		return err
	}
	switch strings.ToLower(v.GetString(logFormatFlag)) {
	case "zerolog", "":
		log.SetupZerolog(cmd.ErrOrStderr(), level)
	case "slog":
		log.SetupLogger(cmd.ErrOrStderr(), level)
	default:
		return errors.NewValidationError(logFormatFlag, "must be zerolog or slog", v.GetString(logFormatFlag))
	}
	return nil
}
