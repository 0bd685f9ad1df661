package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/restclient/packages/core/config"
	"github.com/abdul-hamid-achik/restclient/packages/core/env"
	"github.com/abdul-hamid-achik/restclient/packages/logger"
	"github.com/abdul-hamid-achik/restclient/packages/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settings is the resolved state shared by the commands.
type settings struct {
	config   *config.Config
	resolver *env.Resolver
	logger   *zap.Logger
}

// loadSettings merges config file, .env file, RESTCLIENT_* variables and
// the persistent flags, in that order.
func loadSettings() (*settings, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}

	resolver := env.NewResolver()
	if envFileFlag != "" {
		vars, err := env.LoadAndExportDotEnv(envFileFlag)
		if err != nil {
			return nil, withExitCode(ExitConfigError, err)
		}
		resolver.SetVariables(vars)
	}

	cfg, err = cfg.ApplyEnv(env.LoadSystemEnv(env.Prefix))
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if noColorFlag {
		cfg.NoColor = config.BoolPtr(true)
	}

	log := logger.New(cfg.LogLevel, false)
	resolver.SetWarnFunc(func(format string, args ...any) {
		log.Sugar().Warnf(format, args...)
	})

	return &settings{config: cfg, resolver: resolver, logger: log}, nil
}

func (s *settings) formatter(cmd *cobra.Command) (output.Formatter, error) {
	f, err := output.New(outputFlag, cmd.OutOrStdout(), s.config.GetNoColor())
	if err != nil {
		return nil, withExitCode(ExitUsageError, err)
	}
	return f, nil
}
