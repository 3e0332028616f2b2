// SPDX-License-Identifier: MIT

package cmd

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *log.Logger
}

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: log.New()}

	cmd := &cobra.Command{
		Use:           "chaindiag",
		Short:         "chaindiag checks Markov chain Monte Carlo output for convergence.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	cmd.PersistentFlags().String("config", "", "YAML or JSON file with diagnostic settings")
	cmd.PersistentFlags().String("logLevel", "info", "log level: debug, info, warn or error")
	_ = a.v.BindPFlag("logLevel", cmd.PersistentFlags().Lookup("logLevel"))

	cmd.AddCommand(
		runCmd(a),
		simulateCmd(a),
		versionCmd(),
	)

	return cmd
}

// init loads the config file, if any, layers the CHAINDIAG_* environment
// over it and configures logging.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("chaindiag")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfgFile)
		}
	}

	level, err := log.ParseLevel(a.v.GetString("logLevel"))
	if err != nil {
		return err
	}
	a.logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetLevel(level)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.WithField("file", used).Debug("config loaded")
	}

	return nil
}
