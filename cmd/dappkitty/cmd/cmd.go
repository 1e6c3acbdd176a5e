package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	optionNameURL       = "url"
	optionNameLevel     = "level"
	optionNameOverrides = "overrides"
	optionNameSink      = "sink"
	optionNameServe     = "serve"
	optionNameBacklog   = "backlog"
)

func init() {
	cobra.EnableCommandSorting = false
}

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	fs      afero.Fs
	cfgFile string
	homeDir string
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           "dappkitty",
			Short:         "Developer log overlay for dapps",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return c.initConfig()
			},
		},
	}

	for _, o := range opts {
		o(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initGlobalFlags()
	c.initRunCmd()
	c.initResolveCmd()
	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute() (err error) {
	return c.root.Execute()
}

func (c *command) ExecuteContext(ctx context.Context) (err error) {
	return c.root.ExecuteContext(ctx)
}

// Execute parses command line arguments and runs appropriate functions.
// SIGINT and SIGTERM cancel the command context.
func Execute() (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.ExecuteContext(ctx)
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.dappkitty.yaml)")
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	config.SetFs(c.fs)
	configName := ".dappkitty"
	if c.cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(c.cfgFile)
	} else {
		// Search config in home directory with name ".dappkitty" (without extension).
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	// Environment
	config.SetEnvPrefix("dappkitty")
	config.AutomaticEnv() // read in environment variables that match
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return err
		}
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = dir
	return nil
}

func (c *command) setSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String(optionNameURL, "http://localhost:3000/?envkitty=dev", "page location; the envkitty query parameter selects the environment")
	cmd.Flags().String(optionNameLevel, "", "log level override: off, error, warn, info, debug or kitty")
	cmd.Flags().String(optionNameOverrides, filepath.Join(".", "dappkitty.yaml"), "override file (YAML or JSON); ignored when missing")
}
