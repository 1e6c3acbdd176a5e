package cmd

import (
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/trickstertwo/dappkitty"
)

// resolved is the YAML view of an effective configuration.
type resolved struct {
	Env           string                       `yaml:"env"`
	LogLevel      string                       `yaml:"logLevel"`
	LevelSource   string                       `yaml:"levelSource"`
	Active        bool                         `yaml:"active"`
	ProductionURL string                       `yaml:"productionUrl,omitempty"`
	Theme         string                       `yaml:"theme"`
	Targets       []string                     `yaml:"targets"`
	Payloads      map[string]dappkitty.Payload `yaml:"payloads,omitempty"`
}

func (c *command) initResolveCmd() {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the effective configuration for a page location",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := c.config.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			o, err := c.overrides()
			if err != nil {
				return err
			}

			host := c.newHost(cmd, nil)
			d := dappkitty.New(host, o)
			cfg := d.Config()

			out := resolved{
				Env:           string(cfg.Env),
				LogLevel:      cfg.LogLevel.String(),
				LevelSource:   cfg.LevelSource,
				Active:        d.ShouldActivate(),
				ProductionURL: cfg.ProductionURL,
				Theme:         cfg.Theme(),
				Targets:       cfg.TargetNames(),
				Payloads:      cfg.Payloads,
			}
			sort.Strings(out.Targets)

			b, err := yaml.Marshal(out)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	c.setSessionFlags(cmd)
	c.root.AddCommand(cmd)
}
