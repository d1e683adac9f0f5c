package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"reflex/convert"
	"reflex/kv"
	"reflex/options"
	"reflex/synth"
)

var (
	rootOpts = struct {
		config    string
		verbosity int
	}{}

	synthesizer = synth.New()

	rootCmd = &cobra.Command{
		Use:          "reflex",
		Short:        "Inspect, convert and synthesize Go values",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := options.Default()
			if rootOpts.config != "" {
				var err error
				if cfg, err = options.Load(rootOpts.config); err != nil {
					return err
				}
			}

			commonlog.Configure(max(cfg.Verbosity, rootOpts.verbosity), nil)

			if err := convert.Configure(cfg); err != nil {
				return err
			}
			synthesizer = synth.FromConfig(cfg)

			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.config, "config", "", "configuration file (.yaml or .toml)")
	rootCmd.PersistentFlags().CountVarP(&rootOpts.verbosity, "verbose", "v", "log verbosity, repeat for more")

	rootCmd.AddCommand(convertCmd, synthCmd, explainCmd)
}

// readMapping decodes a YAML document holding a single mapping.
func readMapping(path string) (kv.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping %s: %w", path, err)
	}

	mapping := make(kv.Mapping)
	if err = yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
	}

	return mapping, nil
}
