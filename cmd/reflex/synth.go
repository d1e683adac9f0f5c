package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"reflex/internal/common"
	"reflex/introspect"
	"reflex/kv"
)

var (
	synthOpts = struct {
		file string
		set  []string
	}{}

	synthCmd = &cobra.Command{
		Use:   "synth",
		Short: "Synthesize an object from a YAML mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping := make(kv.Mapping)
			if synthOpts.file != "" {
				var err error
				if mapping, err = readMapping(synthOpts.file); err != nil {
					return err
				}
			}

			for _, pair := range synthOpts.set {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("%w: --set %q is not key=value", common.ErrInvalidArgument, pair)
				}
				mapping[key] = value
			}

			obj, err := synthesizer.Synthesize(mapping)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, obj.Type().Name())

			members, err := introspect.Members(obj.Interface())
			if err != nil {
				return err
			}
			for _, member := range members {
				fmt.Fprintf(out, "  %s %s\n", member.Name, common.TypeName(member.Type))
			}

			spew.Fdump(out, obj.Interface())

			return nil
		},
	}
)

func init() {
	synthCmd.Flags().StringVarP(&synthOpts.file, "file", "f", "", "YAML mapping file")
	synthCmd.Flags().StringArrayVar(&synthOpts.set, "set", nil, "extra key=value string entry, repeatable")
}
