package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"reflex/mapper"
)

var (
	explainOpts = struct {
		src   string
		dst   string
		apply bool
	}{}

	explainCmd = &cobra.Command{
		Use:   "explain",
		Short: "Explain how the members of one mapping would be copied onto another",
		Long:  "Synthesize objects from two YAML mappings and report, member by member, what a copy from --src to --dst does.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srcMapping, err := readMapping(explainOpts.src)
			if err != nil {
				return err
			}

			dstMapping, err := readMapping(explainOpts.dst)
			if err != nil {
				return err
			}

			src, err := synthesizer.Synthesize(srcMapping)
			if err != nil {
				return err
			}

			dst, err := synthesizer.Synthesize(dstMapping)
			if err != nil {
				return err
			}

			diags, err := mapper.Explain(src.Interface(), dst.Interface())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err = diags.WriteTo(out); err != nil {
				return err
			}

			if !explainOpts.apply {
				return nil
			}

			if err = mapper.CopyMembers(src.Interface(), dst.Interface()); err != nil {
				return err
			}

			fmt.Fprintln(out, "result:")
			spew.Fdump(out, dst.Interface())

			return nil
		},
	}
)

func init() {
	explainCmd.Flags().StringVar(&explainOpts.src, "src", "", "source YAML mapping")
	explainCmd.Flags().StringVar(&explainOpts.dst, "dst", "", "target YAML mapping")
	explainCmd.Flags().BoolVar(&explainOpts.apply, "apply", false, "copy the members and print the result")
	_ = explainCmd.MarkFlagRequired("src")
	_ = explainCmd.MarkFlagRequired("dst")
}
