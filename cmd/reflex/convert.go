package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reflex/convert"
)

var targetTypes = map[string]reflect.Type{
	"int":      reflect.TypeFor[int](),
	"int64":    reflect.TypeFor[int64](),
	"uint":     reflect.TypeFor[uint](),
	"float64":  reflect.TypeFor[float64](),
	"bool":     reflect.TypeFor[bool](),
	"string":   reflect.TypeFor[string](),
	"time":     reflect.TypeFor[time.Time](),
	"duration": reflect.TypeFor[time.Duration](),
}

var (
	convertOpts = struct {
		to     string
		strict bool
	}{}

	convertCmd = &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a text value",
		Long:  "Convert a text value to one of: " + strings.Join(targetNames(), ", ") + ". Values that do not convert print the zero value unless --strict is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := targetTypes[convertOpts.to]
			if !ok {
				return fmt.Errorf("%w: unknown target type %q", convert.ErrInvalidArgument, convertOpts.to)
			}

			var res any
			if convertOpts.strict {
				v, err := convert.Value(reflect.ValueOf(args[0]), t)
				if err != nil {
					return err
				}
				res = v.Interface()
			} else {
				res, _ = convert.ToType(t, args[0])
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), res)
			return err
		},
	}
)

func init() {
	convertCmd.Flags().StringVarP(&convertOpts.to, "to", "t", "string", "target type")
	convertCmd.Flags().BoolVar(&convertOpts.strict, "strict", false, "fail instead of printing the zero value")
}

func targetNames() []string {
	names := make([]string, 0, len(targetTypes))
	for name := range targetTypes {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
