package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rican7/conjson"
	"github.com/Rican7/conjson/transform"
	jsoniter "github.com/json-iterator/go"
	"github.com/miruken-go/empower"
	"github.com/miruken-go/empower/internal/slices"
	"github.com/miruken-go/empower/signature"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// patternInfo describes a configured pattern.
// Json keys are the camelCase field names.
type patternInfo struct {
	Pattern  string   `yaml:"pattern"`
	Kind     string   `yaml:"kind"`
	Callee   string   `yaml:"callee"`
	Args     []string `yaml:"args"`
	Captures int      `yaml:"captures"`
}

func newPatternsCmd(flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the configured call patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := flags.options()
			if err != nil {
				return err
			}
			matchers, err := signature.ParseAll(options.Patterns)
			if err != nil {
				return err
			}
			return writePatterns(cmd.OutOrStdout(), output, describe(matchers))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func describe(matchers []signature.Matcher) []patternInfo {
	infos := make([]patternInfo, len(matchers))
	for i, m := range matchers {
		args := slices.Map(m.Args, func(arg signature.Arg) string {
			if arg.Optional {
				return "[" + arg.Name + "]"
			}
			return arg.Name
		})
		callee := m.Callee.Name
		if m.IsMethodCall() {
			callee = m.Callee.Member
		}
		infos[i] = patternInfo{
			Pattern:  m.String(),
			Kind:     m.Callee.Kind.String(),
			Callee:   callee,
			Args:     args,
			Captures: empower.NumArgsToCapture(m),
		}
	}
	return infos
}

func writePatterns(w io.Writer, output string, infos []patternInfo) error {
	switch output {
	case "table":
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Pattern", "Kind", "Callee", "Captures"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		})
		for _, info := range infos {
			table.Append([]string{
				info.Pattern, info.Kind, info.Callee, fmt.Sprintf("%d", info.Captures),
			})
		}
		table.Render()
		return nil
	case "json":
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(
			conjson.NewMarshaler(infos, transform.CamelCaseKeys(false)))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output %q, expected %s", output,
			strings.Join([]string{"table", "json", "yaml"}, ", "))
	}
}
