package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// outputFormat is a flag value restricted to a fixed set of formats.
type outputFormat struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*outputFormat)(nil)

func newOutputFormat(def string, allowed ...string) *outputFormat {
	return &outputFormat{value: def, allowed: allowed}
}

func (f *outputFormat) String() string {
	return f.value
}

func (f *outputFormat) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, allowed := range f.allowed {
		if value == allowed {
			f.value = value
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.allowed, ", "))
}

func (f *outputFormat) Type() string {
	return "format"
}

// addFormatFlag registers --format on cmd.
func addFormatFlag(cmd *cobra.Command, target *outputFormat) {
	cmd.Flags().Var(target, "format", "Output format ("+strings.Join(target.allowed, ", ")+")")
}

// aliasFlags lets every cmd accept the short spellings in aliases.
func aliasFlags(aliases map[string]string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		flags := cmd.Flags()
		normalize := flags.GetNormalizeFunc()
		flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
			if full, ok := aliases[name]; ok {
				name = full
			}
			return normalize(f, name)
		})
	}
}

// readDescription returns description, or all of stdin when it is "-".
func readDescription(description string, stdin io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimRight(string(input), "\r\n"), nil
}
