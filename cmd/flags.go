package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/lectern/internal/locale"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var outputFormats = []string{FormatTable, FormatJSON, FormatYAML}

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Server flags
	Port int    `flag:"port,p" desc:"Port to serve on" default:"8080"`
	Host string `flag:"host" desc:"Host to bind to" default:"localhost"`

	// Content flags
	Locale string `flag:"locale" desc:"Locale to resolve content for" default:"en"`

	// Output flags
	Format string `flag:"format,f" desc:"Output format (table|json|yaml)" default:"table"`
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "server":
			addServerFlags(cmd, flags)
		case "locale":
			addLocaleFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addServerFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 8080, "Port to serve on")
	cmd.Flags().StringVar(&flags.Host, "host", "localhost", "Host to bind to")
}

func addLocaleFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVar(&flags.Locale, "locale", string(locale.Canonical), "Locale to resolve content for (en|es)")
	AddFlagValidation(cmd, "locale", func(value string) error {
		_, err := locale.Parse(value)
		return err
	})
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.Format, "format", "f", FormatTable, "Output format (table|json|yaml)")
	AddFlagValidation(cmd, "format", func(value string) error {
		return ValidateFormat(value, outputFormats)
	})
}

// ParsedLocale returns the --locale value as a Locale.
func (f *StandardFlags) ParsedLocale() (locale.Locale, error) {
	return locale.Parse(f.Locale)
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidateFormat accepts one of valid, case-insensitively, and suggests the
// closest format otherwise.
func ValidateFormat(format string, valid []string) error {
	format = strings.ToLower(format)
	for _, v := range valid {
		if format == v {
			return nil
		}
	}

	msg := fmt.Sprintf("invalid format %q, must be one of: %s", format, strings.Join(valid, ", "))
	if suggestion := closest(format, valid); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return fmt.Errorf("%s", msg)
}

// closest returns the candidate sharing the longest prefix with s, or ""
// when none shares its first letter.
func closest(s string, candidates []string) string {
	best, bestLen := "", 0
	for _, c := range candidates {
		n := 0
		for n < len(s) && n < len(c) && s[n] == c[n] {
			n++
		}
		if n > bestLen {
			best, bestLen = c, n
		}
	}
	return best
}
