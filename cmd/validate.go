package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/store"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Check the catalog against its authoring rules",
	Long: `Load the catalog (the embedded one, or --content-dir) and check its
authoring rules: override indices within bounds, unique table-of-contents
ids, override ids that name existing records, and patch fields that apply
to the block they target. Missing translations are never reported.

Examples:
  lectern validate
  lectern validate --content-dir ./content -f json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var validateFlags *StandardFlags

func init() {
	rootCmd.AddCommand(validateCmd)
	validateFlags = AddStandardFlags(validateCmd, "output")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := storeLoader(cfg)()
	if err != nil {
		return err
	}
	return validate(cmd.OutOrStdout(), s, validateFlags.Format)
}

// Problem is one broken authoring rule.
type Problem struct {
	Field       string   `json:"field" yaml:"field"`
	Message     string   `json:"message" yaml:"message"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Report is the result of validating one snapshot.
type Report struct {
	Source   string      `json:"source" yaml:"source"`
	Stats    store.Stats `json:"stats" yaml:"stats"`
	Problems []Problem   `json:"problems" yaml:"problems"`
}

// validate prints the report for s and fails when it has problems.
func validate(w io.Writer, s *store.Store, format string) error {
	vec := s.Validate()

	report := Report{Source: s.Source(), Stats: s.Stats(), Problems: []Problem{}}
	rows := []row{{"Source", s.Source()}}
	for _, err := range vec.Errors {
		p := Problem{Field: err.Field(), Message: err.Error(), Suggestions: err.Suggestions()}
		if fve, ok := err.(*errors.FieldValidationError); ok {
			p.Message = fve.ErrorMessage
		}
		report.Problems = append(report.Problems, p)
		rows = append(rows, row{p.Field, p.Message})
	}
	if !vec.HasErrors() {
		rows = append(rows, row{"Result", "ok"})
	}

	if err := writeValue(w, format, report, rows); err != nil {
		return err
	}
	if vec.HasErrors() {
		return fmt.Errorf("catalog has %d problem(s): %w", len(vec.Errors), vec.ToContentError())
	}
	return nil
}
