package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/chzzk-go/internal/query"
)

var printer = message.NewPrinter(language.English)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeJQ prints each filter result as compact JSON on its own line.
// Runtime errors go to stderr; the command fails if nothing was produced.
func writeJQ(cmd *cobra.Command, result *query.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, v := range result.Values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	if len(result.Errors) > 0 && len(result.Values) == 0 {
		return fmt.Errorf("jq: %d error(s)", len(result.Errors))
	}
	return nil
}

// compileJQ compiles the --jq flag, returning nil when it is unset.
func compileJQ(expr string) (*query.Filter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return query.Compile(expr)
}

func formatCount(n uint64) string {
	return printer.Sprintf("%d", n)
}

func valueOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
