package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Environment variables that override flag defaults.
const (
	EnvDepth  = "SWATCH_DEPTH"
	EnvSplit  = "SWATCH_SPLIT"
	EnvEmpty  = "SWATCH_EMPTY"
	EnvFormat = "SWATCH_FORMAT"
)

// splitPolicyValue adapts colour.SplitPolicy to pflag.Value.
type splitPolicyValue struct {
	p *colour.SplitPolicy
}

var _ pflag.Value = splitPolicyValue{}

func (v splitPolicyValue) String() string {
	if v.p == nil {
		return colour.SplitLossless.String()
	}
	return v.p.String()
}

func (v splitPolicyValue) Set(s string) error {
	p, err := colour.ParseSplitPolicy(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v splitPolicyValue) Type() string { return "policy" }

// emptyPolicyValue adapts colour.EmptyPolicy to pflag.Value.
type emptyPolicyValue struct {
	p *colour.EmptyPolicy
}

var _ pflag.Value = emptyPolicyValue{}

func (v emptyPolicyValue) String() string {
	if v.p == nil {
		return colour.EmptyInherit.String()
	}
	return v.p.String()
}

func (v emptyPolicyValue) Set(s string) error {
	p, err := colour.ParseEmptyPolicy(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v emptyPolicyValue) Type() string { return "policy" }

// envString returns the environment value for key, or def when unset.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// envInt returns the environment value for key, or def when unset.
// A value that is not a number is an error.
func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def, fmt.Errorf("%s=%q: not a number", key, s)
	}
	return v, nil
}

// envDefault applies an environment default to a pflag.Value. The current
// value is kept when the variable is unset or rejected.
func envDefault(key string, v pflag.Value) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	if err := v.Set(s); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// envError joins the environment errors of flags not set on the command line.
// An explicit flag overrides its environment variable, rejected or not.
func envError(cmd *cobra.Command, errs map[string]error) error {
	var joined []error
	for _, name := range slices.Sorted(maps.Keys(errs)) {
		if errs[name] != nil && !cmd.Flags().Changed(name) {
			joined = append(joined, errs[name])
		}
	}
	return errors.Join(joined...)
}
