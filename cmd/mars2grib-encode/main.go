// Command mars2grib-encode drives the declarative GRIB2 encoder from the
// command line: it reads mars/geo/par/opt request dictionaries as JSON or
// YAML, optionally runs a rule-engine preprocessing pass, and prints the
// resulting output dictionary as JSON (spec §6, "programmatic API — none;
// returns a value or throws" — this binary is the thinnest possible shell
// around that API, not a protocol endpoint of its own).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wxmet/mars2grib/concepts"
	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/encoder"
	"github.com/wxmet/mars2grib/registry"
	"github.com/wxmet/mars2grib/rules"
)

var (
	marsPath   string
	geoPath    string
	parPath    string
	optPath    string
	rulesPath  string
	sampleName string
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mars2grib-encode",
		Short: "Encode a MARS request into a GRIB2 output dictionary",
		Long: `mars2grib-encode reads the four input dictionaries (mars, geo, par, opt) as
JSON or YAML files, runs the concept registry over them, and prints the
resulting output dictionary as JSON.`,
		RunE: runEncode,
	}

	cmd.Flags().StringVar(&marsPath, "mars", "", "path to the mars request dictionary (required)")
	cmd.Flags().StringVar(&geoPath, "geo", "", "path to the geo dictionary")
	cmd.Flags().StringVar(&parPath, "par", "", "path to the par (parameter-table) dictionary")
	cmd.Flags().StringVar(&optPath, "opt", "", "path to the opt (options) dictionary")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "path to a rule-engine YAML document to run before encoding")
	cmd.Flags().StringVar(&sampleName, "sample", "GRIB2", "named GRIB sample used to seed the output dictionary")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log RESOLVE/concept diagnostics to stderr")

	cmd.MarkFlagRequired("mars")

	return cmd
}

func runEncode(cmd *cobra.Command, args []string) error {
	mars, err := loadDict(marsPath)
	if err != nil {
		return fmt.Errorf("loading mars: %w", err)
	}
	geo, err := loadOptionalDict(geoPath)
	if err != nil {
		return fmt.Errorf("loading geo: %w", err)
	}
	par, err := loadOptionalDict(parPath)
	if err != nil {
		return fmt.Errorf("loading par: %w", err)
	}
	opt, err := loadOptionalDict(optPath)
	if err != nil {
		return fmt.Errorf("loading opt: %w", err)
	}

	reg, err := registry.NewRegistry(concepts.All()...)
	if err != nil {
		return fmt.Errorf("building concept registry: %w", err)
	}

	sampler := dict.NewInMemorySampler()
	sampler.RegisterSample(sampleName, map[string]dict.Value{})

	opts := []encoder.EncodeOption{encoder.WithSample(sampleName)}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		opts = append(opts, encoder.WithLogger(logger))
	}

	if rulesPath != "" {
		f, err := os.Open(rulesPath)
		if err != nil {
			return fmt.Errorf("opening rules file: %w", err)
		}
		defer f.Close()
		action, err := rules.Parse(f, rulesPath)
		if err != nil {
			return fmt.Errorf("parsing rules file: %w", err)
		}
		opts = append(opts, encoder.WithRulePreprocessing(action))
	}

	enc, err := encoder.New(reg, sampler, opts...)
	if err != nil {
		return fmt.Errorf("constructing encoder: %w", err)
	}

	out, err := enc.Convert(mars, geo, par, opt)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	return printOutput(cmd, out)
}

func loadDict(path string) (*dict.MapDict, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s as YAML: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s as JSON: %w", path, err)
		}
	}

	values := make(map[string]dict.Value, len(raw))
	for k, v := range raw {
		val, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%q]: %w", path, k, err)
		}
		values[k] = val
	}
	return dict.NewMapDict(values), nil
}

func loadOptionalDict(path string) (*dict.MapDict, error) {
	if path == "" {
		return dict.NewMapDict(nil), nil
	}
	return loadDict(path)
}

func toValue(v interface{}) (dict.Value, error) {
	switch t := v.(type) {
	case int:
		return dict.Int(int64(t)), nil
	case int64:
		return dict.Int(t), nil
	case float64:
		if t == float64(int64(t)) {
			return dict.Int(int64(t)), nil
		}
		return dict.Float(t), nil
	case string:
		return dict.String(t), nil
	case nil:
		return dict.Missing(), nil
	default:
		return dict.Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func printOutput(cmd *cobra.Command, out dict.Writable) error {
	handleDict, ok := out.(*dict.HandleDict)
	if !ok {
		return fmt.Errorf("unexpected output dictionary implementation %T", out)
	}
	inMemory, ok := handleDict.Handle().(*dict.InMemoryHandle)
	if !ok {
		return fmt.Errorf("unexpected output handle implementation %T", handleDict.Handle())
	}

	snapshot := inMemory.Snapshot()
	rendered := make(map[string]interface{}, len(snapshot))
	for k, v := range snapshot {
		rendered[k] = renderValue(v)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rendered)
}

func renderValue(v dict.Value) interface{} {
	switch v.Kind() {
	case dict.KindInt:
		i, _ := v.AsInt()
		return i
	case dict.KindFloat:
		f, _ := v.AsFloat()
		return f
	case dict.KindString:
		s, _ := v.AsString()
		return s
	case dict.KindIntVector:
		iv, _ := v.AsIntVector()
		return iv
	case dict.KindFloatVector:
		fv, _ := v.AsFloatVector()
		return fv
	default:
		return nil
	}
}
