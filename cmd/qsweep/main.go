// Command qsweep builds one random state vector, applies the Hadamard
// transform to the requested qubits and reports timings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsweep"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Error("qsweep failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	v, err := loadSettings(args)
	if err != nil {
		return err
	}

	targets, err := parseTargets(v.Get("targets"))
	if err != nil {
		return err
	}

	config := qsweep.NewConfig()
	config.Workers = v.GetInt("workers")
	config.MaxMemoryPercent = v.GetFloat64("max-memory")

	config.Strategy, err = parseStrategy(v.GetString("strategy"))
	if err != nil {
		return err
	}

	sv, err := qsweep.NewStateVector(v.GetInt("qubits"), config)
	if err != nil {
		return err
	}
	defer sv.Close()

	if err := sv.Randomize(context.Background(), v.GetInt64("seed")); err != nil {
		return err
	}

	var original *qsweep.StateVector
	if v.GetBool("verify") {
		if original, err = sv.Clone(); err != nil {
			return err
		}
		defer original.Close()
	}

	for _, k := range targets {
		start := time.Now()
		if err := sv.Transform(k); err != nil {
			return err
		}
		fmt.Fprintf(out, "transform(%d): %v\n", k, time.Since(start))
	}

	if original != nil {
		for i := len(targets) - 1; i >= 0; i-- {
			if err := sv.Transform(targets[i]); err != nil {
				return err
			}
		}

		cmp, err := qsweep.Compare(sv, original, v.GetFloat64("tolerance"))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "verify: equal=%v max gap=%g at %d\n", cmp.Equal, cmp.MaxGap, cmp.Index)

		if !cmp.Equal {
			return fmt.Errorf("%w: max gap %g at index %d", errVerify, cmp.MaxGap, cmp.Index)
		}
	}

	if v.GetBool("print") {
		if err := sv.Fprint(out); err != nil {
			return err
		}
	}

	for key, value := range sv.Metrics().ExportMetrics() {
		log.Debug("metric", "name", key, "value", value)
	}

	return nil
}

// loadSettings merges flags, QSWEEP_* environment variables and an optional
// config file, in that order of precedence.
func loadSettings(args []string) (*viper.Viper, error) {
	fs := pflag.NewFlagSet("qsweep", pflag.ContinueOnError)
	fs.Int("qubits", 10, "number of qubits in the register")
	fs.String("targets", "1", "comma separated qubit positions to transform, 1 is the most significant bit")
	fs.Int("workers", 0, "worker goroutines, 0 means GOMAXPROCS")
	fs.Int64("seed", 1, "seed for the random initial amplitudes")
	fs.String("strategy", "closed", "pair addressing: closed or bitvector")
	fs.Float64("max-memory", 0.8, "share of physical memory the amplitudes may use")
	fs.Bool("print", false, "print the final vector")
	fs.Bool("verify", false, "undo the transforms and compare with the initial vector")
	fs.Float64("tolerance", 1e-9, "absolute tolerance for --verify")
	fs.String("config", "", "optional config file")
	fs.Bool("debug", false, "log metrics at debug level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("QSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if v.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	return v, nil
}

var errVerify = errors.New("transforms did not undo to the initial vector")

// parseTargets accepts "2,3" from flags and env, or a list from a config file.
func parseTargets(value any) ([]int, error) {
	var fields []string

	switch t := value.(type) {
	case nil:
		return []int{1}, nil
	case string:
		fields = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			fields = append(fields, fmt.Sprint(item))
		}
	case []int:
		fields = make([]string, 0, len(t))
		for _, k := range t {
			fields = append(fields, strconv.Itoa(k))
		}
	default:
		return nil, fmt.Errorf("unsupported targets value %v", value)
	}

	targets := make([]int, 0, len(fields))
	for _, field := range fields {
		k, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", field, err)
		}
		targets = append(targets, k)
	}

	if len(targets) == 0 {
		return nil, errors.New("no targets given")
	}
	return targets, nil
}

func parseStrategy(name string) (qsweep.Strategy, error) {
	switch name {
	case "closed", "":
		return qsweep.ClosedForm, nil
	case "bitvector":
		return qsweep.BitVector, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}
