package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
	"github.com/sirupsen/logrus"
)

const binName = "lotus"

const (
	defaultWorkers    = 8
	defaultIterations = 1000
	defaultLogLevel   = "warn"
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command>
       %[1]s -h|--help
       %[1]s -v|--version

Inspection and exercise tool for the %[1]s atomic cells.

The <command> can be one of:
       info                      Print the compiled atomics backend,
                                 the platform and its atomic CPU
                                 features, and the universe built-ins.
       scenario                  Run the reference sequence of atomic
                                 operations on a single cell and print
                                 each call with its result.
       stress                    Run concurrent fetch-update increments
                                 on a shared cell and verify that no
                                 update was lost.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --config FILE             Read default option values from the
                                 YAML FILE. Explicit flags and
                                 environment variables take precedence.
       --log-level LEVEL         Set the logging level on stderr
                                 (default: %[2]s).

Valid flag options for the <stress> command are:
       --workers N               Number of concurrent workers
                                 (default: %[3]d).
       --iterations N            Number of increments performed by
                                 each worker (default: %[4]d).
       --metrics                 Print the retry metrics in the
                                 Prometheus text format.

Flag options can also be set with environment variables prefixed with
%[5]s (e.g. %[5]sWORKERS).

More information on the %[1]s repository:
       https://github.com/mna/lotus
`, binName, defaultLogLevel, defaultWorkers, defaultIterations, envPrefix)

	envPrefix = strings.ToUpper(binName) + "_"
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Config   string `flag:"config" env:"CONFIG"`
	LogLevel string `flag:"log-level" env:"LOG_LEVEL"`

	Workers    int  `flag:"workers" env:"WORKERS"`
	Iterations int  `flag:"iterations" env:"ITERATIONS"`
	Metrics    bool `flag:"metrics" env:"METRICS"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
	level logrus.Level
	log   *logrus.Logger
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if len(c.args[1:]) > 0 {
		return fmt.Errorf("%s: unexpected arguments: %s", cmdName, strings.Join(c.args[1:], " "))
	}

	if cmdName != "stress" {
		for _, nm := range []string{"workers", "iterations", "metrics"} {
			if c.flags[nm] {
				return fmt.Errorf("%s: invalid flag '%s'", cmdName, nm)
			}
		}
	}

	if c.Config != "" {
		cfg, err := loadConfig(c.Config)
		if err != nil {
			return err
		}
		cfg.apply(c)
	}
	return c.applyDefaults(cmdName)
}

// applyDefaults sets the options still unset after flags, environment and
// config file were applied, and validates the resulting values.
func (c *Cmd) applyDefaults(cmdName string) error {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	c.level = lvl

	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.Iterations == 0 {
		c.Iterations = defaultIterations
	}
	if c.Workers < 0 {
		return fmt.Errorf("%s: invalid number of workers: %d", cmdName, c.Workers)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%s: invalid number of iterations: %d", cmdName, c.Iterations)
	}
	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func newLogger(w io.Writer, lvl logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: envPrefix,
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	c.log = newLogger(stdio.Stderr, c.level)

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a context, a mainer.Stdio and a slice
// of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
