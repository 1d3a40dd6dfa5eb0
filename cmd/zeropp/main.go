// Command zeropp is the preprocessor's CLI entry point: a thin cobra
// wrapper that resolves flags into a config.Config, wires up the
// driver with the reflectexpand close hooks and the metaclass parser, and maps the
// result to a process exit code. Grounded on cmd/sai/main.go's cobra
// root-command shape and commonlog initialization.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/zeropp/config"
	"github.com/dhamidi/zeropp/driver"
	"github.com/dhamidi/zeropp/metaclass"
	"github.com/dhamidi/zeropp/reflectexpand"
	"github.com/dhamidi/zeropp/source"
)

var log = commonlog.GetLogger("zeropp")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		includeDirs   []string
		outputRoot    string
		evaluatorPath string
		verbosity     int
	)

	cmd := &cobra.Command{
		Use:   "zeropp [flags] <source files...>",
		Short: "Expand static reflection and meta-class instantiations in C++-like sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Initialize(verbosity, "")
			cfg := &config.Config{
				IncludeDirs:   includeDirs,
				OutputRoot:    outputRoot,
				EvaluatorPath: evaluatorPath,
				InputFiles:    args,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringArrayVarP(&includeDirs, "include", "I", nil, "additional include search directory (repeatable)")
	cmd.Flags().StringVarP(&outputRoot, "out", "o", "out", "root directory for expanded output, mirroring input paths")
	cmd.Flags().StringVar(&evaluatorPath, "evaluator", "", "path to the meta-class evaluator subprocess (optional)")
	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "logging verbosity")

	return cmd
}

func run(cfg *config.Config) error {
	loader := source.NewLoader(cfg.IncludeDirs, cfg.OutputRoot)

	var evaluator *metaclass.Evaluator
	var metaClassNames []string
	if cfg.EvaluatorPath != "" {
		var err error
		evaluator, err = metaclass.StartEvaluator(cfg.EvaluatorPath)
		if err != nil {
			return errors.Wrap(err, "starting evaluator")
		}
		defer evaluator.Shutdown()
		metaClassNames, err = evaluator.ListMetaClasses()
		if err != nil {
			return errors.Wrap(err, "listing meta-classes")
		}
	}

	exitCode := 0
	for _, inputFile := range cfg.InputFiles {
		if err := processFile(loader, evaluator, metaClassNames, inputFile); err != nil {
			log.Errorf("%s: %s", inputFile, err)
			exitCode = 1
		}
	}
	if exitCode != 0 {
		return fmt.Errorf("zeropp: failed to process one or more input files")
	}
	return nil
}

func processFile(loader *source.Loader, evaluator *metaclass.Evaluator, metaClassNames []string, inputFile string) error {
	buf, err := loader.Load(inputFile)
	if err != nil {
		return errors.Wrap(err, "loading source")
	}

	reporter := func(e *driver.Error) {
		log.Errorf("%s: %s", inputFile, e.Error())
	}

	d := driver.New(source.NewCursor(buf), reporter)
	expander := reflectexpand.NewExpander(loader)
	d.ClassCloseHooks = append(d.ClassCloseHooks, expander.OnClassClose)
	d.EnumCloseHooks = append(d.EnumCloseHooks, expander.OnEnumClose)

	if evaluator != nil {
		for _, name := range metaClassNames {
			d.MetaClasses.Register(name)
		}
		mc := metaclass.NewDriver(evaluator, d.MetaClasses)
		d.FunctionDeclHooks = append(d.FunctionDeclHooks, mc.RecordMetaFunction)
		if err := d.Register(mc); err != nil {
			return err
		}
	}

	if err := d.Run(); err != nil {
		return err
	}

	outputPath, err := loader.OutputPath(inputFile)
	if err != nil {
		return errors.Wrap(err, "resolving output path")
	}
	return os.WriteFile(outputPath, []byte(d.Output()), 0o644)
}
