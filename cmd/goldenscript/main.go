package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/peterbourgon/ff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gfanton/goldenscript"
)

const defaultLogLevelFlag = "info"

type config struct {
	logLevel string
	update   bool
}

func (cfg *config) registerFlags(fs *ff.FlagSet) {
	fs.StringVar(&cfg.logLevel, 0, "log-level", defaultLogLevelFlag, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.update, 'u', "update", "regenerate instead of compare (watch subcommand and bare <path>)")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := newRootCommand()
	if err := root.ParseAndRun(ctx, os.Args[1:], ff.WithEnvVarPrefix("GOLDENSCRIPT")); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the "goldenscript" CLI: run/generate/watch
// subcommands sharing a reference Runner, suitable for exercising scripts
// standalone without writing a Go test. Embedders with a real Runner use
// the goldenscript package directly instead of this binary.
func newRootCommand() *ff.Command {
	var cfg config
	fs := ff.NewFlagSet("goldenscript")
	cfg.registerFlags(fs)

	root := &ff.Command{
		Name:  "goldenscript",
		Usage: "goldenscript [FLAGS] SUBCOMMAND <path>",
		Flags: fs,
	}

	runCmd := &ff.Command{
		Name:      "run",
		Usage:     "goldenscript run <path>",
		ShortHelp: "compare scripts against their recorded expected output",
		Exec: func(ctx context.Context, args []string) error {
			setupLogging(cfg.logLevel)
			return runPaths(args, false)
		},
	}
	genCmd := &ff.Command{
		Name:      "generate",
		Usage:     "goldenscript generate <path>",
		ShortHelp: "rewrite scripts with freshly observed output",
		Exec: func(ctx context.Context, args []string) error {
			setupLogging(cfg.logLevel)
			return runPaths(args, true)
		},
	}
	watchCmd := &ff.Command{
		Name:      "watch",
		Usage:     "goldenscript watch <dir>",
		ShortHelp: "re-run scripts under dir whenever one changes",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("watch requires exactly one directory argument")
			}
			logLevel, update := cfg.logLevel, cfg.update
			pc, err := goldenscript.LoadProjectConfig(args[0])
			if err != nil {
				return err
			}
			if logLevel == defaultLogLevelFlag {
				logLevel = pc.LogLevel
			}
			if !update {
				update = pc.Update
			}
			setupLogging(logLevel)
			return watchDir(ctx, args[0], update)
		},
	}

	root.Subcommands = []*ff.Command{runCmd, genCmd, watchCmd}
	root.Exec = func(ctx context.Context, args []string) error {
		if len(args) == 1 {
			if info, err := os.Stat(args[0]); err == nil {
				return runBareTarget(cfg, args[0], info)
			}
		}
		return suggestSubcommand(root, args)
	}
	return root
}

// runBareTarget handles "goldenscript <path>" with no subcommand: a
// directory target's goldenscript.toml, if any, supplies the default
// update mode and log level, the same convention-over-configuration
// fallback LoadProjectConfig already gives script discovery. An explicit
// --log-level or --update flag still wins over the project default.
func runBareTarget(cfg config, path string, info os.FileInfo) error {
	logLevel := cfg.logLevel
	update := cfg.update
	if info.IsDir() {
		pc, err := goldenscript.LoadProjectConfig(path)
		if err != nil {
			return err
		}
		if cfg.logLevel == defaultLogLevelFlag {
			logLevel = pc.LogLevel
		}
		if !cfg.update {
			update = pc.Update
		}
	}
	setupLogging(logLevel)
	return runPaths([]string{path}, update)
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// subcommandNames lists every registered subcommand name, for suggestion
// matching when the user mistypes one.
func subcommandNames(cmd *ff.Command) []string {
	names := make([]string, 0, len(cmd.Subcommands))
	for _, sub := range cmd.Subcommands {
		names = append(names, sub.Name)
	}
	return names
}

// suggestSubcommand reports a "did you mean" error for an unrecognized
// subcommand, or a generic usage error when args is empty.
func suggestSubcommand(root *ff.Command, args []string) error {
	names := subcommandNames(root)
	if len(args) == 0 {
		return fmt.Errorf("a subcommand is required: %s", strings.Join(names, ", "))
	}
	ranks := fuzzy.RankFindFold(args[0], names)
	if len(ranks) > 0 {
		return fmt.Errorf("unrecognized subcommand %q (did you mean %q?)", args[0], ranks[0].Target)
	}
	return fmt.Errorf("unrecognized subcommand %q; available: %s", args[0], strings.Join(names, ", "))
}

// resolveTargets expands each path argument into the list of script files
// it names: a single file as itself, or a directory's discovered scripts
// per its goldenscript.toml (or conventional defaults).
func resolveTargets(paths []string) ([]string, error) {
	var targets []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			targets = append(targets, path)
			continue
		}
		cfg, err := goldenscript.LoadProjectConfig(path)
		if err != nil {
			return nil, err
		}
		scripts, err := cfg.DiscoverScripts()
		if err != nil {
			return nil, err
		}
		targets = append(targets, scripts...)
	}
	return targets, nil
}

func runPaths(paths []string, generate bool) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one path is required")
	}
	targets, err := resolveTargets(paths)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		log.Warn().Strs("paths", paths).Msg("no scripts found")
		return nil
	}

	r := referenceRunner{}
	failed := 0
	for _, target := range targets {
		logEvt := log.Info().Str("script", target)
		if generate {
			if err := goldenscript.GenerateFile(target, r); err != nil {
				log.Error().Str("script", target).Err(err).Msg("generate failed")
				failed++
				continue
			}
			logEvt.Msg("generated")
			continue
		}
		if err := goldenscript.Run(target, r); err != nil {
			log.Error().Str("script", target).Err(err).Msg("run failed")
			failed++
			continue
		}
		logEvt.Msg("passed")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(targets))
	}
	return nil
}
