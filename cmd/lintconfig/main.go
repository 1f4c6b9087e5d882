// lintconfig resolves a linting toolchain's hierarchical configuration for
// one source file and prints the extracted result as JSON, exercising the
// whole econfig stack end to end.
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tidylint/econfig/pkg/econfig"
	"github.com/tidylint/econfig/pkg/errtag"
	"github.com/tidylint/econfig/pkg/rlog"
	"github.com/tidylint/econfig/pkg/toolconfig"
)

var (
	flagCwd     string
	flagVerbose bool
	flagNoCache bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lintconfig",
		Short: "Resolve hierarchical lint configuration for a source file",
		Long: `lintconfig walks a source file's directory hierarchy, resolves shareable
configs, plugins, and overrides, and prints the single extracted
configuration that a linter would use for that file.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagCwd, "cwd", "", "working directory to resolve relative specifiers from (default: process cwd)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log which configuration file each probed directory matched")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the extraction cache, overriding the settings file's cache_enabled")

	rootCmd.AddCommand(resolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errtag.StatusCode(err))
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the extracted configuration for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0])
		},
	}
}

func runResolve(target string) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return errtag.New(errtag.KindInvalidArgument, "resolve", target, err)
	}

	level := rlog.LevelWarn
	if flagVerbose {
		level = rlog.LevelDebug
	}
	logger := rlog.New(os.Stderr, level)

	settings, err := toolconfig.Load()
	if err != nil {
		logger.Warn("toolconfig.Load: %v", err)
		settings = toolconfig.Default()
	}
	if flagNoCache {
		settings.CacheEnabled = false
	}

	cwd := flagCwd
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	factory := econfig.NewConfigArrayFactory(econfig.FactoryOptions{
		Cwd:          cwd,
		Logger:       logger,
		DisableCache: !settings.CacheEnabled,
	})

	array, err := resolveHierarchy(factory, filepath.Dir(absTarget), settings)
	if err != nil {
		return err
	}
	if array == nil {
		return errtag.New(errtag.KindFileNotFound, "resolve", absTarget,
			fmt.Errorf("no configuration found above %s", filepath.Dir(absTarget)))
	}

	extracted, err := array.ExtractConfig(absTarget)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(extracted, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

// resolveHierarchy walks directory upward from start to the nearest
// root:true config or the filesystem root, probing each directory with
// LoadOnDirectory and composing parents as it goes (spec.md §2 "data flow").
func resolveHierarchy(factory *econfig.ConfigArrayFactory, start string, settings toolconfig.Settings) (*econfig.ConfigArray, error) {
	var chain []*econfig.ConfigArray

	dir := start
	for {
		array, err := factory.LoadOnDirectory(dir, econfig.LoadOptions{})
		if err != nil {
			return nil, err
		}
		if array != nil {
			chain = append(chain, array)
			if array.Root() {
				break
			}
		}

		if settings.SearchRoot != "" && dir == settings.SearchRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(chain) == 0 {
		return nil, nil
	}

	// chain[0] is the innermost (closest to the file) array; compose from
	// the outermost down so later composition only ever prepends a true
	// parent.
	result := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		combined := append(append([]*econfig.ConfigArrayElement{}, result.Elements()...), chain[i].Elements()...)
		result = econfig.NewConfigArray(combined, nil, nil)
		result.SetCacheEnabled(settings.CacheEnabled)
	}
	result.SetCacheEnabled(settings.CacheEnabled)
	return result, nil
}
