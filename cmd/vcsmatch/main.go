// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// vcsmatch is a debugging tool for the pattern matching engine: it evaluates
// pattern sets against paths or a real directory tree and explains how the
// engine composed and pruned them.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/EngFlow/vcsmatch/fileset"
	"github.com/EngFlow/vcsmatch/match"
)

func warnLog(msg string) { logrus.Warn(msg) }

type matcherFlags struct {
	root        string
	cwd         string
	include     []string
	exclude     []string
	defaultKind string
	filesets    bool
}

func (f *matcherFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.root, "root", ".", "repository root")
	cmd.Flags().StringVar(&f.cwd, "cwd", "", "working directory patterns are relative to (defaults to the root)")
	cmd.Flags().StringArrayVarP(&f.include, "include", "I", nil, "include pattern, may repeat")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "X", nil, "exclude pattern, may repeat")
	cmd.Flags().StringVar(&f.defaultKind, "default", string(match.KindGlob), "kind assumed for unprefixed patterns")
	cmd.Flags().BoolVar(&f.filesets, "filesets", false, "resolve set: patterns against the root directory")
}

func (f *matcherFlags) build(patterns []string) (match.Matcher, error) {
	root, err := filepath.Abs(f.root)
	if err != nil {
		return nil, err
	}
	cwd := f.cwd
	if cwd == "" {
		cwd = root
	} else if cwd, err = filepath.Abs(cwd); err != nil {
		return nil, err
	}
	opts := []match.Option{
		match.WithInclude(f.include...),
		match.WithExclude(f.exclude...),
		match.WithDefaultKind(match.Kind(f.defaultKind)),
		match.WithWarn(warnLog),
	}
	if f.filesets {
		opts = append(opts, match.WithFileset(fileset.New(os.DirFS(root))))
	}
	return match.New(root, cwd, patterns, opts...)
}

func evalCmd() *cobra.Command {
	var flags matcherFlags
	var patterns []string
	cmd := &cobra.Command{
		Use:   "eval -p PATTERN... PATH...",
		Short: "Evaluate patterns against repository-relative paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.build(patterns)
			if err != nil {
				return err
			}
			for _, p := range args {
				fmt.Printf("%s: matches=%v visit=%s\n", p, m.Matches(p), m.VisitDir(p))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "pattern to match, may repeat")
	return cmd
}

func walkCmd() *cobra.Command {
	var flags matcherFlags
	var patterns []string
	var showPruned bool
	cmd := &cobra.Command{
		Use:   "walk -p PATTERN...",
		Short: "Walk the tree under --root, pruning with the matcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.build(patterns)
			if err != nil {
				return err
			}
			root, err := filepath.Abs(flags.root)
			if err != nil {
				return err
			}
			return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					logrus.WithError(err).Warnf("skipping %s", p)
					return nil
				}
				rel, err := filepath.Rel(root, p)
				if err != nil {
					return err
				}
				rel = filepath.ToSlash(rel)
				if d.IsDir() {
					if v := m.VisitDir(rel); v == match.VisitNo {
						if showPruned {
							fmt.Printf("pruned %s/\n", rel)
						}
						return fs.SkipDir
					}
					return nil
				}
				if m.Matches(rel) {
					fmt.Println(rel)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "pattern to match, may repeat")
	cmd.Flags().BoolVar(&showPruned, "show-pruned", false, "also report pruned directories")
	return cmd
}

func regexCmd() *cobra.Command {
	var flags matcherFlags
	cmd := &cobra.Command{
		Use:   "regex PATTERN...",
		Short: "Show the regexps the engine composes for the given patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.build(args)
			if err != nil {
				return err
			}
			include, exclude, patterns := m.Regexps()
			fmt.Printf("include:  %s\nexclude:  %s\npatterns: %s\nalways:   %v\nfiles:    %v\n",
				include, exclude, patterns, m.Always(), m.Files())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse a pattern file and print the patterns it yields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := match.ReadPatternFile(match.OSReader(), args[0], warnLog)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Printf("%4d: %s\n", l.LineNo, l.Pattern)
			}
			return nil
		},
	}
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "vcsmatch",
		Short:         "Debug tool for the file pattern matching engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(evalCmd(), walkCmd(), regexCmd(), checkCmd())
	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
