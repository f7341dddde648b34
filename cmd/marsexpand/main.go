// Package main provides marsexpand, a command-line tool for parsing,
// expanding, and flattening MARS requests against a keyword language.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/driver"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/mars/types"
)

var languagePaths []string

func main() {
	root := &cobra.Command{
		Use:   "marsexpand",
		Short: "Parse, expand, and flatten MARS requests",
	}
	root.PersistentFlags().StringSliceVarP(&languagePaths, "language", "l", nil,
		"path to a verb's language YAML file (repeatable)")

	root.AddCommand(expandCmd(), flattenCmd(), replCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDriver() (*driver.ExpansionDriver, error) {
	d := driver.New()
	for _, path := range languagePaths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening language file %s: %w", path, err)
		}
		lang, err := language.LoadLanguage(f, map[string]map[string]types.ParamTable{})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading language file %s: %w", path, err)
		}
		d.Register(lang)
	}
	return d, nil
}

func parseArgsAsRequests(args []string) ([]*mars.Request, error) {
	text := strings.Join(args, "\n")
	return mars.ParseRequests(strings.NewReader(text), true)
}

func expandCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "expand <request>...",
		Short: "Parse and expand MARS requests, printing the expanded form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := parseArgsAsRequests(args)
			if err != nil {
				return err
			}
			d, err := loadDriver()
			if err != nil {
				return err
			}
			expanded, err := d.Expand(context.Background(), reqs, strict)
			if err != nil {
				return err
			}
			for _, r := range expanded {
				fmt.Println(r.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unknown keywords instead of passing them through")
	return cmd
}

func flattenCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "flatten <request>...",
		Short: "Parse, expand, and flatten MARS requests into single-valued requests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := parseArgsAsRequests(args)
			if err != nil {
				return err
			}
			d, err := loadDriver()
			if err != nil {
				return err
			}
			for _, r := range reqs {
				err := d.Flatten(context.Background(), r, strict, func(flat *mars.Request) error {
					fmt.Println(flat.String())
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unknown keywords instead of passing them through")
	return cmd
}

// replCmd runs an interactive read-expand-print loop, one request per
// line. Its flags are built on a standalone pflag.FlagSet so the prompt's
// verbosity option (-v) composes independently of the parent command's
// persistent flags, then merged in with AddFlagSet.
func replCmd() *cobra.Command {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "print each request's raw verb and parameters before expansion")

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively expand one MARS request per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDriver()
			if err != nil {
				return err
			}
			return runREPL(os.Stdin, os.Stdout, d, *verbose)
		},
	}
	cmd.Flags().AddFlagSet(fs)
	return cmd
}

// runREPL reads one MARS request per line from in until EOF, printing its
// expanded form to out. The "mars> " prompt is only written when in is an
// interactive terminal, so piped input produces clean, parseable output.
func runREPL(in *os.File, out *os.File, d *driver.ExpansionDriver, verbose bool) error {
	interactive := term.IsTerminal(int(in.Fd()))
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, "mars> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		reqs, err := mars.ParseRequests(strings.NewReader(line), true)
		if err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)
			continue
		}
		for _, r := range reqs {
			if verbose {
				fmt.Fprintf(out, "raw: %s\n", r.String())
			}
			expanded, err := d.Expand(context.Background(), []*mars.Request{r}, false)
			if err != nil {
				fmt.Fprintf(out, "expand error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, expanded[0].String())
		}
	}
	return scanner.Err()
}
