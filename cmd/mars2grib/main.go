// Package main provides mars2grib, a command-line tool that encodes a MARS
// request plus a numeric payload into a wire-format GRIB2 message using an
// encoder recipe.
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmp/marskit/encode"
	_ "github.com/mmp/marskit/encode/checks"
	_ "github.com/mmp/marskit/encode/concepts"
	_ "github.com/mmp/marskit/encode/sections"
	"github.com/mmp/marskit/mars"
)

func main() {
	var (
		recipePath  string
		payloadPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "mars2grib <request>",
		Short: "Encode a MARS request and a binary float64 payload into a GRIB2 message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseOneRequest(args[0])
			if err != nil {
				return err
			}

			cfg := &encode.Config{Options: encode.NewMapDict()}
			if recipePath != "" {
				f, err := os.Open(recipePath)
				if err != nil {
					return fmt.Errorf("opening recipe: %w", err)
				}
				defer f.Close()
				cfg, err = encode.LoadConfig(f)
				if err != nil {
					return fmt.Errorf("loading recipe: %w", err)
				}
			}

			payload, err := readPayload(payloadPath)
			if err != nil {
				return err
			}

			msg, err := encode.Encode(req, payload, cfg)
			if err != nil {
				return fmt.Errorf("encoding: %w", err)
			}

			return writeOutput(outputPath, msg)
		},
	}

	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "", "path to a YAML encoder recipe")
	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "", "path to a raw big-endian float64 payload (omit for an empty field)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output path, or \"-\" for stdout")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseOneRequest(text string) (*mars.Request, error) {
	reqs, err := mars.ParseRequests(strings.NewReader(text), true)
	if err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}
	if len(reqs) != 1 {
		return nil, fmt.Errorf("expected exactly one request, got %d", len(reqs))
	}
	return reqs[0], nil
}

func readPayload(path string) ([]float64, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("payload file length %d is not a multiple of 8", len(data))
	}
	values := make([]float64, len(data)/8)
	for i := range values {
		bits := binary.BigEndian.Uint64(data[i*8 : i*8+8])
		values[i] = math.Float64frombits(bits)
	}
	return values, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
