// Package main provides a command-line tool for validating GRIB2 files.
//
// This tool parses GRIB2 files message-by-message and reports which messages
// succeed or fail, making it useful for debugging GRIB2 parsing issues.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mmp/marskit/message"
)

var (
	verboseFlag = flag.Bool("v", false, "Verbose output (show details for successful messages)")
	quietFlag   = flag.Bool("q", false, "Quiet output (only show summary)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <grib2-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate GRIB2 files by parsing each message individually.\n\n")
		fmt.Fprintf(os.Stderr, "This tool is useful for debugging GRIB2 parsing issues. It parses each\n")
		fmt.Fprintf(os.Stderr, "message in the file separately and reports successes and failures with\n")
		fmt.Fprintf(os.Stderr, "detailed error information.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s file.grib2           # Validate file, show failures\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -v file.grib2        # Show details for all messages\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q file.grib2        # Only show summary\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	gribPath := flag.Arg(0)

	if err := validateGRIBFile(gribPath); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}

// validateGRIBFile analyzes a GRIB2 file message-by-message to identify parsing failures
func validateGRIBFile(gribPath string) error {
	f, err := os.Open(gribPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
		}
	}()

	if !*quietFlag {
		fmt.Println("=== GRIB2 File Validation ===")
		fmt.Printf("File: %s\n", gribPath)
		fmt.Println()
	}

	successCount := 0
	failCount := 0
	index := 0

	splitter := message.NewSplitter(f)
	for {
		raw, err := splitter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: message %d: split failed: %v\n", index, err)
			failCount++
			break
		}

		msg, err := message.ParseGRIB2Message(raw.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Message %d FAILED:\n", index)
			fmt.Fprintf(os.Stderr, "  Offset: %d\n", raw.Start)
			fmt.Fprintf(os.Stderr, "  Length: %d bytes\n", raw.Length)
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
			fmt.Fprintln(os.Stderr)
			failCount++
			index++
			continue
		}

		if *verboseFlag {
			fmt.Printf("Message %d SUCCESS:\n", index)
			if msg.Section4 != nil && msg.Section4.Product != nil {
				fmt.Printf("  Discipline/Category/Number: %d/%d/%d\n",
					msg.Section0.Discipline,
					msg.Section4.Product.GetParameterCategory(),
					msg.Section4.Product.GetParameterNumber())
			}
			if msg.Section3 != nil {
				fmt.Printf("  Points: %d\n", msg.Section3.NumDataPoints)
			}
			fmt.Println()
		}
		successCount++
		index++
	}

	if !*quietFlag {
		fmt.Println("=== Summary ===")
	}
	fmt.Printf("Success: %d messages\n", successCount)
	fmt.Printf("Failed: %d messages\n", failCount)

	if failCount > 0 {
		return fmt.Errorf("%d messages failed to parse", failCount)
	}

	if !*quietFlag {
		fmt.Println("\nâœ“ All messages validated successfully")
	}

	return nil
}
