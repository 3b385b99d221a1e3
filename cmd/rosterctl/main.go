// Command rosterctl runs the lucky draw offline against a roster file.
//
//	rosterctl -roster participants.txt -min-stamps 6 -winners 3 -csv eligible.csv
//
// The roster holds one attendee token per line. With no -roster flag the
// roster is read from stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"stampcard/internal/announce"
	"stampcard/internal/roster"
)

type options struct {
	rosterPath string
	minStamps  int
	winners    int
	csvPath    string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, nil); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rosterctl", flag.ContinueOnError)
	fs.StringVar(&opts.rosterPath, "roster", "", "roster file, one token per line (default stdin)")
	fs.IntVar(&opts.minStamps, "min-stamps", 6, "stamps needed to be eligible")
	fs.IntVar(&opts.winners, "winners", 0, "number of winners to draw (0 skips the draw)")
	fs.StringVar(&opts.csvPath, "csv", "", "write eligible participants to this CSV file ('-' for stdout)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.minStamps < 0 {
		return opts, errors.New("min-stamps cannot be negative")
	}
	return opts, nil
}

// run is main without process globals. drawer may be nil.
func run(args []string, stdin io.Reader, stdout io.Writer, drawer *roster.Drawer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	text, err := readRoster(opts.rosterPath, stdin)
	if err != nil {
		return err
	}

	split := roster.SplitByThreshold(roster.Parse(text), opts.minStamps)
	printSplit(stdout, split, opts.minStamps)

	if opts.winners != 0 {
		if drawer == nil {
			if drawer, err = roster.NewDrawer(); err != nil {
				return err
			}
		}
		winners, err := drawer.Draw(split.Eligible, opts.winners)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "\n🎉 Winners:")
		for i, name := range winners {
			fmt.Fprintf(stdout, "  %d. %s\n", i+1, name)
		}
		fmt.Fprintf(stdout, "\n%s\n", announce.FallbackText(winners))
	}

	if opts.csvPath != "" {
		if len(split.Eligible) == 0 {
			return errors.New("no eligible participant data to export")
		}
		if err := writeCSV(opts.csvPath, stdout, split.Eligible); err != nil {
			return err
		}
	}

	return nil
}

func readRoster(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read roster: %w", err)
	}
	return string(data), nil
}

func printSplit(w io.Writer, split roster.Split, minStamps int) {
	fmt.Fprintf(w, "✅ Eligible participants (%d):\n", len(split.Eligible))
	for _, rec := range split.Eligible {
		fmt.Fprintf(w, "  %s (%s, %d stamps)\n", rec.Name, rec.Team, rec.Stamps)
	}
	if len(split.Ineligible) > 0 {
		fmt.Fprintf(w, "⚠️  Not eligible (less than %d stamps):\n", minStamps)
		for _, rec := range split.Ineligible {
			fmt.Fprintf(w, "  %s (%d stamps)\n", rec.Name, rec.Stamps)
		}
	}
}

func writeCSV(path string, stdout io.Writer, eligible []roster.Record) error {
	if path == "-" {
		fmt.Fprintln(stdout)
		if err := roster.WriteCSV(stdout, eligible); err != nil {
			return err
		}
		_, err := fmt.Fprintln(stdout)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := roster.WriteCSV(f, eligible); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n📄 Wrote %d rows to %s\n", len(eligible), strings.TrimSpace(path))
	return nil
}
