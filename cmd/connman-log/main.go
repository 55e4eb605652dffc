// Command connman-log views and analyzes ConnMan capture files.
//
// Capture files are written by connmanctl and connman-monitor when run
// with the --capture flag.
//
// Usage:
//
//	connman-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View capture in human-readable format
//	export   Export capture to JSONL or CSV
//	filter   Filter capture and write to new file
//	stats    Show statistics about the capture
//
// Examples:
//
//	# View only signals
//	connman-log view --category signal monitor.clog
//
//	# View service property changes
//	connman-log view --interface net.connman.Service --member PropertyChanged monitor.clog
//
//	# Export to CSV
//	connman-log export --format csv -o monitor.csv monitor.clog
//
//	# Keep one session and save to a new file
//	connman-log filter --session 3f2a9c1e-... -o session.clog monitor.clog
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/connman-go/connman/cmd/connman-log/commands"
)

const usage = `connman-log - ConnMan Capture Analyzer

Usage:
  connman-log <command> [flags] <file.clog>

Commands:
  view     View capture in human-readable format
  export   Export capture to JSONL or CSV
  filter   Filter capture and write to new file
  stats    Show statistics about the capture

Use "connman-log <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "connman-log %s - %s\n\nUsage:\n  connman-log %s [flags] <file.clog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// capturePath returns the single positional argument.
func capturePath(fs *flag.FlagSet) (string, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("capture file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	fs := newFlagSet("view", "View capture in human-readable format")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (signal, call, reply, error)")
	iface := fs.String("interface", "", "Filter signals and calls by interface")
	member := fs.String("member", "", "Filter signals and calls by member")
	_ = fs.Parse(args)

	path, err := capturePath(fs)
	if err != nil {
		return err
	}

	filter := commands.ViewFilter{Interface: *iface, Member: *member}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			return err
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	return commands.RunView(path, filter, os.Stdout)
}

func runExport(args []string) error {
	fs := newFlagSet("export", "Export capture to JSONL or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.StringP("output", "o", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	path, err := capturePath(fs)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output)
}

func runFilter(args []string) error {
	fs := newFlagSet("filter", "Filter capture and write to new file")
	var opts commands.FilterOptions
	fs.StringVarP(&opts.Output, "output", "o", "", "Output file (required)")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (signal, call, reply, error)")
	fs.StringVar(&opts.Interface, "interface", "", "Filter signals and calls by interface")
	fs.StringVar(&opts.Member, "member", "", "Filter signals and calls by member")
	fs.StringVar(&opts.Path, "path", "", "Filter signals and calls by object path")
	_ = fs.Parse(args)

	path, err := capturePath(fs)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats", "Show statistics about the capture")
	_ = fs.Parse(args)

	path, err := capturePath(fs)
	if err != nil {
		return err
	}
	return commands.RunStats(path, os.Stdout)
}
