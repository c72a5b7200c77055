package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/coregx/regen"
	"github.com/coregx/regen/attribute"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

type options struct {
	count       int
	seed        int64
	repeatLimit int
	ascii       bool
	dump        bool
	verbose     bool
	attrsPath   string
	nodes       int
	firstID     int
	set         map[string]bool
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("regen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.IntVar(&o.count, "n", 1, "number of strings to generate")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (0 selects the fixed default)")
	fs.IntVar(&o.repeatLimit, "repeat-limit", regen.DefaultConfig().RepeatLimit, "upper bound for unbounded repeats")
	fs.BoolVar(&o.ascii, "ascii", false, "compile with the ASCII flag")
	fs.BoolVar(&o.dump, "dump", false, "print the parsed tree instead of generating")
	fs.BoolVar(&o.verbose, "v", false, "log pattern details to stderr")
	fs.StringVar(&o.attrsPath, "attrs", "", "YAML attribute declaration file")
	fs.IntVar(&o.nodes, "nodes", 0, "number of nodes (overrides the file)")
	fs.IntVar(&o.firstID, "first-id", 0, "first node id (overrides the file)")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writeln(stderr, "Usage: regen [-n N] [-seed S] [-repeat-limit L] [-ascii] [-dump] [-v] PATTERN"),
			writeln(stderr, "       regen -attrs FILE.yaml [-nodes N] [-first-id ID] [-seed S] [-v]"),
			writeln(stderr),
			writeln(stderr, "Generates random strings matching a pattern, or node attribute CSV."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	logger := log.New(io.Discard, "regen: ", 0)
	if o.verbose {
		logger.SetOutput(stderr)
	}

	usage := func(msg string) int {
		if err := writeln(stderr, "error: "+msg); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	if o.attrsPath != "" {
		if fs.NArg() != 0 {
			return usage("-attrs takes no pattern argument")
		}
		if o.nodes < 0 {
			return usage("-nodes must not be negative")
		}
		return runAttributes(o, stdout, stderr, logger)
	}

	if fs.NArg() != 1 {
		return usage("exactly one pattern argument is required")
	}
	if o.count < 0 {
		return usage("-n must not be negative")
	}
	return runPattern(fs.Arg(0), o, stdout, stderr, logger)
}

func runPattern(pattern string, o options, stdout, stderr io.Writer, logger *log.Logger) int {
	var flags regen.Flags
	if o.ascii {
		flags |= regen.FlagASCII
	}
	p, err := regen.CompileFlags(pattern, flags)
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}
	logger.Printf("pattern %q: flags=%q groups=%d length=[%d, %d]",
		p.String(), p.Flags(), p.NumGroups(), p.MinLen(), p.MaxLen())

	out := bufio.NewWriter(stdout)
	if o.dump {
		if err := p.Dump(out); err != nil {
			_ = writef(stderr, "error: %v\n", err)
			return 1
		}
		if err := out.Flush(); err != nil {
			return 1
		}
		return 0
	}

	config := regen.DefaultConfig()
	config.Seed = o.seed
	config.RepeatLimit = o.repeatLimit
	g, err := p.NewGenerator(config)
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 2
	}
	for range o.count {
		s, err := g.Generate()
		if err != nil {
			_ = out.Flush()
			_ = writef(stderr, "error: %v\n", err)
			return 1
		}
		if err := writeln(out, s); err != nil {
			return 1
		}
	}
	if err := out.Flush(); err != nil {
		return 1
	}
	return 0
}

func runAttributes(o options, stdout, stderr io.Writer, logger *log.Logger) int {
	f, err := loadFile(o.attrsPath)
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}
	if o.set["seed"] {
		f.Seed = o.seed
	}
	if o.set["nodes"] {
		f.Nodes = o.nodes
	}
	if o.set["first-id"] {
		f.FirstID = o.firstID
	}
	if f.Nodes == 0 || len(f.Attributes) == 0 {
		logger.Printf("%s: nothing to generate", o.attrsPath)
		return 0
	}

	attrs, err := attribute.BuildAll(f)
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}
	lastID := f.FirstID + f.Nodes - 1
	logger.Printf("%s: %d attributes for nodes %d..%d (seed %d)",
		o.attrsPath, len(attrs), f.FirstID, lastID, f.Seed)

	out := bufio.NewWriter(stdout)
	if err := attribute.Emit(out, attrs, f.FirstID, lastID); err != nil {
		_ = out.Flush()
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}
	if err := out.Flush(); err != nil {
		return 1
	}
	return 0
}

func loadFile(path string) (*attribute.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	f, err := attribute.LoadSpecs(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
