// Package cmd provides the command-line interface of virtmem.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/virtmem/eviction"
	"github.com/sarchlab/virtmem/simulation"
	"github.com/sarchlab/virtmem/workload"
)

// Environment variables that provide flag defaults. They can also be set in a
// .env file in the working directory.
const (
	envSeed   = "VIRTMEM_SEED"
	envDisk   = "VIRTMEM_DISK"
	envRecord = "VIRTMEM_RECORD"
)

type options struct {
	seed         int64
	diskPath     string
	inMemoryDisk bool
	pageSize     int
	record       bool
	recordFile   string
	verbose      bool
}

type runArgs struct {
	numPages  int
	numFrames int
	policy    eviction.Kind
	workload  string
}

// NewRootCommand creates the virtmem command. Flag defaults are read from the
// environment when the command is created.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use: "virtmem <npages> <nframes> <" +
			strings.Join(eviction.Names(), "|") + "> <" +
			strings.Join(workload.Names(), "|") + ">",
		Short: "virtmem simulates demand-paged virtual memory.",
		Long: `virtmem runs a workload program over a virtual memory of npages ` +
			`pages backed by nframes physical frames, and reports the number ` +
			`of page faults, disk reads, and disk writes.`,
		Args: cobra.MatchAll(cobra.ExactArgs(4), validateArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			a, err := parseArgs(args)
			if err != nil {
				return err
			}

			return run(cmd, a, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.Int64Var(&opts.seed, "seed", defaultSeed(),
		"seed of the random source used by the policy and the workload")
	flags.StringVar(&opts.diskPath, "disk",
		envOr(envDisk, simulation.DefaultDiskPath),
		"file that backs the virtual memory")
	flags.BoolVar(&opts.inMemoryDisk, "in-memory-disk", false,
		"keep the backing store in memory instead of a file")
	flags.IntVar(&opts.pageSize, "page-size", simulation.DefaultPageSize,
		"number of bytes in a page")
	flags.BoolVar(&opts.record, "record", os.Getenv(envRecord) != "",
		"record every fault and the run summary in a SQLite database")
	flags.StringVar(&opts.recordFile, "record-file", os.Getenv(envRecord),
		"name of the recording database, without the .sqlite3 extension")
	flags.BoolVar(&opts.verbose, "verbose", false, "print every page fault")

	return rootCmd
}

// Execute runs the command and exits the process with its status.
func Execute() {
	loadEnv()

	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}
}

func envOr(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	return v
}

func defaultSeed() int64 {
	v, ok := os.LookupEnv(envSeed)
	if !ok {
		return time.Now().UnixNano()
	}

	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("ignoring %s=%q: not an integer", envSeed, v)
		return time.Now().UnixNano()
	}

	return seed
}

func validateArgs(_ *cobra.Command, args []string) error {
	_, err := parseArgs(args)
	return err
}

func parseArgs(args []string) (runArgs, error) {
	numPages, err := parsePositive("npages", args[0])
	if err != nil {
		return runArgs{}, err
	}

	numFrames, err := parsePositive("nframes", args[1])
	if err != nil {
		return runArgs{}, err
	}

	policy, err := eviction.ParseKind(args[2])
	if err != nil {
		return runArgs{}, err
	}

	a := runArgs{
		numPages:  numPages,
		numFrames: numFrames,
		policy:    policy,
		workload:  args[3],
	}

	return a, nil
}

func parsePositive(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}

	return n, nil
}

func run(cmd *cobra.Command, a runArgs, opts *options) error {
	b := simulation.MakeBuilder().
		WithNumPages(a.numPages).
		WithNumFrames(a.numFrames).
		WithPageSize(opts.pageSize).
		WithPolicy(a.policy).
		WithSeed(opts.seed).
		WithDiskPath(opts.diskPath)

	if opts.inMemoryDisk {
		b = b.WithInMemoryDisk()
	}

	if opts.record {
		b = b.WithRecording(opts.recordFile)
	}

	if opts.verbose {
		b = b.WithFaultLogger(log.New(cmd.ErrOrStderr(), "", 0))
	}

	s, err := b.Build()
	if err != nil {
		return err
	}

	err = s.Run(a.workload)
	if errors.Is(err, workload.ErrUnknownProgram) {
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown program: %s\n", a.workload)
	} else if err != nil {
		return errors.Join(err, s.Terminate())
	}

	err = s.Report(cmd.OutOrStdout())

	return errors.Join(err, s.Terminate())
}
