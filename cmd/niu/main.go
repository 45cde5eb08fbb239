package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/djherbis/atime"
	"github.com/fatih/color"
	"github.com/matryer/try"
	"github.com/tdewolff/argp"

	"github.com/nqminh/niu"
)

// Version is the current niu version.
var Version = "built from source"

var (
	output             string
	hoistGlobals       = true
	hoistLiterals      = true
	constsToLets       bool
	watch              bool
	stat               bool
	quiet              bool
	preserveTimestamps bool
	version            bool
)

var errorLabel = color.New(color.FgRed)

func main() {
	// os.Exit skips pending defers, so the work lives in run()
	os.Exit(run())
}

func run() int {
	var inputs []string

	f := argp.New("niu")
	f.AddRest(&inputs, "inputs", "Input files, leave blank to use stdin")
	f.AddOpt(&output, "o", "output", "Output file or directory, leave blank to use stdout")
	f.AddOpt(&hoistGlobals, "g", "hoist-globals", "Hoist repeatedly dot-accessed globals into short bindings")
	f.AddOpt(&hoistLiterals, "l", "hoist-literals", "Hoist repeated literals into short bindings")
	f.AddOpt(&constsToLets, "c", "consts-to-lets", "Rewrite const declarations to let")
	f.AddOpt(&watch, "w", "watch", "Watch input files and re-minify upon changes")
	f.AddOpt(&stat, "s", "stat", "Print before/after byte counts per file")
	f.AddOpt(&quiet, "q", "quiet", "Quiet mode to suppress all output")
	f.AddOpt(&preserveTimestamps, "p", "preserve-timestamps", "Give output files the input's access and modification times")
	f.AddOpt(&version, "", "version", "Version")
	f.Parse()

	// fatih/color consults NO_COLOR itself; also drop color when stderr
	// is not a terminal (piped CI logs)
	if !isTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}

	if version {
		if !quiet {
			fmt.Printf("niu %s\n", Version)
		}
		return 0
	}

	if len(inputs) == 0 {
		if watch {
			printError(errors.New("--watch requires input files"))
			return 1
		}
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			printError(err)
			return 1
		}
		result, err := minify("stdin", string(source))
		if err != nil {
			printError(err)
			return 1
		}
		os.Stdout.WriteString(result.Code)
		return 0
	}

	if len(inputs) > 1 && output != "" && !isDir(output) {
		printError(errors.New("multiple inputs need a directory output"))
		return 1
	}

	ok := true
	for _, input := range inputs {
		if err := minifyFile(input); err != nil {
			printError(err)
			ok = false
		}
	}

	if watch {
		w, err := newWatcher(inputs)
		if err != nil {
			printError(err)
			return 1
		}
		defer w.Close()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		go func() {
			<-interrupt
			w.Close()
		}()

		for file := range w.Run() {
			if err := minifyFile(file); err != nil {
				printError(err)
			}
		}
		return 0
	}

	if !ok {
		return 1
	}
	return 0
}

func minify(filename, source string) (niu.Result, error) {
	return niu.Minify(source, niu.Options{
		HoistGlobals:           hoistGlobals,
		HoistDuplicateLiterals: hoistLiterals,
		ConstsToLets:           constsToLets,
		Filename:               filename,
	})
}

func minifyFile(input string) error {
	source, info, err := readInputFile(input)
	if err != nil {
		return err
	}

	result, err := minify(input, source)
	if err != nil {
		return err
	}

	dst := outputPath(input)
	if dst == "" {
		os.Stdout.WriteString(result.Code)
		return nil
	}
	if err := os.WriteFile(dst, []byte(result.Code), info.Mode().Perm()); err != nil {
		return err
	}
	if preserveTimestamps {
		if err := os.Chtimes(dst, atime.Get(info), info.ModTime()); err != nil {
			return err
		}
	}
	if stat && !quiet {
		before := len(source)
		after := len(result.Code)
		ratio := 0.0
		if before > 0 {
			ratio = 100 * float64(after) / float64(before)
		}
		fmt.Fprintf(os.Stderr, "%s: %d => %d bytes (%.1f%%)\n", input, before, after, ratio)
	}
	return nil
}

// readInputFile retries transient open failures the same way it would in
// a watch loop racing an editor's save.
func readInputFile(input string) (string, os.FileInfo, error) {
	var file *os.File
	err := try.Do(func(attempt int) (bool, error) {
		var ferr error
		file, ferr = os.Open(input)
		return attempt < 5, ferr
	})
	if err != nil {
		return "", nil, fmt.Errorf("open input file %q: %w", input, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", nil, err
	}
	source, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return string(source), info, nil
}

func outputPath(input string) string {
	if output == "" {
		return ""
	}
	if isDir(output) {
		return filepath.Join(output, filepath.Base(input))
	}
	return output
}

func isDir(path string) bool {
	if len(path) > 0 && path[len(path)-1] == os.PathSeparator {
		return true
	}
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsDir()
}

func printError(err error) {
	if quiet {
		return
	}
	errorLabel.Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)
}
