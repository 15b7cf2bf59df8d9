// Iconv converts text files between character encodings.
//
// Usage:
//
//	iconv [flags] [file ...]
//
// Input is read from the named files in order, or from standard input when
// none are given, and the converted text is written to standard output.
//
// The flags are:
//
//	-f utf-8
//	    Encoding of the input.
//	-t utf-8
//	    Encoding of the output.
//	-bom
//	    Start the output with a byte order mark, if the encoding has one.
//	    utf-16 and utf-32 write one unless -bom=false is given.
//	-keep-bom
//	    Do not drop a byte order mark found at the start of the input.
//	-l
//	    List the known encoding names and exit.
//	-v
//	    Log codec resolution to standard error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/arloliu/iconv"
	"github.com/arloliu/iconv/codec"
)

type config struct {
	from    string
	to      string
	addBOM  bool
	bomSet  bool
	keepBOM bool
	list    bool
	verbose bool
	files   []string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "iconv: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("iconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.from, "f", "utf-8", "encoding of the input")
	fs.StringVar(&cfg.to, "t", "utf-8", "encoding of the output")
	fs.BoolVar(&cfg.addBOM, "bom", false, "write a byte order mark")
	fs.BoolVar(&cfg.keepBOM, "keep-bom", false, "keep a leading byte order mark of the input")
	fs.BoolVar(&cfg.list, "l", false, "list encoding names and exit")
	fs.BoolVar(&cfg.verbose, "v", false, "log codec resolution")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	// Without -bom the encoding decides; utf-16 and utf-32 write one.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "bom" {
			cfg.bomSet = true
		}
	})

	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if cfg.verbose {
		logger := newLogger(stderr)
		iconv.SetLogger(logger)
		defer func() {
			_ = logger.Sync()
			iconv.SetLogger(nil)
		}()
	}

	if cfg.list {
		return listEncodings(stdout)
	}

	for _, name := range []string{cfg.from, cfg.to} {
		if !iconv.EncodingExists(name) {
			return fmt.Errorf("unsupported encoding %q", name)
		}
	}

	if isTerminal(stdout) && !isUTF8(cfg.to) {
		fmt.Fprintf(stderr, "iconv: warning: writing %s to a terminal\n", cfg.to)
	}

	var opts []iconv.Option
	if cfg.bomSet {
		opts = append(opts, codec.WithAddBOM(cfg.addBOM))
	}
	w, err := iconv.NewEncodeWriter(stdout, cfg.to, opts...)
	if err != nil {
		return err
	}

	if len(cfg.files) == 0 {
		if err := convert(w, stdin, cfg); err != nil {
			return err
		}

		return w.Close()
	}

	for _, file := range cfg.files {
		if err := convertFile(w, file, cfg); err != nil {
			return err
		}
	}

	return w.Close()
}

func convertFile(w io.Writer, file string, cfg *config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := convert(w, f, cfg); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	return nil
}

// convert decodes one input with a fresh decoder, so each file gets its own
// BOM handling.
func convert(w io.Writer, r io.Reader, cfg *config) error {
	dr, err := iconv.NewDecodeReader(r, cfg.from, codec.WithStripBOM(!cfg.keepBOM))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, dr)

	return err
}

func listEncodings(w io.Writer) error {
	reg, err := iconv.Default()
	if err != nil {
		return err
	}

	var names []string
	for _, name := range reg.Names() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	_, err = fmt.Fprintln(w, strings.Join(names, "\n"))

	return err
}

func newLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
}

func isUTF8(name string) bool {
	c, err := iconv.GetCodec(name)
	return err == nil && c.Name() == "utf8"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
