package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcncl/nextdata/internal/config"
	"github.com/mcncl/nextdata/internal/driver"
	"github.com/mcncl/nextdata/internal/errors"
	"github.com/mcncl/nextdata/internal/extractor"
	"github.com/mcncl/nextdata/internal/locate"
)

// CLI defines the command-line interface
var CLI struct {
	Input     string   `help:"Saved HTML page to read (default: revenue_page.html)." short:"i" env:"NEXTDATA_FILE"`
	Encodings []string `help:"Encodings to try in order (default: utf-8,cp950,latin-1)." short:"e" sep:","`
	Locator   string   `help:"How to find the script block: regex or dom (default: regex)." short:"l"`
	Config    string   `help:"Path to config file. Defaults to .nextdata.yml in this or a parent directory." short:"c"`
	Strict    bool     `help:"Exit with status 1 when no encoding works." short:"s"`
	Debug     bool     `help:"Enable debug logging." short:"d"`
	Version   bool     `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger zerolog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	parser := kong.Must(&CLI,
		kong.Name("nextdata"),
		kong.Description("Print the __NEXT_DATA__ JSON embedded in a saved page"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("nextdata version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: nextdata --help\n")
		os.Exit(1)
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	_, err = run(&Context{Debug: cfg.Debug, Config: cfg, Logger: log.Logger}, os.Stdout)
	if err != nil && !stderrors.Is(err, errors.ErrExhausted) {
		log.Error().Err(err).Msg("run failed")
	}
	os.Exit(exitCode(err, cfg.StrictExit))
}

// loadConfig resolves the config file and applies CLI overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(configPath, config.Overrides{
		File:       CLI.Input,
		Encodings:  CLI.Encodings,
		Locator:    CLI.Locator,
		StrictExit: CLI.Strict,
		Debug:      CLI.Debug,
	})
}

// run executes the main program logic: try each encoding until the payload is printed
func run(ctx *Context, stdout io.Writer) (driver.Outcome, error) {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	locator, err := locate.ByName(cfg.Locator)
	if err != nil {
		return driver.Outcome{}, errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}

	ex := extractor.New(cfg.File, stdout)
	ex.Locator = locator
	ex.Logger = ctx.Logger

	d := driver.New(ex, stdout)
	d.Encodings = cfg.Encodings
	d.Logger = ctx.Logger

	return d.Run()
}

// exitCode keeps status 0 for a run where no encoding worked unless strict is set
func exitCode(err error, strict bool) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, errors.ErrExhausted):
		if strict {
			return 1
		}
		return 0
	default:
		return 1
	}
}
