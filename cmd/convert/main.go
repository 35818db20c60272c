// Command convert converts a value between units from the command line.
//
//	convert -category length -from km -to m 1.5
//	convert -i
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/converter"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
	"unitconv.dev/prefsdb"
)

type options struct {
	category    string
	from        string
	to          string
	interactive bool
	dbPath      string
	rates       rates.Config
	logLevel    string
}

func parseOptions(args []string, stderr io.Writer) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.category, "category", catalog.DefaultCategory, "Category ("+strings.Join(catalog.IDs(), "|")+")")
	fs.StringVar(&opts.from, "from", "", "Source unit, defaults to the category's first unit")
	fs.StringVar(&opts.to, "to", "", "Target unit, defaults to the category's second unit")
	fs.BoolVar(&opts.interactive, "i", false, "Start an interactive session")
	fs.StringVar(&opts.dbPath, "db-path", appconf.GetEnv("UNITCONV_DB_PATH", ""), "Preference database, empty disables saved pairs")
	fs.StringVar(&opts.rates.URL, "rates-url", appconf.GetEnv("UNITCONV_RATES_URL", rates.DefaultURL), "Exchange rate service URL")
	fs.StringVar(&opts.rates.BaseCurrency, "base-currency", appconf.GetEnv("UNITCONV_BASE_CURRENCY", rates.DefaultBaseCurrency), "Currency the rate table is quoted against")
	fs.DurationVar(&opts.rates.Timeout, "fetch-timeout", appconf.GetEnvAsDuration("UNITCONV_FETCH_TIMEOUT", rates.DefaultTimeout), "Timeout for a rate fetch")
	fs.StringVar(&opts.logLevel, "log-level", appconf.GetEnv("UNITCONV_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}

	if !opts.interactive && fs.NArg() != 1 {
		return options{}, nil, errors.New("expected exactly one value to convert, or -i")
	}
	return opts, fs.Args(), nil
}

var (
	resultColor  = color.New(color.FgGreen, color.Bold)
	labelColor   = color.New(color.FgCyan)
	dimColor     = color.New(color.Faint)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// cli is one conversion session bound to an output stream.
type cli struct {
	controller *converter.Controller
	manager    *rates.Manager
	session    *converter.Session
	timeout    time.Duration
	out        io.Writer
	// last displayed result, the input of the next swap
	lastDisplay string
}

func (c *cli) activate(ctx context.Context, categoryID string) error {
	session, err := c.controller.Activate(ctx, categoryID)
	if err != nil {
		return err
	}
	c.session = session
	c.lastDisplay = ""
	return nil
}

// refreshRates fetches the rate table synchronously.
func (c *cli) refreshRates(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.manager.Refresh(ctx)
}

func (c *cli) convert(ctx context.Context, input string) {
	c.printResult(c.controller.Convert(ctx, c.session, input))
	c.printQuickGrid(input)
	c.printRateInfo()
}

func (c *cli) swap(ctx context.Context) {
	displayed := c.lastDisplay
	if displayed == "" {
		displayed = c.session.Input
	}
	c.printResult(c.controller.Swap(ctx, c.session, displayed))
	c.printRateInfo()
}

func (c *cli) printResult(result converter.Result) {
	c.lastDisplay = result.Display

	from, _ := c.session.Category.Unit(c.session.From)
	to, _ := c.session.Category.Unit(c.session.To)

	switch result.State {
	case converter.StateOK:
		fmt.Fprintf(c.out, "%s %s = ", c.session.Input, from.Symbol)
		resultColor.Fprint(c.out, result.Display)
		fmt.Fprintf(c.out, " %s\n", to.Symbol)
	case converter.StatePending:
		warningColor.Fprintln(c.out, result.Display)
	default:
		dimColor.Fprintln(c.out, "no result")
	}
}

func (c *cli) printQuickGrid(input string) {
	for _, item := range c.controller.QuickGrid(c.session, input) {
		labelColor.Fprintf(c.out, "  %-6s", item.Label)
		fmt.Fprintf(c.out, " %s\n", item.Display)
	}
}

func (c *cli) printRateInfo() {
	info := c.controller.RateInfo(c.session)
	if !info.Visible {
		return
	}
	if info.Updated != "" {
		dimColor.Fprintf(c.out, "%s (%s)\n", info.Text, info.Updated)
		return
	}
	dimColor.Fprintln(c.out, info.Text)
}

func (c *cli) printUnits() {
	fmt.Fprintf(c.out, "%s: ", c.session.Category.Name)
	labelColor.Fprintf(c.out, "%s -> %s\n", c.session.From, c.session.To)
	for _, unit := range c.session.Category.Units {
		fmt.Fprintf(c.out, "  %-5s %s\n", unit.ID, unit.Label())
	}
}

const replHelp = `commands:
  cat <id>    switch category (%s)
  from <unit> set the source unit
  to <unit>   set the target unit
  swap        swap units, converting the last result back
  units       list the units of the category
  rates       fetch exchange rates now
  <number>    convert
  quit        leave
`

// repl reads commands from in until EOF or quit.
func (c *cli) repl(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.printUnits()

	for {
		dimColor.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		command, arg := fields[0], ""
		if len(fields) > 1 {
			arg = fields[1]
		}

		switch command {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintf(c.out, replHelp, strings.Join(catalog.IDs(), ", "))
		case "cat":
			if err := c.activate(ctx, arg); err != nil {
				errorColor.Fprintln(c.out, err)
				continue
			}
			c.printUnits()
			c.printRateInfo()
		case "from", "to":
			from, to := c.session.From, c.session.To
			if command == "from" {
				from = arg
			} else {
				to = arg
			}
			if err := c.controller.SetUnits(c.session, from, to); err != nil {
				errorColor.Fprintln(c.out, err)
				continue
			}
			c.lastDisplay = ""
			labelColor.Fprintf(c.out, "%s -> %s\n", c.session.From, c.session.To)
		case "swap":
			c.swap(ctx)
		case "units":
			c.printUnits()
		case "rates":
			if err := c.refreshRates(ctx); err != nil {
				errorColor.Fprintln(c.out, err)
				continue
			}
			dimColor.Fprintln(c.out, c.manager.Status().Text)
		default:
			c.convert(ctx, scanner.Text())
		}
	}
}

// run executes the command and returns the process exit code. provider may
// be nil to use the HTTP rate service.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, provider rates.Provider) int {
	opts, rest, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := logging.NewTextLogger(stderr, logging.ParseLevel(opts.logLevel))

	var prefs converter.PreferenceStore
	if opts.dbPath != "" {
		client, err := prefsdb.NewClient(prefsdb.NewConfig(opts.dbPath, appconf.Development, false))
		if err != nil {
			logging.LogError(logger, "failed to open preference database", err)
			return 1
		}
		defer logging.SafeCloseWithLogging(client, logger, "preference_database")
		prefs = client
	}

	manager := rates.NewManager(opts.rates, provider, logger)
	defer manager.Shutdown()

	timeout := opts.rates.Timeout
	if timeout <= 0 {
		timeout = rates.DefaultTimeout
	}

	c := &cli{
		controller: converter.NewController(manager, prefs, logger),
		manager:    manager,
		timeout:    timeout,
		out:        stdout,
	}

	if opts.interactive {
		if err := c.activate(ctx, opts.category); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		if err := c.repl(ctx, stdin); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	cat, ok := catalog.Lookup(opts.category)
	if !ok {
		fmt.Fprintf(stderr, "unknown category %q\n", opts.category)
		return 2
	}
	if cat.Kind == catalog.RateBased {
		if err := c.refreshRates(ctx); err != nil {
			errorColor.Fprintln(stderr, err)
			return 1
		}
	}

	if err := c.activate(ctx, cat.ID); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.from != "" || opts.to != "" {
		from, to := c.session.From, c.session.To
		if opts.from != "" {
			from = opts.from
		}
		if opts.to != "" {
			to = opts.to
		}
		if err := c.controller.SetUnits(c.session, from, to); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	c.convert(ctx, rest[0])
	return 0
}

func main() {
	appconf.LoadDotEnv(slog.Default(), ".env")
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nil))
}
