package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/theming"
)

// errRejected marks a registration that failed validation; it exits with 1.
var errRejected = errors.New("registration rejected")

const usage = `usage: regform-cli <command> [flags]

commands:
  run     fill in the registration form interactively
  schema  print the OpenAPI document for the registration payload
  check   validate a JSON or YAML payload file

Run "regform-cli <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd := os.Args[1]; cmd {
	case "run":
		err = runCommand(ctx, os.Args[2:])
	case "schema":
		err = schemaCommand(ctx, os.Args[2:])
	case "check":
		err = checkCommand(ctx, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errRejected):
		os.Exit(1)
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	default:
		log.Fatalf("regform-cli %s: %v", os.Args[1], err)
	}
}

// commonFlags are shared by every command. Empty values keep the
// environment configuration.
type commonFlags struct {
	envFile   string
	catalog   string
	logLevel  string
	logFormat string
}

func (c *commonFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.envFile, "env", "", ".env file to load (default: ./.env when present)")
	fs.StringVar(&c.catalog, "catalog", "", "catalog file (JSON or YAML); overrides REGFORM_CATALOG")
	fs.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error; overrides REGFORM_LOG_LEVEL")
	fs.StringVar(&c.logFormat, "log-format", "", "text or json; overrides REGFORM_LOG_FORMAT")
}

type environment struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog model.Catalog
}

func (c *commonFlags) load() (environment, error) {
	var envFiles []string
	if c.envFile != "" {
		envFiles = append(envFiles, c.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return environment{}, err
	}
	override(&cfg.Catalog, c.catalog)
	override(&cfg.LogLevel, c.logLevel)
	override(&cfg.LogFormat, c.logFormat)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return environment{}, err
	}

	cat := catalog.Default()
	if cfg.Catalog != "" {
		cat, err = catalog.LoadFile(cfg.Catalog)
		if err != nil {
			return environment{}, err
		}
	}
	logger.Debug("catalog loaded",
		slog.String("source", sourceName(cfg.Catalog)),
		slog.Int("programs", len(cat.Programs)),
		slog.Int("genders", len(cat.Genders)),
	)
	return environment{cfg: cfg, logger: logger, catalog: cat}, nil
}

func runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var (
		common   commonFlags
		output   string
		themeArg string
		variant  string
		attempts int
	)
	common.bind(fs)
	fs.StringVar(&output, "output", "", "write the HTML summary here on success; overrides REGFORM_SUMMARY_OUTPUT")
	fs.StringVar(&themeArg, "theme", "", "theme name; overrides REGFORM_THEME")
	fs.StringVar(&variant, "variant", "", "theme variant; overrides REGFORM_THEME_VARIANT")
	fs.IntVar(&attempts, "attempts", 0, "submit attempts before giving up; overrides REGFORM_MAX_ATTEMPTS")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := common.load()
	if err != nil {
		return err
	}
	cfg := env.cfg
	override(&cfg.SummaryOutput, output)
	override(&cfg.Theme, themeArg)
	override(&cfg.ThemeVariant, variant)
	if attempts > 0 {
		cfg.MaxAttempts = attempts
	}

	themeCfg, err := resolveTheme(cfg)
	if err != nil {
		return err
	}

	runner, err := tui.New(
		tui.WithMaxAttempts(cfg.MaxAttempts),
		tui.WithLogger(env.logger),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ ", SuccessPrefix: "✓ "}),
	)
	if err != nil {
		return err
	}

	s := regform.NewSession(env.catalog, regform.WithLogger(env.logger))
	outcome, err := runner.Run(ctx, s)
	if errors.Is(err, tui.ErrAttemptsExhausted) {
		return fmt.Errorf("%w: %d errors after %d attempts", errRejected, len(outcome.Errors), cfg.MaxAttempts)
	}
	if err != nil {
		return err
	}

	if cfg.SummaryOutput == "" {
		return nil
	}
	registry, err := regform.NewRegistry(regform.WithTheme(themeCfg))
	if err != nil {
		return err
	}
	html, err := registry.MustGet("vanilla").Render(ctx, s.View())
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.SummaryOutput, html, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	fmt.Printf("Summary written to %s\n", cfg.SummaryOutput)
	return nil
}

func schemaCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	var (
		common commonFlags
		output string
	)
	common.bind(fs)
	fs.StringVar(&output, "output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := common.load()
	if err != nil {
		return err
	}
	doc, err := openapi.MarshalDocument(ctx, env.catalog)
	if err != nil {
		return err
	}
	return writeOutput(output, doc)
}

func checkCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		common commonFlags
		format string
		output string
	)
	common.bind(fs)
	fs.StringVar(&format, "format", "pretty", "pretty, json or html")
	fs.StringVar(&output, "output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one payload file, got %d", fs.NArg())
	}

	env, err := common.load()
	if err != nil {
		return err
	}
	sub, err := submission.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	for _, key := range sub.Unknown {
		env.logger.Warn("ignoring unknown payload key", slog.String("key", key))
	}

	result, err := regform.Check(ctx, env.catalog, sub, regform.WithLogger(env.logger))
	if err != nil {
		return err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	var out []byte
	switch format {
	case "json":
		out, err = json.MarshalIndent(result, "", "  ")
		out = append(out, '\n')
	case "html", "pretty":
		themeCfg, themeErr := resolveTheme(env.cfg)
		if themeErr != nil {
			return themeErr
		}
		registry, regErr := regform.NewRegistry(regform.WithTheme(themeCfg))
		if regErr != nil {
			return regErr
		}
		name := "tui"
		if format == "html" {
			name = "vanilla"
		}
		out, err = registry.MustGet(name).Render(ctx, result.View)
		if err == nil && name == "tui" {
			out = append(out, violationLines(result.Violations)...)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	if err := writeOutput(output, out); err != nil {
		return err
	}

	if !result.Outcome.Success {
		return errRejected
	}
	return nil
}

func resolveTheme(cfg config.Config) (*theme.RendererConfig, error) {
	selector := theming.NewSelector(theming.Builtin(), theming.DefaultTheme, theming.DefaultVariant)
	return theming.Resolve(selector, cfg.Theme, cfg.ThemeVariant)
}

func violationLines(violations []openapi.Violation) []byte {
	if len(violations) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("schema:\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "  %s (%s): %s\n", v.Path, v.Rule, v.Reason)
	}
	return []byte(b.String())
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
