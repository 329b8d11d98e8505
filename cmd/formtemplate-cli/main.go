package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formtemplate/internal/logging"
	internalLoader "github.com/goliatone/go-formtemplate/internal/template/loader"
	"github.com/goliatone/go-formtemplate/pkg/config"
	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/openapi"
	"github.com/goliatone/go-formtemplate/pkg/orchestrator"
	"github.com/goliatone/go-formtemplate/pkg/prefill"
	"github.com/goliatone/go-formtemplate/pkg/render"
	"github.com/goliatone/go-formtemplate/pkg/renderers/tui"
	"github.com/goliatone/go-formtemplate/pkg/renderers/vanilla"
	pkgtemplate "github.com/goliatone/go-formtemplate/pkg/template"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

const usage = `usage: formtemplate-cli <command> [flags]

commands:
  structure  print the field tree and alias map as JSON
  render     render the field tree (HTML by default)
  schema     print an OpenAPI document describing the value table
  fill       substitute values into the template
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "formtemplate-cli: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	template    string
	dictionary  string
	configPath  string
	exclude     string
	values      string
	profile     string
	interactive bool
	output      string
	renderer    string
	title       string
	httpTimeout time.Duration
	logLevel    string
	logFormat   string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}
	command := args[0]
	switch command {
	case "structure", "render", "schema", "fill":
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	opts, err := parseFlags(command, args[1:], stderr)
	if err != nil {
		return err
	}

	logger := logging.New(opts.logLevel, opts.logFormat, stderr)
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	req, err := buildRequest(opts, cfg)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(opts, cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("command started", "command", command, "template", req.TemplateSource.Location())

	var out []byte
	switch command {
	case "structure":
		out, err = structure(ctx, orch, req)
	case "render":
		out, err = renderForm(ctx, orch, req, opts, cfg)
	case "schema":
		out, err = orch.Schema(ctx, req, openapi.WithTitle(opts.title))
	case "fill":
		out, err = fill(ctx, orch, req, opts)
	}
	if err != nil {
		return err
	}
	return writeOutput(opts.output, out, stdout, logger)
}

func parseFlags(command string, args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.template, "template", "", "template path or URL (overrides config)")
	fs.StringVar(&opts.dictionary, "dictionary", "", "dictionary path or URL (overrides config)")
	fs.StringVar(&opts.configPath, "config", "", "JSON or YAML configuration file")
	fs.StringVar(&opts.exclude, "exclude", "", "comma separated block codes to exclude; \"-\" disables exclusion")
	fs.StringVar(&opts.values, "values", "", "JSON or YAML value table (code: value)")
	fs.StringVar(&opts.profile, "profile", "", "JSON or YAML user profile used for prefill")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for values in the terminal (fill)")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.renderer, "renderer", "", "renderer to use (render)")
	fs.StringVar(&opts.title, "title", "", "document title")
	fs.DurationVar(&opts.httpTimeout, "http-timeout", 30*time.Second, "timeout for URL sources")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	if opts.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(opts.configPath)
}

func buildRequest(opts options, cfg config.Config) (orchestrator.Request, error) {
	rawTemplate := firstNonEmpty(opts.template, cfg.Template)
	if rawTemplate == "" {
		return orchestrator.Request{}, errors.New("a template is required (-template or config)")
	}
	tpl, err := pkgtemplate.ParseSource(rawTemplate)
	if err != nil {
		return orchestrator.Request{}, fmt.Errorf("template: %w", err)
	}
	req := orchestrator.Request{TemplateSource: tpl}

	if rawDict := firstNonEmpty(opts.dictionary, cfg.Dictionary); rawDict != "" {
		dict, err := pkgtemplate.ParseSource(rawDict)
		if err != nil {
			return orchestrator.Request{}, fmt.Errorf("dictionary: %w", err)
		}
		req.DictionarySource = dict
	}

	switch exclude := strings.TrimSpace(opts.exclude); exclude {
	case "":
	case "-":
		req.ExcludedCodes = []string{}
	default:
		req.ExcludedCodes = splitList(exclude)
	}
	return req, nil
}

func newOrchestrator(opts options, cfg config.Config, logger *slog.Logger) (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New(vanilla.WithSelectLabel(cfg.Labels.Select))
	if err != nil {
		return nil, err
	}
	validator := validation.New(validation.WithInvalidPatternHandler(func(field model.Field, err error) {
		logger.Warn("field pattern does not compile; validation disabled", "code", field.Code, "error", err)
	}))
	registry := render.NewRegistry(
		html,
		tui.New(
			tui.WithValidator(validator),
			tui.WithSelectLabel(cfg.Labels.Select),
			tui.WithOutputFormat(tui.OutputFormatJSON),
		),
	)

	loader := internalLoader.New(pkgtemplate.NewLoaderOptions(
		pkgtemplate.WithHTTPFallback(opts.httpTimeout),
	))

	orchOptions := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithExtractor(extract.New(cfg.ExtractOptions()...)),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(firstNonEmpty(cfg.Renderer, vanilla.Name)),
		orchestrator.WithValidator(validator),
		orchestrator.WithBlockOnErrors(cfg.BlockOnErrors),
		orchestrator.WithExcludedCodes(cfg.ExcludedCodes...),
		orchestrator.WithProfileMapping(cfg.ProfileMap),
		orchestrator.WithLogger(logger),
	}
	if cfg.SanitizeValues {
		orchOptions = append(orchOptions, orchestrator.WithSanitizer())
	}
	if selector := cfg.Theme.Selector(); selector != nil {
		orchOptions = append(orchOptions, orchestrator.WithThemeSelector(selector, cfg.Theme.Name, cfg.Theme.Variant))
	}
	return orchestrator.New(orchOptions...), nil
}

func structure(ctx context.Context, orch *orchestrator.Orchestrator, req orchestrator.Request) ([]byte, error) {
	result, err := orch.Structure(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(result, "", "  ")
}

func renderForm(ctx context.Context, orch *orchestrator.Orchestrator, req orchestrator.Request, opts options, cfg config.Config) ([]byte, error) {
	values, profile, err := loadInputs(opts)
	if err != nil {
		return nil, err
	}
	return orch.Render(ctx, orchestrator.RenderRequest{
		Request:  req,
		Renderer: opts.renderer,
		Options: render.RenderOptions{
			Title:  opts.title,
			Values: values,
		},
		Profile:        profile,
		ValidateValues: len(values) > 0,
		Theme:          cfg.Theme.Name,
		Variant:        cfg.Theme.Variant,
	})
}

func fill(ctx context.Context, orch *orchestrator.Orchestrator, req orchestrator.Request, opts options) ([]byte, error) {
	values, profile, err := loadInputs(opts)
	if err != nil {
		return nil, err
	}

	if opts.interactive {
		collected, err := orch.Render(ctx, orchestrator.RenderRequest{
			Request:  req,
			Renderer: tui.Name,
			Options:  render.RenderOptions{Values: values},
			Profile:  profile,
		})
		if err != nil {
			return nil, err
		}
		values = map[string]string{}
		if err := json.Unmarshal(collected, &values); err != nil {
			return nil, fmt.Errorf("decode prompted values: %w", err)
		}
		// prompted values already include the profile overlay
		profile = nil
	}

	result, err := orch.Fill(ctx, orchestrator.FillRequest{
		Request: req,
		Values:  values,
		Profile: profile,
	})
	if err != nil {
		return nil, err
	}
	for code, msg := range result.Errors {
		logging.FromContext(ctx, nil).Warn("invalid value", "code", code, "error", msg)
	}
	return []byte(result.Text), nil
}

func loadInputs(opts options) (map[string]string, *prefill.Profile, error) {
	values := map[string]string{}
	if opts.values != "" {
		loaded, err := config.LoadValues(opts.values)
		if err != nil {
			return nil, nil, err
		}
		values = loaded
	}
	var profile *prefill.Profile
	if opts.profile != "" {
		loaded, err := config.LoadProfile(opts.profile)
		if err != nil {
			return nil, nil, err
		}
		profile = &loaded
	}
	return values, profile, nil
}

func writeOutput(path string, data []byte, stdout io.Writer, logger *slog.Logger) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(stdout, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", "path", path, "bytes", len(data))
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
