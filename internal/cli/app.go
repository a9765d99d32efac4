// Package cli implements the finboard command-line client.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"finboard/internal/client"
	"finboard/internal/config"
	"finboard/internal/middleware"
	"finboard/internal/pattern"
	"finboard/internal/workflow"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage error")

// App runs one command against the API.
type App struct {
	cfg        client.Config
	api        *client.Client
	printer    *Printer
	errOut     io.Writer
	classifier *workflow.Classifier
	importer   *workflow.Importer
}

// New creates an App that prints to out and reports usage problems to errOut.
func New(cfg client.Config, api *client.Client, out, errOut io.Writer) *App {
	printer := NewPrinter(out)
	a := &App{cfg: cfg, api: api, printer: printer, errOut: errOut}
	a.classifier = workflow.NewClassifier(api,
		workflow.WithMaxWords(cfg.MaxPatternWords),
		workflow.WithNotifier(printer),
	)
	a.importer = workflow.NewImporter(api,
		workflow.WithNotifier(printer),
		workflow.WithRefresh(a.reportPending),
	)
	return a
}

// Run dispatches args[0] to its command. Failures are printed as status
// lines before being returned. Asking a command for -h is not an error.
func (a *App) Run(ctx context.Context, args []string) error {
	err := a.dispatch(ctx, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func (a *App) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "classify":
		return a.runClassify(ctx, rest)
	case "delete":
		return a.runDelete(ctx, rest)
	case "import":
		return a.runImport(ctx, rest)
	case "apply":
		return a.runApply(ctx, rest)
	case "list":
		return a.runList(ctx, rest)
	case "rules":
		return a.runRules(ctx, rest)
	case "batches":
		return a.runBatches(ctx)
	case "taxonomy":
		return a.runTaxonomy(ctx)
	case "pattern":
		return a.runPattern(rest)
	case "token":
		return a.runToken(rest)
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		fmt.Fprintf(a.errOut, "Unknown command: %s\n\n", cmd)
		a.usage()
		return ErrUsage
	}
}

func (a *App) usage() {
	fmt.Fprint(a.errOut, `finboard - classify bank movements

Usage:
  finboard <command> [options]

Commands:
  classify  Classify one transaction, optionally remembering a rule
  delete    Delete one transaction
  import    Upload statement files and apply the learned rules
  apply     Apply the learned rules to a batch
  list      List transactions
  rules     List learned rules
  batches   List import batches
  taxonomy  Show the category catalogue
  pattern   Show the rule pattern derived from a description
  token     Mint an access token (needs the server's JWT_SECRET)

Run 'finboard <command> -h' for the options of a command.
`)
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func (a *App) runClassify(ctx context.Context, args []string) error {
	fs := a.flags("classify")
	id := fs.Uint("id", 0, "transaction ID")
	category := fs.String("category", "", "category key")
	subcategory := fs.String("subcategory", "", "subcategory key")
	description := fs.String("description", "", "new description (defaults to the current one)")
	remember := fs.Bool("remember", false, "learn a rule from the description")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id is required", ErrUsage)
	}

	tx, err := a.api.GetTransaction(ctx, *id)
	if err != nil {
		a.printer.Notify(workflow.Event{Level: workflow.LevelFailure, Message: fmt.Sprintf("Could not load transaction %d: %s", *id, err)})
		return err
	}

	s := workflow.NewSession(*tx)
	if *description != "" {
		s.Description = *description
	}
	if *category != "" {
		s.Category = *category
	}
	if *subcategory != "" {
		s.Subcategory = *subcategory
	}
	s.Remember = *remember

	_, err = a.classifier.Submit(ctx, s)
	return err
}

func (a *App) runDelete(ctx context.Context, args []string) error {
	fs := a.flags("delete")
	id := fs.Uint("id", 0, "transaction ID")
	if err := parse(fs, args); err != nil {
		return err
	}
	return a.classifier.Delete(ctx, *id)
}

func (a *App) runImport(ctx context.Context, args []string) error {
	fs := a.flags("import")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: import needs at least one file", ErrUsage)
	}

	var failed int
	for _, path := range fs.Args() {
		content, err := os.ReadFile(path)
		if err != nil {
			a.printer.Notify(workflow.Event{Level: workflow.LevelFailure, Message: fmt.Sprintf("Could not read %s: %s", path, err)})
			failed++
			continue
		}
		out, err := a.importer.Import(ctx, filepath.Base(path), content)
		if err != nil {
			failed++
			continue
		}
		if out.Apply.Result != nil {
			a.printer.ApplyStats(out.Apply.Result)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, fs.NArg())
	}
	return nil
}

func (a *App) runApply(ctx context.Context, args []string) error {
	fs := a.flags("apply")
	batch := fs.String("batch", "", "import batch ID")
	if err := parse(fs, args); err != nil {
		return err
	}
	result, err := a.importer.ApplyToBatch(ctx, *batch)
	if err != nil {
		return err
	}
	a.printer.ApplyStats(result)
	return nil
}

func (a *App) runList(ctx context.Context, args []string) error {
	fs := a.flags("list")
	var filter client.ListFilter
	fs.StringVar(&filter.BatchID, "batch", "", "import batch ID")
	fs.StringVar(&filter.Category, "category", "", "category key")
	fs.BoolVar(&filter.Uncategorized, "uncategorized", false, "only transactions without category")
	fs.StringVar(&filter.Month, "month", "", "month as YYYY-MM")
	fs.StringVar(&filter.Query, "q", "", "search in description")
	fs.IntVar(&filter.Page, "page", 1, "page number")
	fs.IntVar(&filter.PageSize, "page-size", 0, "transactions per page")
	if err := parse(fs, args); err != nil {
		return err
	}

	page, err := a.api.ListTransactions(ctx, filter)
	if err != nil {
		return a.fail(err)
	}
	a.printer.Transactions(page)
	return nil
}

func (a *App) runRules(ctx context.Context, args []string) error {
	fs := a.flags("rules")
	category := fs.String("category", "", "category key")
	if err := parse(fs, args); err != nil {
		return err
	}
	rules, err := a.api.ListRules(ctx, *category)
	if err != nil {
		return a.fail(err)
	}
	a.printer.Rules(rules)
	return nil
}

func (a *App) runBatches(ctx context.Context) error {
	batches, err := a.api.ListBatches(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.printer.Batches(batches)
	return nil
}

func (a *App) runTaxonomy(ctx context.Context) error {
	t, err := a.api.Taxonomy(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.printer.Taxonomy(t)
	return nil
}

func (a *App) runPattern(args []string) error {
	fs := a.flags("pattern")
	words := fs.Int("words", a.cfg.MaxPatternWords, "leading words to keep")
	if err := parse(fs, args); err != nil {
		return err
	}
	description := strings.Join(fs.Args(), " ")
	p := pattern.Derive(description, *words)
	if p == "" {
		a.printer.Notify(workflow.Event{Level: workflow.LevelWarning, Message: "No pattern: the description has no usable words"})
		return nil
	}
	fmt.Fprintln(a.printer.out, p)
	return nil
}

func (a *App) runToken(args []string) error {
	fs := a.flags("token")
	subject := fs.String("subject", "", "who the token is for")
	ttl := fs.Duration("ttl", 0, "lifetime (defaults to JWT_EXPIRES_IN)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *subject == "" {
		return fmt.Errorf("%w: -subject is required", ErrUsage)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = config.Get().JWTExpirationDur
	}
	token, err := middleware.GenerateAccessToken(*subject, lifetime)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.printer.out, token)
	return nil
}

// fail prints err as a failure line and returns it.
func (a *App) fail(err error) error {
	a.printer.Notify(workflow.Event{Level: workflow.LevelFailure, Message: err.Error()})
	return err
}

// reportPending runs after imports and bulk passes.
func (a *App) reportPending(ctx context.Context) {
	page, err := a.api.ListTransactions(ctx, client.ListFilter{Uncategorized: true, PageSize: 1})
	if err != nil {
		return
	}
	if page.TotalItems > 0 {
		fmt.Fprintln(a.printer.out, mutedStyle.Render(fmt.Sprintf("%d transactions still need a category", page.TotalItems)))
	}
}
