package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/pflag"

	"github.com/nhle/maildraft/internal/bridge"
	"github.com/nhle/maildraft/internal/compose"
	"github.com/nhle/maildraft/internal/credential"
	"github.com/nhle/maildraft/internal/draft"
	"github.com/nhle/maildraft/internal/keys"
	"github.com/nhle/maildraft/internal/log"
	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/store"
	"github.com/nhle/maildraft/internal/ui/composeform"
	"github.com/nhle/maildraft/internal/ui/preview"
)

// ErrUsage is returned for malformed command lines; usage has already
// been printed.
var ErrUsage = errors.New("invalid usage")

type command struct {
	usage   string
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

// commands maps each subcommand name to its usage and handler.
var commands map[string]command

func init() {
	commands = map[string]command{
		"mailto":  {"mailto [draft flags] [--content-type]", "print the mailto URI for a draft", (*App).runMailto},
		"eml":     {"eml [draft flags] [--out FILE]", "print or write the EML text for a draft", (*App).runEML},
		"text":    {"text [--delimit] [FILE|-]", "convert HTML markup to plain text", (*App).runText},
		"open":    {"open [draft flags]", "open a draft in the mail client", (*App).runOpen},
		"compose": {"compose [draft flags] [--preview]", "fill in a draft interactively, then open it", (*App).runCompose},
		"preview": {"preview [draft flags]", "browse a draft's encodings in the terminal", (*App).runPreview},
		"inspect": {"inspect FILE.eml", "read an EML draft back into properties", (*App).runInspect},
		"history": {"history [--app APP] [--limit N] [--show ID]", "list opened drafts", (*App).runHistory},
		"drafts":  {"drafts save|import|list|show|open|rm ...", "manage saved drafts", (*App).runDrafts},
		"account": {"account status|login|logout", "manage the IMAP drafts account", (*App).runAccount},
		"config":  {"config init [--force]|path", "write or locate the configuration file", (*App).runConfig},
		"serve":   {"serve [--listen ADDR]", "serve the HTTP bridge", (*App).runServe},
	}
}

// Main parses the global flags, loads configuration and runs the named
// command.
func Main(ctx context.Context, args []string, opts Options) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	fs := pflag.NewFlagSet("maildraft", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)
	configPath := fs.String("config", model.DefaultConfigPath(), "configuration file")
	envFile := fs.String("env-file", ".env", "dotenv file with MAILDRAFT_* overrides")
	dbPath := fs.String("db", "", "history database (overrides db_path)")
	debug := fs.Bool("debug", false, "log debug output")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return ErrUsage
	}
	log.SetDebug(*debug)

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr, fs)
		return ErrUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		printUsage(stderr, fs)
		return fmt.Errorf("unknown command %q", rest[0])
	}

	if err := model.LoadEnvFile(*envFile); err != nil {
		return err
	}
	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	log.Dump("config", cfg)

	a, err := New(*cfg, *configPath, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	return cmd.run(a, ctx, rest[1:])
}

func printUsage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: maildraft [global flags] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fmt.Fprint(w, global.FlagUsages())
}

// newFlagSet returns a flag set for a subcommand that reports errors on
// stderr.
func (a *App) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "usage: maildraft %s\n", commands[name].usage)
		fmt.Fprint(a.stderr, fs.FlagUsages())
	}
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return ErrUsage
	}
	return nil
}

// parseDraft parses draft flags and merges the result with the
// configured defaults.
func (a *App) parseDraft(fs *pflag.FlagSet, args []string) (model.DraftProperties, error) {
	df := newDraftFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return model.DraftProperties{}, err
	}
	p, err := df.properties(a.stdin)
	if err != nil {
		return model.DraftProperties{}, err
	}
	return a.composer.Settings().Merge(p), nil
}

func (a *App) runMailto(_ context.Context, args []string) error {
	fs := a.newFlagSet("mailto")
	withType := fs.Bool("content-type", false, "append a Content-Type parameter")
	p, err := a.parseDraft(fs, args)
	if err != nil {
		return err
	}

	h := draft.MailtoURI(&p, *withType)
	defer h.Close()

	uri := h.URI
	if p.App != compose.AppMailto && p.App != compose.AppIMAP && p.App != draft.MailtoScheme {
		uri = compose.RetargetURI(uri, p.App)
	}
	fmt.Fprintln(a.stdout, uri)
	return nil
}

func (a *App) runEML(_ context.Context, args []string) error {
	fs := a.newFlagSet("eml")
	out := fs.String("out", "", "write to FILE instead of stdout")
	p, err := a.parseDraft(fs, args)
	if err != nil {
		return err
	}

	h := draft.EMLContent(&p)
	defer h.Close()

	if *out == "" {
		fmt.Fprintln(a.stdout, h.Text)
		return nil
	}
	if err := os.WriteFile(*out, []byte(h.Text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	return nil
}

func (a *App) runText(_ context.Context, args []string) error {
	fs := a.newFlagSet("text")
	delimit := fs.Bool("delimit", false, "wrap link targets in <...>")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	src := "-"
	if fs.NArg() > 0 {
		src = fs.Arg(0)
	}
	markup, err := readInput(src, a.stdin)
	if err != nil {
		return err
	}

	if text, ok := draft.ToPlainText(string(markup), *delimit); ok {
		fmt.Fprintln(a.stdout, text)
	}
	return nil
}

func (a *App) runOpen(ctx context.Context, args []string) error {
	p, err := a.parseDraft(a.newFlagSet("open"), args)
	if err != nil {
		return err
	}
	return a.open(ctx, &p)
}

func (a *App) open(ctx context.Context, p *model.DraftProperties) error {
	res, err := a.composer.Open(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "opened via %s: %s\n", res.Method, res.Target)
	return nil
}

func (a *App) runCompose(ctx context.Context, args []string) error {
	fs := a.newFlagSet("compose")
	withPreview := fs.Bool("preview", false, "preview the draft instead of opening it")
	p, err := a.parseDraft(fs, args)
	if err != nil {
		return err
	}

	form := composeform.New(p, a.composer.Settings().Aliases(), 80)
	if err := form.Form().Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("running compose form: %w", err)
	}

	props := a.composer.Settings().Merge(ptr(form.Properties()))
	if *withPreview {
		return a.preview(props)
	}
	return a.open(ctx, &props)
}

func (a *App) runPreview(_ context.Context, args []string) error {
	p, err := a.parseDraft(a.newFlagSet("preview"), args)
	if err != nil {
		return err
	}
	return a.preview(p)
}

func (a *App) preview(p model.DraftProperties) error {
	m := preview.New(p, keys.DefaultKeyMap(), a.composer.Open, 80, 24)
	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(a.stdin),
		tea.WithOutput(a.stdout),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}

func (a *App) runInspect(_ context.Context, args []string) error {
	fs := a.newFlagSet("inspect")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ErrUsage
	}

	p, err := a.parseEMLFile(fs.Arg(0))
	if err != nil {
		return err
	}
	return a.printJSON(p)
}

func (a *App) parseEMLFile(path string) (*model.DraftProperties, error) {
	data, err := readInput(path, a.stdin)
	if err != nil {
		return nil, err
	}
	return draft.ParseEML(strings.NewReader(string(data)))
}

func (a *App) runHistory(ctx context.Context, args []string) error {
	fs := a.newFlagSet("history")
	app := fs.String("app", "", "only launches opened with APP")
	limit := fs.Int("limit", 20, "maximum number of launches")
	show := fs.String("show", "", "print the content of launch ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *show != "" {
		launch, err := a.store.GetLaunchByID(ctx, *show)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, launch.Content)
		return nil
	}

	filter := store.LaunchFilter{Limit: *limit}
	if *app != "" {
		resolved := a.composer.Settings().Resolve(*app)
		filter.App = &resolved
	}
	launches, err := a.store.GetLaunches(ctx, filter)
	if err != nil {
		return err
	}
	if len(launches) == 0 {
		fmt.Fprintln(a.stdout, "no launches recorded")
		return nil
	}
	fmt.Fprintln(a.stdout, renderLaunches(launches))
	return nil
}

func (a *App) runDrafts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.stderr, "usage: maildraft %s\n", commands["drafts"].usage)
		return ErrUsage
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "save":
		fs := a.newFlagSet("drafts")
		df := newDraftFlags(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("drafts save: exactly one NAME is required")
		}
		p, err := df.properties(a.stdin)
		if err != nil {
			return err
		}
		return a.saveDraft(ctx, fs.Arg(0), p)

	case "import":
		if len(args) != 2 {
			return fmt.Errorf("drafts import: NAME and FILE are required")
		}
		p, err := a.parseEMLFile(args[1])
		if err != nil {
			return err
		}
		return a.saveDraft(ctx, args[0], p)

	case "list":
		drafts, err := a.store.GetDrafts(ctx)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			fmt.Fprintln(a.stdout, "no saved drafts")
			return nil
		}
		fmt.Fprintln(a.stdout, renderDrafts(drafts))
		return nil

	case "show", "open", "rm":
		if len(args) != 1 {
			return fmt.Errorf("drafts %s: exactly one NAME is required", sub)
		}
		d, err := a.store.GetDraftByName(ctx, args[0])
		if err != nil {
			return err
		}
		switch sub {
		case "show":
			return a.printJSON(d)
		case "open":
			return a.open(ctx, &d.Properties)
		default:
			if err := a.store.DeleteDraft(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted draft %q\n", d.Name)
			return nil
		}

	default:
		return fmt.Errorf("unknown drafts command %q", sub)
	}
}

func (a *App) saveDraft(ctx context.Context, name string, p *model.DraftProperties) error {
	d := &model.SavedDraft{Name: name, Properties: *p}
	if err := a.store.SaveDraft(ctx, d); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "saved draft %q\n", d.Name)
	return nil
}

func (a *App) runAccount(ctx context.Context, args []string) error {
	sub := "status"
	if len(args) > 0 {
		sub = args[0]
	}

	imap := a.cfg.IMAP
	switch sub {
	case "status":
		fmt.Fprintf(a.stdout, "mailto: available=%t\n", a.composer.HasClient(ctx, compose.AppMailto))
		if !imap.Configured() {
			fmt.Fprintln(a.stdout, "imap: not configured")
			return nil
		}
		fmt.Fprintf(a.stdout, "imap: %s@%s password=%t\n",
			imap.Username, imap.Host, a.composer.HasAccount(compose.AppIMAP))
		return nil

	case "login":
		if !imap.Configured() {
			return fmt.Errorf("imap.host and imap.username must be set first: %w", compose.ErrNoAccount)
		}
		data, err := io.ReadAll(io.LimitReader(a.stdin, 4096))
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password := strings.TrimRight(string(data), "\r\n")
		if password == "" {
			return fmt.Errorf("empty password")
		}
		if err := a.creds.Set(imap.IMAPCredentialKey(), password); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "stored password for %s\n", imap.Username)
		return nil

	case "logout":
		err := a.creds.Delete(imap.IMAPCredentialKey())
		if err != nil && !errors.Is(err, credential.ErrNotFound) {
			return err
		}
		fmt.Fprintf(a.stdout, "removed password for %s\n", imap.Username)
		return nil

	default:
		return fmt.Errorf("unknown account command %q", sub)
	}
}

func (a *App) runConfig(_ context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("config: init or path is required")
	}

	switch args[0] {
	case "path":
		fmt.Fprintln(a.stdout, a.configPath)
		return nil

	case "init":
		fs := a.newFlagSet("config")
		force := fs.Bool("force", false, "overwrite an existing file")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if _, err := os.Stat(a.configPath); err == nil && !*force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
		}
		if err := model.SaveConfig(a.configPath, &a.cfg); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "wrote %s\n", a.configPath)
		return nil

	default:
		return fmt.Errorf("unknown config command %q", args[0])
	}
}

func (a *App) runServe(ctx context.Context, args []string) error {
	fs := a.newFlagSet("serve")
	listen := fs.String("listen", a.cfg.Bridge.Listen, "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	h := bridge.NewHandler(a.composer, a.store)
	return bridge.Serve(ctx, bridge.NewApp(h), *listen)
}

func (a *App) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ptr[T any](v T) *T {
	return &v
}
