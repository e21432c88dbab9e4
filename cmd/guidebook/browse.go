package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/markdown"
	"github.com/eringen/guidebook/prefs"
)

// terminalVisitor scopes the terminal's preferences in the shared store.
const terminalVisitor = "terminal"

var browseMemory bool

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Browse the guides in the terminal",
	Long: `Browse runs the same state machine as the web UI. Commands:

  open <path>    navigate, e.g. "open /guide/routing"
  search <text>  set the search query (empty clears it)
  list           print the current search matches
  menu           toggle the menu          hide-menu    hide it
  guides         toggle the guide list    hide-guides  hide it
  mode           toggle light/dark mode (persisted)
  show           print the current page
  quit           leave`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		var backend prefs.Backend = prefs.NewMemoryBackend()
		if !browseMemory {
			db, err := prefs.OpenSQLite(cfg.PrefsDB)
			if err != nil {
				return err
			}
			defer db.Close()
			backend = db
		}
		store := prefs.NewStore(backend.Scope(terminalVisitor), logger)

		path := "/"
		if len(args) == 1 {
			path = args[0]
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		m, initial := browser.Init(browser.Flags{
			Route:       browser.RouteFromPath(path),
			Guides:      catalog.Guides(),
			Config:      store.Load(ctx),
			TitleSuffix: cfg.TitleSuffix,
		})
		p := browser.NewProgram(m, terminalRunner(out, store), browser.WithLogger(logger))
		if err := p.Send(ctx, initial...); err != nil {
			return err
		}
		return browse(ctx, p, promptReader{}, out)
	},
}

func init() {
	browseCmd.Flags().BoolVar(&browseMemory, "memory", false, "keep preferences in memory only")
	rootCmd.AddCommand(browseCmd)
}

// lineReader yields one command line at a time. io.EOF ends the session.
type lineReader interface {
	ReadLine() (string, error)
}

type promptReader struct{}

func (promptReader) ReadLine() (string, error) {
	prompt := promptui.Prompt{Label: "guidebook"}
	line, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", io.EOF
	}
	return line, err
}

// terminalRunner prints browser-visible effects and saves preference
// changes to store.
func terminalRunner(out io.Writer, store *prefs.Store) browser.EffectRunner {
	persist := browser.PersistTo(store)
	return browser.RunnerFunc(func(ctx context.Context, eff browser.Effect) error {
		switch e := eff.(type) {
		case browser.SetTitle:
			fmt.Fprintf(out, "== %s ==\n", e.Title)
		case browser.ReplaceURL:
			fmt.Fprintf(out, "-> %s\n", e.Path)
		case browser.PersistConfig:
			if err := persist.Run(ctx, eff); err != nil {
				return err
			}
			fmt.Fprintf(out, "mode: %s\n", e.Config.Mode)
		}
		return nil
	})
}

type action int

const (
	actionSend action = iota
	actionShow
	actionList
	actionQuit
)

type command struct {
	action action
	msg    browser.Msg
}

var errUnknownCommand = errors.New("unknown command")

func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(line)
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "open":
		if rest == "" {
			return command{}, errors.New("open needs a path")
		}
		return command{msg: browser.RouteChanged{Route: browser.RouteFromPath(rest)}}, nil
	case "search":
		return command{msg: browser.SearchQueryChanged{Query: rest}}, nil
	case "menu":
		return command{msg: browser.ToggleMenu{}}, nil
	case "hide-menu":
		return command{msg: browser.HideMenu{}}, nil
	case "guides":
		return command{msg: browser.ToggleGuideList{}}, nil
	case "hide-guides":
		return command{msg: browser.HideGuideList{}}, nil
	case "mode":
		return command{msg: browser.ToggleMode{}}, nil
	case "list":
		return command{action: actionList}, nil
	case "show":
		return command{action: actionShow}, nil
	case "quit", "exit":
		return command{action: actionQuit}, nil
	}
	return command{}, fmt.Errorf("%w %q", errUnknownCommand, name)
}

// browse reads commands until quit or EOF. A failure to save preferences
// is reported and the session goes on.
func browse(ctx context.Context, p *browser.Program, in lineReader, out io.Writer) error {
	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		switch cmd.action {
		case actionQuit:
			return nil
		case actionShow:
			printPage(out, p.Model())
		case actionList:
			printMatches(out, p.Model())
		default:
			if err := p.Send(ctx, cmd.msg); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if _, ok := cmd.msg.(browser.SearchQueryChanged); ok {
				printMatches(out, p.Model())
			}
			printPanels(out, p.Model())
		}
	}
}

func printPage(out io.Writer, m *browser.Model) {
	fmt.Fprintf(out, "%s  [%s]\n\n", m.Page.Title(m.TitleSuffix), m.Page.Href())
	if m.Page.IsNotFound() {
		fmt.Fprintln(out, "This guide does not exist.")
		return
	}
	fmt.Fprintln(out, markdown.StripTags(m.Page.Guide.HTML))
}

func printMatches(out io.Writer, m *browser.Model) {
	if m.SearchQuery == "" {
		return
	}
	if len(m.MatchedGuides) == 0 {
		fmt.Fprintf(out, "no guides match %q\n", m.SearchQuery)
		return
	}
	for _, g := range m.MatchedGuides {
		fmt.Fprintf(out, "  %s\t%s\n", browser.GuideRoute(g.Slug), g.MenuTitle)
	}
}

func printPanels(out io.Writer, m *browser.Model) {
	if m.MenuVisibility.IsVisible() {
		fmt.Fprintf(out, "[menu] home | mode: %s\n", m.Mode)
	}
	if m.GuideListVisibility.IsVisible() {
		fmt.Fprintln(out, "[guides]")
		for _, g := range m.Guides {
			marker := " "
			if m.Page.Kind == browser.PageGuide && m.Page.Guide.Slug == g.Slug {
				marker = "*"
			}
			fmt.Fprintf(out, " %s %s\t%s\n", marker, browser.GuideRoute(g.Slug), g.MenuTitle)
		}
	}
}
