package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rolodex/internal/book"
	"github.com/roach88/rolodex/internal/config"
	"github.com/roach88/rolodex/internal/provider"
	"github.com/roach88/rolodex/internal/store"
)

// replCommands lists every repl command, for help output and typo
// suggestions.
var replCommands = []string{
	"add-sync", "add-async", "clear", "remove", "search", "reset", "load",
	"history", "ip", "air", "help", "quit", "exit",
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive address-book repl",
		Long: `Start the interactive repl. Each command maps to exactly one dispatch on
the store; unrecognized input is reported and dispatches nothing.

Example:
  rolodex repl
  rolodex repl --config ./rolodex.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}

			level := cfg.Log.SlogLevel()
			if rootOpts.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			client := provider.NewClient(provider.Options{
				ContactURL: cfg.Provider.ContactURL,
				IPURL:      cfg.Provider.IPURL,
				AirURL:     cfg.Provider.AirURL,
				Timeout:    cfg.Provider.Timeout,
			})

			// Subscribers and probe goroutines share the terminal; serialize
			// their writes.
			out := &syncWriter{w: cmd.OutOrStdout()}

			sess := &replSession{
				in:           bufio.NewScanner(cmd.InOrStdin()),
				out:          out,
				store:        buildStore(cfg, client, logger, out),
				probes:       client,
				probeTimeout: cfg.Provider.Timeout,
			}
			return sess.run()
		},
	}
	return cmd
}

// buildStore assembles the production pipeline: action logging (with the
// configured artificial latency), the async contact-add flow, and a render
// subscriber that repaints the book after every commit.
func buildStore(cfg config.Config, src book.ContactSource, logger *slog.Logger, out io.Writer) *book.Store {
	delay := book.DelayConfig{
		Enabled: cfg.REPL.DelayEnabled,
		Min:     time.Duration(cfg.REPL.MinDelayMs) * time.Millisecond,
		Max:     time.Duration(cfg.REPL.MaxDelayMs) * time.Millisecond,
	}

	st := book.NewStore(store.WithLogger[book.State, book.Action](logger))
	st.AddMiddleware(book.LoggerMiddleware(logger, delay)).
		AddMiddleware(book.AsyncAddMiddleware(src, cfg.Provider.Timeout, logger)).
		AddSubscriber(func(s book.State) {
			fmt.Fprint(out, RenderState(s))
		})
	return st
}

// prober is the informational probe surface of the provider client.
// Probes never dispatch; they only print.
type prober interface {
	FetchIP(ctx context.Context) (string, error)
	FetchAirData(ctx context.Context) (provider.AirData, error)
}

type replSession struct {
	in           *bufio.Scanner
	out          io.Writer
	store        *book.Store
	probes       prober
	probeTimeout time.Duration

	sampleN int
	probeWG sync.WaitGroup
}

func (r *replSession) run() error {
	fmt.Fprintln(r.out, styleHeader.Render("rolodex repl"))
	fmt.Fprintln(r.out, styleDimmed.Render(`type "help" for the command list`))

	for {
		line, ok := r.readLine("rolodex> ")
		if !ok {
			return r.in.Err()
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}
		if cmd == "quit" || cmd == "exit" {
			fmt.Fprintln(r.out, stylePrimary.Render("Goodbye."))
			return nil
		}

		r.execute(cmd)

		fmt.Fprintf(r.out, "%s %s\n",
			stylePrimary.Render(cmd), styleDimmed.Render("was executed."))
	}
}

// execute maps one command to at most one dispatch. Rejected input (bad id,
// unreadable seed file, unknown command) dispatches nothing.
func (r *replSession) execute(cmd string) {
	switch cmd {
	case "help":
		fmt.Fprintf(r.out, "%s: %s\n",
			stylePrimary.Render("available commands"),
			styleDimmed.Render(strings.Join(replCommands, ", ")))

	case "add-sync":
		n := r.sampleN
		r.sampleN++
		r.store.Dispatch(book.AddContact{
			Name:  fmt.Sprintf("John Doe #%d", n),
			Email: fmt.Sprintf("jd.%d@gmail.com", n),
			Phone: fmt.Sprintf("123-456-%04d", n),
		})

	case "add-async":
		r.store.DispatchAsync(book.AsyncAddContactRequested{})
		fmt.Fprintln(r.out, styleDimmed.Render("spawning async contact fetch ..."))

	case "clear":
		r.store.Dispatch(book.RemoveAllContacts{})

	case "remove":
		raw, ok := r.readLine("id> ")
		if !ok {
			r.errorf("invalid id")
			return
		}
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			r.errorf("invalid id %q", strings.TrimSpace(raw))
			return
		}
		r.store.Dispatch(book.RemoveContactByID{ID: id})

	case "search":
		term, ok := r.readLine("term> ")
		if !ok || strings.TrimSpace(term) == "" {
			r.errorf("invalid search term")
			return
		}
		r.store.Dispatch(book.Search{Term: strings.TrimSpace(term)})

	case "reset":
		r.store.Dispatch(book.ResetState{State: book.State{}})

	case "load":
		path, ok := r.readLine("file> ")
		if !ok || strings.TrimSpace(path) == "" {
			r.errorf("invalid seed file path")
			return
		}
		seed, err := book.LoadSeed(strings.TrimSpace(path))
		if err != nil {
			r.errorf("load failed: %v", err)
			return
		}
		r.store.Dispatch(book.ResetState{State: seed})

	case "history":
		fmt.Fprint(r.out, RenderHistory(r.store.History()))

	case "ip":
		r.spawnProbe("public ip", func(ctx context.Context) (string, error) {
			return r.probes.FetchIP(ctx)
		})

	case "air":
		r.spawnProbe("air quality", func(ctx context.Context) (string, error) {
			air, err := r.probes.FetchAirData(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("score %d, temp %.1fC, co2 %d ppm, voc %d ppb, pm2.5 %d ug/m3",
				air.Score, air.Temp, air.CO2, air.VOC, air.PM25), nil
		})

	default:
		r.errorf("unknown command %q", cmd)
		if s := suggestCommand(cmd, replCommands); s != "" {
			fmt.Fprintln(r.out, styleDimmed.Render(fmt.Sprintf("did you mean %q?", s)))
		}
	}
}

// spawnProbe runs an informational fetch off the repl goroutine and prints
// whatever comes back. Probes are fire-and-forget and never dispatch.
func (r *replSession) spawnProbe(name string, fetch func(context.Context) (string, error)) {
	fmt.Fprintln(r.out, styleDimmed.Render("probing "+name+" ..."))
	r.probeWG.Add(1)
	go func() {
		defer r.probeWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.probeTimeout)
		defer cancel()

		result, err := fetch(ctx)
		if err != nil {
			r.errorf("%s probe failed: %v", name, err)
			return
		}
		fmt.Fprintf(r.out, "%s: %s\n", name, stylePrimary.Render(result))
	}()
}

func (r *replSession) readLine(prompt string) (string, bool) {
	fmt.Fprint(r.out, stylePrimary.Render(prompt))
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

func (r *replSession) errorf(format string, args ...any) {
	fmt.Fprintln(r.out, styleError.Render(fmt.Sprintf(format, args...)))
}

// syncWriter serializes writes from the repl loop, render subscribers, and
// probe goroutines onto one terminal.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
