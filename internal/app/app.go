package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/forge-editor/forge/internal/buffer"
	"github.com/forge-editor/forge/internal/config"
	"github.com/forge-editor/forge/internal/decoration"
	"github.com/forge-editor/forge/internal/editor"
	"github.com/forge-editor/forge/internal/encoding"
	"github.com/forge-editor/forge/internal/gpu"
	"github.com/forge-editor/forge/internal/input"
	"github.com/forge-editor/forge/internal/layout"
	"github.com/forge-editor/forge/internal/render"
	"github.com/forge-editor/forge/internal/syntax"
	"github.com/forge-editor/forge/internal/worker"
	"github.com/forge-editor/forge/internal/worker/agent"
	"github.com/forge-editor/forge/internal/worker/debug"
	"github.com/forge-editor/forge/internal/worker/fswatch"
	"github.com/forge-editor/forge/internal/worker/git"
	"github.com/forge-editor/forge/internal/worker/plugin"
	"github.com/forge-editor/forge/internal/worker/terminal"
)

// Application wires one running process together: configuration,
// logging, the clipboard and notification queues, the crash-recovery
// flusher, the background collaborator seams, and the single frame
// loop that drives the editor surface for one open document.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Clipboard     Clipboard
	Notifications *Notifications
	Recovery      *Recovery

	Doc       *editor.Document
	Commander *editor.Commander
	Driver    *render.Driver

	commandTx chan<- render.Command

	mu         sync.Mutex
	running    bool
	cancel     context.CancelFunc
	supervisor *worker.Supervisor
}

// snapshotSource adapts a single *editor.Document to
// app.SnapshotSource; a multi-document host would fan this out over
// every open buffer instead.
type snapshotSource struct {
	path string
	doc  *editor.Document
}

func (s snapshotSource) Snapshots() []Snapshot {
	return []Snapshot{{Path: s.path, Content: []byte(s.doc.Buf.Text())}}
}

// New constructs an Application for the file at path: it loads
// configuration, builds the clipboard/notification/recovery ambient
// stack, opens path into a Document, and wires a TcellBackend-backed
// render.Driver. The returned Application has not started its frame
// loop or any collaborator seam yet; Run starts both.
func New(path string) (*Application, error) {
	cfg := config.New()
	if err := cfg.Load(); err != nil {
		return nil, NewCoreError(KindConfigParse, "load config", err)
	}
	settings := cfg.Snapshot()

	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(settings.Logging.Level),
		Output: os.Stderr,
		JSON:   settings.Logging.JSON,
	})

	clip := newClipboard(logger)
	notifications := NewNotifications()

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, NewCoreError(KindIO, "open "+path, err)
	}
	if encoding.BinaryFile(raw) {
		return nil, NewCoreError(KindBinaryFile, path, nil)
	}
	text, err := encoding.Decode(raw, encoding.DetectEncoding(raw))
	if err != nil {
		return nil, NewCoreError(KindEncoding, path, err)
	}
	buf := buffer.NewBufferFromString(text, buffer.WithDetectedLineEnding(text))
	if settings.Editor.TabSize > 0 {
		buf.SetTabWidth(settings.Editor.TabSize)
	}

	doc := editor.NewDocument(buf)
	store := decoration.NewStore()
	commander := editor.NewCommander(doc, clip, store)
	commander.Path = path
	commander.Saver = fileSaver{}
	commander.Notify = notifications

	recoveryRoot, err := os.UserCacheDir()
	if err != nil {
		recoveryRoot = os.TempDir()
	}
	recovery := NewRecovery(recoveryRoot, snapshotSource{path: path, doc: doc}, 30*time.Second)

	backend, err := gpu.NewTcellBackend(gpu.DefaultCellMetrics)
	if err != nil {
		return nil, NewCoreError(KindIO, "init terminal backend", err)
	}

	lang, _ := syntax.DetectLanguage(path)
	reparser := editor.NewSyntaxReparser(doc, lang)
	commander.Syntax = reparser.Syntax

	width, height := backend.Size()
	zones := layout.ComputeZones(layout.Size{W: width, H: height}, layout.PanelFlags{}, layout.ModeStandard)
	editorRect := zones.Rect(layout.ZoneEditor)
	rows := editorRect.H / gpu.DefaultCellMetrics.Height
	if rows <= 0 {
		rows = 1
	}

	source := editor.NewDocumentFrameSource(doc, rows)
	source.Syntax = reparser.Syntax

	workerInbox := make(chan render.WorkerMessage, 32)
	commandInbox := make(chan render.Command, 32)

	driver := &render.Driver{
		Backend:       backend,
		Store:         store,
		Pools:         gpu.NewDefaultFramePools(),
		Mode:          layout.ModeStandard,
		Commander:     commander,
		Syntax:        reparser,
		Source:        source,
		AnimationTick: 500 * time.Millisecond,
		WorkerInbox:   workerInbox,
		CommandInbox:  commandInbox,
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		Clipboard:     clip,
		Notifications: notifications,
		Recovery:      recovery,
		Doc:           doc,
		Commander:     commander,
		Driver:        driver,
		commandTx:     commandInbox,
	}
	return app, nil
}

// newClipboard returns a SystemClipboard, or a MemoryClipboard if a
// probe read reports the OS clipboard is unavailable (a headless CI
// run, a sandboxed container with no clipboard utility installed).
func newClipboard(logger *slog.Logger) Clipboard {
	sys := SystemClipboard{}
	if _, err := sys.Read(); err != nil {
		var coreErr *CoreError
		if errors.As(err, &coreErr) && coreErr.Kind == KindClipboardUnavailable {
			logger.Info("system clipboard unavailable, using in-memory fallback")
			return &MemoryClipboard{}
		}
	}
	return sys
}

// Run starts the background collaborator seams and the frame loop,
// blocking until the loop exits (normal quit, an unrecoverable error,
// or ctx cancellation). Calling Run while already running returns
// ErrAlreadyRunning.
func (a *Application) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.running = true
	a.cancel = cancel
	supervisor, supCtx := worker.NewSupervisor(runCtx)
	a.supervisor = supervisor
	a.mu.Unlock()

	if err := a.Driver.Backend.Init(); err != nil {
		a.finish()
		return NewCoreError(KindIO, "init backend", err)
	}
	a.Recovery.Start()

	a.startSeams(supervisor, supCtx)

	pump := newInputPump(a.Driver.Backend, input.NewResolver(input.DefaultKeymap()), func() input.Context {
		return input.NewContext()
	}, a.commandTx)
	supervisor.Go(pump)

	err := a.Driver.Run(supCtx)
	cancel()
	a.Recovery.Stop()
	a.Driver.Backend.Shutdown()

	waitErr := supervisor.Wait()
	a.finish()

	if err != nil && !errors.Is(err, render.ErrQuit) && !errors.Is(err, context.Canceled) {
		return err
	}
	return waitErr
}

// startSeams launches the debug, terminal and plugin seams
// unconditionally, plus the agent and git/filesystem-watcher seams when
// config enables them, all under supervisor. An agent client or
// filesystem watcher that fails to construct is logged and skipped
// rather than aborting startup — the editor core works with zero
// collaborators attached. No language-server seam is started here.
func (a *Application) startSeams(supervisor *worker.Supervisor, ctx context.Context) {
	settings := a.Config.Snapshot()

	supervisor.Go(debug.NewClient())
	supervisor.Go(terminal.NewClient())
	supervisor.Go(plugin.NewHost(0))

	if settings.AI.Enabled {
		if client, err := newAgentClient(settings.AI); err == nil {
			supervisor.Go(client)
		} else {
			a.Logger.Warn("agent seam disabled", "error", err)
		}
	}

	if settings.Git.Enabled {
		if dir, err := os.Getwd(); err == nil {
			interval := time.Duration(settings.Git.PollIntervalMillis) * time.Millisecond
			runner := NewExecGitRunner(dir)
			supervisor.Go(git.NewWatcher(runner, interval))

			if watcher, err := fswatch.NewWatcher(dir, fswatch.DefaultIgnore, 0); err == nil {
				supervisor.Go(&fsWatchSeam{watcher: watcher, logger: a.Logger})
			} else {
				a.Logger.Warn("filesystem watcher disabled", "error", err)
			}
		}
	}
}

// newAgentClient resolves settings.AI.Provider to a concrete Provider
// via its SDK key in the environment, the conventional place a secret
// like this lives rather than in a config file a user might commit.
func newAgentClient(ai config.AISettings) (*agent.Client, error) {
	kind, err := agent.ParseProviderKind(ai.Provider)
	if err != nil {
		return nil, err
	}

	var provider agent.Provider
	switch kind {
	case agent.ProviderAnthropic:
		provider = agent.NewAnthropicProvider(os.Getenv("ANTHROPIC_API_KEY"), ai.Model)
	case agent.ProviderOpenAI:
		provider = agent.NewOpenAIProvider(os.Getenv("OPENAI_API_KEY"), ai.Model)
	case agent.ProviderGemini:
		gp, err := agent.NewGeminiProvider(context.Background(), os.Getenv("GEMINI_API_KEY"), ai.Model)
		if err != nil {
			return nil, err
		}
		provider = gp
	}
	return agent.NewClient(provider), nil
}

// fsWatchSeam adapts fswatch.Watcher (which starts its own goroutine
// and is stopped via Close rather than context cancellation) to
// worker.Seam, logging out-of-band file changes until ctx is done.
type fsWatchSeam struct {
	watcher *fswatch.Watcher
	logger  *slog.Logger
}

func (s *fsWatchSeam) Run(ctx context.Context) error {
	defer s.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.watcher.Events():
			if !ok {
				return nil
			}
			s.logger.Debug("external file change", "path", ev.Path, "op", ev.Op)
		}
	}
}

// Shutdown cancels a running Application's loop and returns at once;
// it does not wait for Run to unwind. Calling Shutdown before Run
// returns ErrNotRunning.
func (a *Application) Shutdown() error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return ErrNotRunning
	}
	cancel := a.cancel
	a.mu.Unlock()

	cancel()
	return nil
}

func (a *Application) finish() {
	a.mu.Lock()
	a.running = false
	a.cancel = nil
	a.supervisor = nil
	a.mu.Unlock()
}
