package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/matchday/internal/netcheck"
	"github.com/five82/matchday/internal/prefs"
	"github.com/five82/matchday/internal/state"
	"github.com/five82/matchday/internal/view"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Projector *view.Projector
	Checker   netcheck.Checker
	LogFile   string
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	projector *view.Projector
	logFile   string
	prefs     prefs.Prefs
	prefsPath string
	logger    *slog.Logger
	now       func() time.Time
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	ui          view.UIState
	countdowns  map[string]string
	lastUpdated time.Time
	online      bool
	connCh      <-chan bool

	// List state
	selected int
	offset   int

	// Search input
	searchInput textinput.Model
	typing      bool

	spinner spinner.Model

	// Overlays
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Placeholder = "Search events..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		projector:   opts.Projector,
		logFile:     opts.LogFile,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		logger:      logger,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.Prefs.Theme),
		countdowns:  make(map[string]string),
		online:      true,
		searchInput: ti,
		spinner:     sp,
	}
	if opts.Checker != nil {
		m.online = opts.Checker.IsAvailable()
		m.connCh = opts.Checker.Observe(ctx)
	}
	if m.projector != nil {
		m.ui = m.projector.State()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(CountdownInterval),
		m.watchConnectivity(),
	}
	if m.projector != nil {
		m.projector.BeginLoad()
		cmds = append(cmds, refreshCmd(m.ctx, m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampSelection()
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		m.refreshCountdowns(time.Time(msg))
		var cmd tea.Cmd
		if m.showLogs {
			cmd = m.readLogsCmd()
		}
		return m, tea.Batch(cmd, tickCmd(CountdownInterval))

	case refreshedMsg:
		m.projector.CompleteLoad(msg.err)
		if msg.err == nil {
			m.lastUpdated = m.now()
		}
		m.syncState()
		return m, nil

	case connectivityMsg:
		if m.online != bool(msg) {
			m.logger.Debug("connectivity changed", "online", bool(msg))
		}
		m.online = bool(msg)
		return m, m.watchConnectivity()

	case logLinesMsg:
		m.logErr = msg.err
		m.setLogContent(msg.lines)
		return m, nil

	case spinner.TickMsg:
		if !m.ui.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// startLoad enters the loading state and returns the command that performs
// the refresh off the update loop.
func (m *Model) startLoad() tea.Cmd {
	if m.projector == nil {
		return nil
	}
	m.projector.BeginLoad()
	m.syncState()
	return tea.Batch(refreshCmd(m.ctx, m.store), m.spinner.Tick)
}

// syncState copies the projector state in and keeps the selection on the
// same row id when it still exists.
func (m *Model) syncState() {
	var selectedID string
	if row, ok := m.selectedRow(); ok {
		selectedID = row.ID()
	}
	m.ui = m.projector.State()
	if selectedID != "" {
		for i, row := range m.ui.Items {
			if row.ID() == selectedID {
				m.selected = i
				break
			}
		}
	}
	m.clampSelection()
	m.refreshCountdowns(m.now())
}

// refreshCountdowns recomputes countdown text for the rows currently on screen.
func (m *Model) refreshCountdowns(now time.Time) {
	if m.projector == nil {
		return
	}
	start, end := m.visibleRange()
	for _, row := range m.ui.Items[start:end] {
		if row.Kind == view.RowEvent {
			m.countdowns[row.Event.ID] = m.projector.EventCountdown(row.Event.ID, now)
		}
	}
}

// countdownFor returns the freshest countdown text for an event row.
func (m Model) countdownFor(row view.EventRow) string {
	if text, ok := m.countdowns[row.ID]; ok {
		return text
	}
	return row.StartsIn
}

// Messages

type tickMsg time.Time

type refreshedMsg struct{ err error }

type connectivityMsg bool

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		_, err := store.Refresh(ctx)
		return refreshedMsg{err: err}
	}
}

// watchConnectivity waits for the next connectivity value. It returns nil
// once the subscription is closed, which ends the chain.
func (m Model) watchConnectivity() tea.Cmd {
	ch := m.connCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		online, ok := <-ch
		if !ok {
			return nil
		}
		return connectivityMsg(online)
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
