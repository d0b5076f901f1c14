package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"selectsearch/internal/domain"
	"selectsearch/internal/eventbus"
	"selectsearch/internal/ui/input"
	inputtypes "selectsearch/internal/ui/input/types"
	"selectsearch/internal/ui/services/navigation"
	"selectsearch/internal/ui/services/search"
	"selectsearch/internal/ui/services/selection"
	"selectsearch/internal/ui/state"
	"selectsearch/internal/ui/views"
)

const (
	defaultHeight   = 10
	statusClearTime = 3 * time.Second
	// rows taken by title, search box, footer, help and padding
	chromeHeight = 12
)

// Settings configures a widget
type Settings struct {
	Title         string
	Options       []domain.Option // static options; when set nothing is fetched
	DefaultOption *domain.Option
	Fetch         domain.FetchFunc
	Search        *domain.SearchConfig // nil hides the search input
	Multiple      bool
	OnSelect      domain.SelectFunc // required
	Bus           eventbus.EventBus // optional
	Height        int               // visible rows, 0 fits the terminal
}

// Model is a single select/search widget
type Model struct {
	id       string
	settings Settings
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool

	// UI-specific state
	width         int
	height        int
	help          help.Model
	spinner       spinner.Model
	spinning      bool
	statusMessage string
	inPagerMode   bool

	// Services
	selection    *selection.Service
	search       *search.Service
	navigator    *navigation.Service
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a widget from settings
func NewModel(settings Settings) (*Model, error) {
	if settings.OnSelect == nil {
		return nil, domain.ErrMissingOnSelect
	}

	height := settings.Height
	if height <= 0 {
		height = defaultHeight
	}

	placeholder := ""
	if settings.Search != nil {
		placeholder = settings.Search.Placeholder
	}

	keys := inputtypes.DefaultKeyMap()
	if settings.Search == nil {
		keys.Search.SetEnabled(false)
		keys.Apply.SetEnabled(false)
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		id:           uuid.NewString(),
		settings:     settings,
		ctx:          ctx,
		cancel:       cancel,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		selection:    selection.NewService(settings.Options, settings.DefaultOption, settings.Multiple),
		search:       search.NewService(settings.Fetch != nil && len(settings.Options) == 0, settings.Search),
		navigator:    navigation.NewService(height),
		inputHandler: input.New(keys, placeholder),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(keys),
	}
	if settings.Search != nil {
		m.inputHandler.SetValue(settings.Search.Query)
	}
	m.navigator.SetCount(len(m.selection.Options()))

	return m, nil
}

// ID returns the widget instance ID carried by its events
func (m *Model) ID() string {
	return m.id
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init performs the mount fetch
func (m *Model) Init() tea.Cmd {
	req, ok := m.search.Mount(m.selection.HasStatic())
	if !ok {
		return nil
	}
	return m.startFetch(req)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case fetchResultMsg:
		return m, m.handleFetchResult(msg)

	case spinner.TickMsg:
		if !m.search.IsFetching() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, modelContext{m})
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	// Cursor blink and other text input messages
	return m, m.inputHandler.Update(msg)
}

// Select commits values as the complete new selection and reports it to
// OnSelect. An invalid selection leaves the state untouched.
func (m *Model) Select(values ...string) error {
	if m.closed {
		return domain.ErrClosed
	}

	selected, err := m.selection.Select(values)
	if err != nil {
		log.Printf("Selection rejected: %v", err)
		return err
	}

	m.settings.OnSelect(selected)
	m.publish(eventbus.SelectionChangedEvent{WidgetID: m.id, Selected: selected})
	return nil
}

// SetQuery updates the search draft. With auto-apply the returned command
// fetches the first page for the new query.
func (m *Model) SetQuery(query string) tea.Cmd {
	if m.closed || !m.search.HasSearch() {
		return nil
	}
	if m.inputHandler.TextInput().Value() != query {
		m.inputHandler.SetValue(query)
	}

	req, ok := m.search.SetQuery(query)
	m.publish(eventbus.QueryChangedEvent{WidgetID: m.id, Query: query, Applied: m.search.Config().AutoApply})
	if !ok {
		return nil
	}
	return m.startFetch(req)
}

// ApplySearch commits the draft query and fetches its first page
func (m *Model) ApplySearch() tea.Cmd {
	if m.closed || !m.search.HasSearch() {
		return nil
	}

	req, ok := m.search.Apply()
	m.publish(eventbus.QueryChangedEvent{WidgetID: m.id, Query: m.search.GetQuery(), Applied: true})
	if !ok {
		return nil
	}
	return m.startFetch(req)
}

// GoToPage fetches the given zero-based page of the committed query
func (m *Model) GoToPage(page int) (tea.Cmd, error) {
	req, ok, err := m.search.GoToPage(page)
	if err != nil {
		log.Printf("Page request rejected: %v", err)
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return m.startFetch(req), nil
}

// Close unmounts the widget. The in-flight fetch is cancelled and its result
// is dropped when it arrives.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	m.search.Close()
	log.Printf("Widget %s closed", m.id)
	m.publish(eventbus.WidgetClosedEvent{WidgetID: m.id})
}

// State returns a snapshot of the widget state
func (m *Model) State() state.WidgetState {
	return state.WidgetState{
		ID:             m.id,
		Options:        m.selection.Options(),
		SelectedValues: m.selection.SelectedValues(),
		Selected:       m.selection.Selected(),
		PageMeta:       m.search.PageMeta(),
		IsFetching:     m.search.IsFetching(),
		Query:          m.search.GetQuery(),
		DraftQuery:     m.search.GetDraftQuery(),
		LastError:      m.search.LastError(),
		Cursor:         m.navigator.GetCursor(),
		Closed:         m.closed,
	}
}

// View renders the widget
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	defaultValue := ""
	if def := m.selection.Default(); def != nil {
		defaultValue = def.Value
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Title:          m.settings.Title,
		Options:        m.selection.Options(),
		SelectedValues: m.selection.SelectedValues(),
		DefaultValue:   defaultValue,
		Multiple:       m.selection.Multiple(),
		Cursor:         m.navigator.GetCursor(),
		ViewportOffset: m.navigator.GetViewportOffset(),
		ViewportHeight: m.navigator.GetViewportHeight(),
		HasSearch:      m.search.HasSearch(),
		SearchFocused:  m.inputHandler.CurrentMode() == inputtypes.ModeSearch,
		AutoApply:      m.autoApply(),
		SearchInput:    m.inputHandler.TextInput().View(),
		PageMeta:       m.search.PageMeta(),
		IsFetching:     m.search.IsFetching(),
		Spinner:        m.spinner.View(),
		Err:            m.search.LastError(),
		StatusMessage:  m.statusMessage,
		HelpView:       m.help.View(m.inputHandler.Keys()),
	})
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.ConfirmAction, inputtypes.ToggleAction:
		opt, ok := m.cursorOption()
		if !ok {
			return nil
		}
		var err error
		if m.selection.Multiple() {
			err = m.Select(m.selection.Toggle(opt.Value)...)
		} else {
			err = m.Select(opt.Value)
		}
		if err != nil {
			return m.setStatus(fmt.Sprintf("Selection rejected: %v", err))
		}

	case inputtypes.PageAction:
		current := 0
		if meta := m.search.PageMeta(); meta != nil {
			current = meta.Page
		}
		cmd, err := m.GoToPage(current + a.Delta)
		if err != nil {
			return m.setStatus("No more pages")
		}
		return cmd

	case inputtypes.UpdateTextAction:
		return m.SetQuery(a.Text)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch && !m.autoApply() {
			return m.ApplySearch()
		}

	case inputtypes.CancelTextAction:
		// the draft is kept

	case inputtypes.ToggleHelpAction:
		return m.showHelp()

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// showHelp opens the full key reference in a pager, or expands the inline
// help when no program is attached
func (m *Model) showHelp() tea.Cmd {
	if m.helpOps == nil {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	content := m.helpRenderer.RenderHelpContent(m.search.HasSearch(), m.selection.Multiple())
	ops := m.helpOps
	program := m.program
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := ops.ShowHelpInPager(content)
		program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// startFetch turns a coordinator request into a command running the fetch
// function under the widget's lifetime context
func (m *Model) startFetch(req search.Request) tea.Cmd {
	log.Printf("Fetching page %d (query %q, token %d)", req.Params.Page, req.Params.Query, req.Token)
	m.publish(eventbus.FetchStartedEvent{WidgetID: m.id, Token: req.Token, Params: req.Params})

	fetch := m.settings.Fetch
	ctx := m.ctx
	fetchCmd := func() tea.Msg {
		result, err := fetch(ctx, req.Params)
		return fetchResultMsg{token: req.Token, params: req.Params, result: result, err: err}
	}

	if m.spinning {
		return fetchCmd
	}
	m.spinning = true
	return tea.Batch(fetchCmd, m.spinner.Tick)
}

func (m *Model) handleFetchResult(msg fetchResultMsg) tea.Cmd {
	var err error
	if msg.err != nil {
		err = &domain.FetchError{Params: msg.params, Err: msg.err}
	}

	out := m.search.Settle(msg.token, msg.result, err)
	switch {
	case out.Next != nil:
		return m.startFetch(*out.Next)

	case out.Stale:
		return nil

	case out.Err != nil:
		log.Printf("Fetch failed: %v", out.Err)
		m.publish(eventbus.FetchFailedEvent{WidgetID: m.id, Token: msg.token, Err: out.Err})
		return nil
	}

	m.selection.SetFetched(out.Result.Options)
	m.navigator.SetCount(len(m.selection.Options()))
	m.publish(eventbus.FetchCompletedEvent{
		WidgetID: m.id,
		Token:    msg.token,
		Count:    len(out.Result.Options),
		Search:   out.Result.Search,
	})
	return nil
}

// setStatus shows msg on the status line until the clear timer fires
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMessage = msg
	return tea.Tick(statusClearTime, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) cursorOption() (domain.Option, bool) {
	opts := m.selection.Options()
	cursor := m.navigator.GetCursor()
	if cursor < 0 || cursor >= len(opts) {
		return domain.Option{}, false
	}
	return opts[cursor], true
}

func (m *Model) autoApply() bool {
	cfg := m.search.Config()
	return cfg != nil && cfg.AutoApply
}

func (m *Model) updateViewportHeight() {
	if m.settings.Height > 0 {
		return
	}
	m.navigator.SetViewportHeight(m.height - chromeHeight)
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.settings.Bus == nil {
		return
	}
	m.settings.Bus.Publish(event)
}

// modelContext exposes widget state to the input handler
type modelContext struct {
	m *Model
}

func (c modelContext) HasSearch() bool    { return c.m.search.HasSearch() }
func (c modelContext) AutoApply() bool    { return c.m.autoApply() }
func (c modelContext) DraftQuery() string { return c.m.search.GetDraftQuery() }
func (c modelContext) Multiple() bool     { return c.m.selection.Multiple() }
func (c modelContext) OptionCount() int   { return len(c.m.selection.Options()) }

