package tui

import (
	"errors"
	"fmt"
	"strings"

	"alphabetize-cli/internal/alphabetize"
	"alphabetize-cli/internal/model"
	"alphabetize-cli/internal/mutate"
	"alphabetize-cli/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const buttonLabel = "Alphabetize Collections & Objects"

type runDoneMsg struct {
	doc    *model.Document
	report alphabetize.Report
	err    error
}

type reloadDoneMsg struct {
	doc *model.Document
	err error
}

type panelModel struct {
	store  store.Store
	doc    *model.Document
	glyphs glyphSet
	log    zerolog.Logger
	keys   keyMap

	vp     viewport.Model
	width  int
	height int

	running   bool
	status    string
	statusErr bool
}

func newPanelModel(s store.Store, opts Options) (panelModel, error) {
	doc, err := s.Load()
	if err != nil {
		return panelModel{}, err
	}
	m := panelModel{
		store:  s,
		doc:    doc,
		glyphs: parseGlyphSet(opts.Glyphs),
		log:    opts.Logger,
		keys:   defaultKeyMap(),
		vp:     viewport.New(80, 20),
		width:  80,
		height: 24,
	}
	m.refresh()
	return m, nil
}

func (m panelModel) Init() tea.Cmd { return nil }

func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case runDoneMsg:
		m.running = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.doc = msg.doc
		m.setStatus(fmt.Sprintf("Alphabetized %d collections (%d relinks).", msg.report.Containers, msg.report.Relinks), false)
		m.refresh()
		return m, nil

	case reloadDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.doc = msg.doc
		m.setStatus("Reloaded.", false)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Run):
			if m.running {
				return m, nil
			}
			m.running = true
			m.setStatus("Alphabetizing…", false)
			return m, m.runCmd()
		case key.Matches(msg, m.keys.Reload):
			return m, m.reloadCmd()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *panelModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// refresh resizes the viewport to the space left by the chrome and re-renders the tree.
func (m *panelModel) refresh() {
	chrome := 5 // title, button, blank, status, help
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	m.vp.Width = m.width
	m.vp.Height = h
	m.vp.SetContent(strings.Join(treeLines(m.doc, m.glyphs, m.width), "\n"))
}

func (m panelModel) runCmd() tea.Cmd {
	s := m.store
	log := m.log
	return func() tea.Msg {
		doc, report, err := runAlphabetize(s, log)
		return runDoneMsg{doc: doc, report: report, err: err}
	}
}

func (m panelModel) reloadCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		doc, err := s.Load()
		return reloadDoneMsg{doc: doc, err: err}
	}
}

// runAlphabetize loads the workspace, alphabetizes it, saves the result and
// records the forest.alphabetize event.
func runAlphabetize(s store.Store, log zerolog.Logger) (*model.Document, alphabetize.Report, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, alphabetize.Report{}, err
	}
	opts := alphabetize.DefaultOptions()
	opts.Logger = log
	res, err := mutate.Alphabetize(doc, opts)
	if errors.Is(err, mutate.ErrEmptyForest) {
		return nil, alphabetize.Report{}, errors.New("nothing to alphabetize: the workspace has no scenes")
	}
	if err != nil {
		return nil, res.Report, err
	}
	if err := s.Commit(&res.Document, "panel", store.EventForestAlphabetize, res.Document.ID, res.EventPayload); err != nil {
		return nil, res.Report, err
	}
	return &res.Document, res.Report, nil
}

func (m panelModel) View() string {
	title := styleHeader().Render("Alphabetize")
	button := styleButton(!m.running).Render(buttonLabel)
	status := styleStatus(m.statusErr).Render(m.status)
	help := styleMuted().Render(m.keys.help())
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		button,
		"",
		m.vp.View(),
		status,
		help,
	)
}
