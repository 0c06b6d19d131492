package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mtlxbridge/mtlxbridge/pkg/pipeline"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

// List styles
var (
	listPendingStyle = lipgloss.NewStyle().Foreground(colorDim)
	listActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDoneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	listFailedStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// materialState tracks one material's position in the export run.
type materialState int

const (
	statePending materialState = iota
	stateRunning
	stateDone
	stateFailed
)

// resultMsg carries one finished material into the model.
type resultMsg struct {
	index  int
	result pipeline.MaterialResult
}

// startedMsg marks a material as picked up by a worker.
type startedMsg struct{ index int }

// doneMsg ends the program once every material has finished.
type doneMsg struct{}

// ExportModel is the bubbletea model for the interactive export display.
type ExportModel struct {
	Materials []string
	states    []materialState
	results   []pipeline.MaterialResult
	finished  int
	quitting  bool
}

// NewExportModel creates a model covering the given materials.
func NewExportModel(materials []string) ExportModel {
	return ExportModel{
		Materials: materials,
		states:    make([]materialState, len(materials)),
		results:   make([]pipeline.MaterialResult, len(materials)),
	}
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case startedMsg:
		if m.states[msg.index] == statePending {
			m.states[msg.index] = stateRunning
		}
	case resultMsg:
		m.results[msg.index] = msg.result
		if msg.result.Err != nil {
			m.states[msg.index] = stateFailed
		} else {
			m.states[msg.index] = stateDone
		}
		m.finished++
	case doneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m ExportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Exporting Materials"))
	b.WriteString("\n")
	b.WriteString(listPendingStyle.Render("q quit"))
	b.WriteString("\n\n")

	for i, name := range m.Materials {
		var line string
		switch m.states[i] {
		case statePending:
			line = listPendingStyle.Render("  · " + name)
		case stateRunning:
			line = listActiveStyle.Render("  » " + name)
		case stateDone:
			r := m.results[i]
			detail := ""
			if r.CacheHit {
				detail = listPendingStyle.Render("  (cached)")
			} else if t := r.Translation; t != nil && len(t.Unsupported) > 0 {
				detail = StyleWarning.Render(fmt.Sprintf("  (%d unsupported)", len(t.Unsupported)))
			}
			line = listDoneStyle.Render("  "+iconSuccess+" "+name) + detail
		case stateFailed:
			line = listFailedStyle.Render("  " + iconError + " " + name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listPendingStyle.Render(fmt.Sprintf("  [%d/%d]", m.finished, len(m.Materials))))
	b.WriteString("\n")

	return b.String()
}

// Results returns the per-material outcomes in display order.
func (m ExportModel) Results() []pipeline.MaterialResult {
	return m.results
}

// runTranslateTUI drives the export through the interactive display,
// translating materials sequentially and streaming results to the model.
func (c *CLI) runTranslateTUI(ctx context.Context, runner *pipeline.Runner, pipeOpts pipeline.Options, opts translateOpts) error {
	scene, err := source.ReadSceneFile(pipeOpts.Input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", pipeOpts.Input, err)
	}

	graphs := scene.Materials
	if len(pipeOpts.Materials) > 0 {
		want := make(map[string]bool, len(pipeOpts.Materials))
		for _, name := range pipeOpts.Materials {
			want[name] = true
		}
		graphs = nil
		for _, g := range scene.Materials {
			if want[g.Material] {
				graphs = append(graphs, g)
			}
		}
	}
	if len(graphs) == 0 {
		return fmt.Errorf("no matching materials in scene")
	}

	names := make([]string, len(graphs))
	for i, g := range graphs {
		names[i] = g.Material
	}

	model := NewExportModel(names)
	prog := tea.NewProgram(model, tea.WithContext(ctx))

	go func() {
		for i, g := range graphs {
			prog.Send(startedMsg{index: i})
			res := runner.ExportMaterial(ctx, g, pipeOpts)
			prog.Send(resultMsg{index: i, result: res})
		}
		prog.Send(doneMsg{})
	}()

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run display: %w", err)
	}

	fm, ok := final.(ExportModel)
	if !ok || fm.quitting {
		return nil
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	failed := 0
	for _, r := range fm.Results() {
		if r.Err != nil {
			printError("%s: %v", r.Material, r.Err)
			failed++
			continue
		}
		path := filepath.Join(opts.output, materialFileName(r.Material))
		if err := os.WriteFile(path, r.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	if failed > 0 {
		return fmt.Errorf("%d material(s) failed", failed)
	}
	return nil
}
