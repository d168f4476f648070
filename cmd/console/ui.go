package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/umbraworks/darkfall/internal/services"
	"github.com/umbraworks/darkfall/pkg/catalog"
	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
	"github.com/umbraworks/darkfall/pkg/textfilter"
)

const memoPlaceholder = "自由記述（任意、Ctrl+Dで確定）"

type step int

const (
	stepGenre step = iota
	stepMode
	stepTraits
	stepTraitMemo
	stepProtagonist
	stepDarknessOptions
	stepDarknessMemo
	stepPreset
	stepGenerating
	stepResult
)

// ConsoleUI is the BubbleTea model that runs the generator wizard.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	catalog *catalog.Catalog
	store   *provider.Store
	openAI  *services.OpenAIProvider
	service *services.GenerationService

	step     step
	cursor   int
	width    int
	height   int
	err      error
	statused string // transient status line, e.g. after a clipboard copy

	// Wizard state
	genreIdx         int
	mode             domain.InputMode
	selectedTraits   map[int]bool
	protagonistScore int
	categoryIdx      int
	selectedOptions  map[domain.AttributeCategory]map[int]bool
	presetIdx        int
	memo             textarea.Model
	traitMemo        string
	darknessMemo     string

	// Result state
	result         *services.GenerationResult
	resultViewport viewport.Model
	ready          bool
	progressTick   int

	// Settings modal state
	showSettings   bool
	settingsPhase  int // 0: key entry, 1: model selection
	keyInput       textarea.Model
	models         []string
	modelIdx       int
	loadingModels  bool
	settingsErr    error
	showQuitModal  bool
	copiedAt       time.Time
	generatedAtStr string
}

type generationDoneMsg struct {
	result *services.GenerationResult
	err    error
}

type modelsLoadedMsg struct {
	models []string
	err    error
}

type progressTickMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	panelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(3).
			PaddingRight(2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewConsoleUI(cat *catalog.Catalog, store *provider.Store, openAI *services.OpenAIProvider, service *services.GenerationService) ConsoleUI {
	memo := textarea.New()
	memo.Placeholder = memoPlaceholder
	memo.CharLimit = 500
	memo.SetWidth(60)
	memo.SetHeight(4)
	memo.ShowLineNumbers = false

	keyInput := textarea.New()
	keyInput.Placeholder = "OpenAI APIキーを入力（空でクリア、Enterで確定）"
	keyInput.CharLimit = 200
	keyInput.SetWidth(60)
	keyInput.SetHeight(1)
	keyInput.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		catalog:          cat,
		store:            store,
		openAI:           openAI,
		service:          service,
		mode:             domain.ModeAuto,
		selectedTraits:   make(map[int]bool),
		protagonistScore: 3,
		selectedOptions:  make(map[domain.AttributeCategory]map[int]bool),
		presetIdx:        presetIndex(domain.DefaultPreset()),
		memo:             memo,
		keyInput:         keyInput,
		resultViewport:   vp,
	}
}

func presetIndex(p domain.DarknessPreset) int {
	for i, preset := range domain.DarknessPresets() {
		if preset == p {
			return i
		}
	}
	return 1
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showSettings {
		return m.updateSettings(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultViewport.Width = msg.Width - 8
		m.resultViewport.Height = msg.Height - 6
		m.memo.SetWidth(min(msg.Width-10, 80))
		m.ready = true
		if m.result != nil {
			m.writeResultContent()
		}

	case generationDoneMsg:
		if m.step == stepGenerating {
			if msg.err != nil {
				m.err = msg.err
				m.step = stepPreset
			} else {
				m.result = msg.result
				m.generatedAtStr = msg.result.Character.GeneratedAt.Format("2006-01-02 15:04:05")
				m.step = stepResult
				m.writeResultContent()
			}
		}
		return m, nil

	case progressTickMsg:
		if m.step == stepGenerating {
			m.progressTick++
			return m, progressTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.step {
	case stepTraitMemo, stepDarknessMemo:
		m.memo, cmd = m.memo.Update(msg)
	case stepResult:
		m.resultViewport, cmd = m.resultViewport.Update(msg)
	}
	return m, cmd
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.showQuitModal = true
		return m, nil
	}

	switch m.step {
	case stepTraitMemo, stepDarknessMemo:
		return m.handleMemoKey(msg)
	case stepGenerating:
		return m, nil
	case stepResult:
		return m.handleResultKey(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.stepBack()
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < m.listLength()-1 {
			m.cursor++
		}
	case tea.KeySpace:
		m.toggleCurrent()
	case tea.KeyEnter:
		return m.stepForward()
	default:
		if msg.String() == "s" && m.step == stepGenre {
			m.showSettings = true
			m.settingsPhase = 0
			m.settingsErr = nil
			m.keyInput.SetValue(m.store.APIKey(provider.TypeOpenAI))
			m.keyInput.Focus()
			return m, textarea.Blink
		}
	}
	return m, nil
}

func (m ConsoleUI) handleMemoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.memo.Blur()
		m.stepBack()
		return m, nil
	case tea.KeyCtrlD:
		value := textfilter.NormalizeFreeText(m.memo.Value())
		m.memo.Blur()
		if m.step == stepTraitMemo {
			m.traitMemo = value
			m.step = stepProtagonist
			m.cursor = m.protagonistScore - 1
		} else {
			m.darknessMemo = value
			m.step = stepPreset
			m.cursor = m.presetIdx
		}
		m.memo.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.memo, cmd = m.memo.Update(msg)
	return m, cmd
}

func (m ConsoleUI) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		if m.result != nil {
			if err := clipboard.WriteAll(m.result.Character.Narrative); err != nil {
				m.statused = errorStyle.Render("クリップボードへのコピーに失敗しました")
			} else {
				m.statused = checkedStyle.Render("クリップボードにコピーしました")
				m.copiedAt = time.Now()
			}
		}
		return m, nil
	case "r":
		fresh := NewConsoleUI(m.catalog, m.store, m.openAI, m.service)
		fresh.width = m.width
		fresh.height = m.height
		fresh.ready = m.ready
		fresh.resultViewport.Width = m.resultViewport.Width
		fresh.resultViewport.Height = m.resultViewport.Height
		return fresh, nil
	case "q":
		m.showQuitModal = true
		return m, nil
	}

	if msg.Type == tea.KeyEsc {
		m.showQuitModal = true
		return m, nil
	}

	var cmd tea.Cmd
	m.resultViewport, cmd = m.resultViewport.Update(msg)
	return m, cmd
}

// listLength returns the number of rows in the current selection list.
func (m ConsoleUI) listLength() int {
	switch m.step {
	case stepGenre:
		return len(m.catalog.WorldGenres())
	case stepMode:
		return 2
	case stepTraits:
		return len(m.catalog.CharacterTraits())
	case stepProtagonist:
		return 5
	case stepDarknessOptions:
		return len(m.currentCategoryOptions())
	case stepPreset:
		return len(domain.DarknessPresets())
	}
	return 0
}

func (m ConsoleUI) currentCategory() domain.AttributeCategory {
	return domain.DarknessCategories()[m.categoryIdx]
}

func (m ConsoleUI) currentCategoryOptions() []domain.AttributeOption {
	return m.catalog.DarknessOptions()[m.currentCategory()]
}

func (m *ConsoleUI) toggleCurrent() {
	switch m.step {
	case stepTraits:
		m.selectedTraits[m.cursor] = !m.selectedTraits[m.cursor]
	case stepDarknessOptions:
		category := m.currentCategory()
		if m.selectedOptions[category] == nil {
			m.selectedOptions[category] = make(map[int]bool)
		}
		m.selectedOptions[category][m.cursor] = !m.selectedOptions[category][m.cursor]
	}
}

func (m *ConsoleUI) stepBack() {
	m.err = nil
	switch m.step {
	case stepMode:
		m.step = stepGenre
		m.cursor = m.genreIdx
	case stepTraits:
		m.step = stepMode
		m.cursor = 0
	case stepProtagonist:
		if m.mode == domain.ModeSemiAuto {
			m.step = stepTraits
		} else {
			m.step = stepMode
		}
		m.cursor = 0
	case stepDarknessOptions:
		if m.categoryIdx > 0 {
			m.categoryIdx--
		} else {
			m.step = stepProtagonist
		}
		m.cursor = 0
	case stepPreset:
		m.step = stepDarknessOptions
		m.categoryIdx = len(domain.DarknessCategories()) - 1
		m.cursor = 0
	}
}

func (m ConsoleUI) stepForward() (tea.Model, tea.Cmd) {
	m.err = nil
	switch m.step {
	case stepGenre:
		m.genreIdx = m.cursor
		m.step = stepMode
		m.cursor = 0
	case stepMode:
		if m.cursor == 0 {
			m.mode = domain.ModeAuto
			m.step = stepTraitMemo
			m.memo.Placeholder = memoPlaceholder
			m.memo.Focus()
			return m, textarea.Blink
		}
		m.mode = domain.ModeSemiAuto
		m.step = stepTraits
		m.cursor = 0
	case stepTraits:
		m.step = stepTraitMemo
		m.memo.Focus()
		return m, textarea.Blink
	case stepProtagonist:
		m.protagonistScore = m.cursor + 1
		m.step = stepDarknessOptions
		m.categoryIdx = 0
		m.cursor = 0
	case stepDarknessOptions:
		if m.categoryIdx < len(domain.DarknessCategories())-1 {
			m.categoryIdx++
			m.cursor = 0
		} else {
			m.step = stepDarknessMemo
			m.memo.Focus()
			return m, textarea.Blink
		}
	case stepPreset:
		m.presetIdx = m.cursor
		m.step = stepGenerating
		m.progressTick = 0
		return m, tea.Batch(m.runGeneration(), progressTick())
	}
	return m, nil
}

func (m ConsoleUI) buildRequest() (domain.CharacterInput, domain.DarknessSelection) {
	genres := m.catalog.WorldGenres()
	genre := genres[m.genreIdx]

	var traits []domain.AttributeOption
	if m.mode == domain.ModeSemiAuto {
		for i, trait := range m.catalog.CharacterTraits() {
			if m.selectedTraits[i] {
				traits = append(traits, trait)
			}
		}
	}

	input := domain.CharacterInput{
		Mode:             m.mode,
		WorldGenre:       &genre,
		CharacterTraits:  traits,
		TraitFreeText:    m.traitMemo,
		ProtagonistScore: m.protagonistScore,
		DarknessFreeText: m.darknessMemo,
	}

	selections := make(map[domain.AttributeCategory][]domain.AttributeOption)
	grouped := m.catalog.DarknessOptions()
	for _, category := range domain.DarknessCategories() {
		picked := m.selectedOptions[category]
		for i, option := range grouped[category] {
			if picked[i] {
				selections[category] = append(selections[category], option)
			}
		}
	}

	selection := domain.DarknessSelection{
		Selections: selections,
		Preset:     domain.DarknessPresets()[m.presetIdx],
	}
	return input, selection
}

func (m ConsoleUI) runGeneration() tea.Cmd {
	input, selection := m.buildRequest()
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		result, err := service.Generate(ctx, input, selection)
		return generationDoneMsg{result, err}
	}
}

func (m *ConsoleUI) writeResultContent() {
	width := m.resultViewport.Width - 2
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("DARKFALL") + "\n\n")
	if m.result.Warning != "" {
		content.WriteString(warningStyle.Render(wordwrap.String(m.result.Warning, width)) + "\n\n")
	}
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")
	content.WriteString(wordwrap.String(m.result.Character.Narrative, width))
	content.WriteString("\n")
	m.resultViewport.SetContent(content.String())
	m.resultViewport.GotoTop()
}

func (m ConsoleUI) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case modelsLoadedMsg:
		m.loadingModels = false
		if msg.err != nil {
			m.settingsErr = msg.err
		} else {
			m.models = msg.models
			m.store.SetAvailableModels(provider.TypeOpenAI, msg.models)
			m.modelIdx = 0
			for i, model := range msg.models {
				if model == m.store.SelectedModel(provider.TypeOpenAI) {
					m.modelIdx = i
					break
				}
			}
			m.settingsPhase = 1
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showSettings = false
			m.keyInput.Blur()
			return m, nil
		case tea.KeyEnter:
			if m.settingsPhase == 0 {
				apiKey := strings.TrimSpace(m.keyInput.Value())
				m.store.SetAPIKey(provider.TypeOpenAI, apiKey)
				m.keyInput.Blur()
				if apiKey == "" {
					m.showSettings = false
					return m, nil
				}
				m.loadingModels = true
				m.settingsErr = nil
				return m, m.loadModels(apiKey)
			}
			if len(m.models) > 0 {
				m.store.SetSelectedModel(provider.TypeOpenAI, m.models[m.modelIdx])
			}
			m.showSettings = false
			return m, nil
		case tea.KeyUp:
			if m.settingsPhase == 1 && m.modelIdx > 0 {
				m.modelIdx--
			}
			return m, nil
		case tea.KeyDown:
			if m.settingsPhase == 1 && m.modelIdx < len(m.models)-1 {
				m.modelIdx++
			}
			return m, nil
		}
	}

	if m.settingsPhase == 0 {
		var cmd tea.Cmd
		m.keyInput, cmd = m.keyInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConsoleUI) loadModels(apiKey string) tea.Cmd {
	openAI := m.openAI
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		models, err := openAI.ListAvailableModels(ctx, apiKey)
		return modelsLoadedMsg{models, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showSettings {
		return m.renderSettings()
	}

	switch m.step {
	case stepGenre:
		return m.renderList("世界観ジャンルを選択", m.genreNames(),
			"↑/↓で移動、Enterで決定、sで設定、Ctrl+Cで終了")
	case stepMode:
		return m.renderList("モードを選択", []string{
			domain.ModeAuto.DisplayName() + " - 属性は自動で決まります",
			domain.ModeSemiAuto.DisplayName() + " - 属性を自分で選びます",
		}, "↑/↓で移動、Enterで決定、Escで戻る")
	case stepTraits:
		return m.renderList("キャラクター属性を選択（1つ以上）", m.traitNames(),
			"Spaceで選択、Enterで次へ、Escで戻る")
	case stepTraitMemo:
		return m.renderMemo("キャラクター属性メモ")
	case stepProtagonist:
		return m.renderList("主人公度を選択", m.protagonistLabels(),
			"↑/↓で移動、Enterで決定、Escで戻る")
	case stepDarknessOptions:
		title := fmt.Sprintf("闇堕ちカテゴリ %d/%d: %s",
			m.categoryIdx+1, len(domain.DarknessCategories()), m.currentCategory().DisplayName())
		return m.renderList(title, m.darknessOptionNames(),
			"Spaceで選択、Enterで次へ、Escで戻る")
	case stepDarknessMemo:
		return m.renderMemo("闇堕ちメモ")
	case stepPreset:
		return m.renderList("闇堕ち度を選択", m.presetLabels(),
			"↑/↓で移動、Enterで生成開始、Escで戻る")
	case stepGenerating:
		return m.renderGenerating()
	case stepResult:
		return m.renderResult()
	}
	return ""
}

func (m ConsoleUI) genreNames() []string {
	genres := m.catalog.WorldGenres()
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return names
}

func (m ConsoleUI) traitNames() []string {
	traits := m.catalog.CharacterTraits()
	names := make([]string, len(traits))
	for i, trait := range traits {
		marker := "[ ] "
		if m.selectedTraits[i] {
			marker = checkedStyle.Render("[x] ")
		}
		names[i] = marker + trait.Name
	}
	return names
}

func (m ConsoleUI) darknessOptionNames() []string {
	options := m.currentCategoryOptions()
	picked := m.selectedOptions[m.currentCategory()]
	names := make([]string, len(options))
	for i, option := range options {
		marker := "[ ] "
		if picked[i] {
			marker = checkedStyle.Render("[x] ")
		}
		names[i] = marker + option.Name
	}
	return names
}

func (m ConsoleUI) protagonistLabels() []string {
	labels := make([]string, 0, 5)
	for score := 1; score <= 5; score++ {
		label := fmt.Sprintf("%d/5", score)
		if alignment, ok := domain.AlignmentFromScore(score); ok {
			label += " " + alignment.PreviewText
		}
		labels = append(labels, label)
	}
	return labels
}

func (m ConsoleUI) presetLabels() []string {
	presets := domain.DarknessPresets()
	labels := make([]string, len(presets))
	for i, preset := range presets {
		labels[i] = preset.FormatValueWithLabel() + " - " + preset.Description()
	}
	return labels
}

func (m ConsoleUI) renderList(title string, items []string, help string) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(title) + "\n\n")
	for i, item := range items {
		if i == m.cursor {
			content.WriteString(selectedItemStyle.Render("▶ "+item) + "\n")
		} else {
			content.WriteString(itemStyle.Render("  "+item) + "\n")
		}
	}
	content.WriteString("\n" + helpStyle.Render(help))
	if m.err != nil {
		content.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}
	return panelStyle.Render(content.String())
}

func (m ConsoleUI) renderMemo(title string) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(title) + "\n\n")
	content.WriteString(m.memo.View())
	content.WriteString("\n\n" + helpStyle.Render("Ctrl+Dで確定、Escで戻る"))
	return panelStyle.Render(content.String())
}

func (m ConsoleUI) renderGenerating() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("生成中...") + "\n\n")
	content.WriteString(m.renderProgressBar())
	return panelStyle.Render(content.String())
}

func (m ConsoleUI) renderResult() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	status := m.statused
	if status != "" && time.Since(m.copiedAt) > 3*time.Second {
		status = ""
	}

	footer := helpStyle.Render(fmt.Sprintf("生成時刻: %s   cでコピー、rで最初から、qで終了", m.generatedAtStr))
	if status != "" {
		footer += "   " + status
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.resultViewport.View(),
		"",
		footer,
	))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("終了しますか？"))
	content.WriteString("\n\n")
	content.WriteString(helpStyle.Render("Y: 終了 / N: 続ける"))

	modal := modalStyle.Width(40).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderSettings() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("OpenAI設定") + "\n\n")

	switch {
	case m.loadingModels:
		content.WriteString(warningStyle.Render("モデル一覧を取得しています..."))
	case m.settingsPhase == 0:
		content.WriteString(m.keyInput.View())
		content.WriteString("\n\n" + helpStyle.Render("Enterで確定、Escで閉じる"))
	default:
		content.WriteString("モデルを選択:\n\n")
		for i, model := range m.models {
			if i == m.modelIdx {
				content.WriteString(selectedItemStyle.Render("▶ "+model) + "\n")
			} else {
				content.WriteString(itemStyle.Render("  "+model) + "\n")
			}
		}
		content.WriteString("\n" + helpStyle.Render("↑/↓で移動、Enterで決定、Escで閉じる"))
	}

	if m.settingsErr != nil {
		content.WriteString("\n\n" + errorStyle.Render(m.settingsErr.Error()))
	}

	modal := modalStyle.Width(70).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

// renderProgressBar draws the animated bar shown while a generation runs.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.width - 10
	if usable <= 0 {
		usable = 30
	}
	if usable > 60 {
		usable = 60
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
