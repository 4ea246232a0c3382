// Package tui provides the Bubble Tea flashcard study interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fiszki/internal/deck"
	"github.com/verte-zerg/fiszki/internal/logging"
	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/selector"
	"github.com/verte-zerg/fiszki/internal/session"
	"github.com/verte-zerg/fiszki/internal/srs"
	"github.com/verte-zerg/fiszki/internal/store"
	"github.com/verte-zerg/fiszki/internal/vocab"
)

const maxCardWidth = 64

var (
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECEFF4")).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8B96"))
	answerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FA8D3"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#66717C")).Italic(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#66717C"))
	cardStyle    = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3C4650"))
)

// Model implements the Bubble Tea study UI.
type Model struct {
	config model.StudyConfig
	items  []*model.VocabularyItem
	base   []*model.VocabularyItem
	pool   []*model.VocabularyItem

	store  *store.Store
	sel    *selector.Selector
	logger *logging.Logger
	acc    *session.Accumulator
	now    func() time.Time
	save   func() error
	lang   string

	current *model.VocabularyItem
	flipped bool
	notice  string
	errMsg  string
	summary *model.SessionSummary

	help   help.Model
	width  int
	height int
}

// NewModel constructs a study model. items is the whole word list that is
// written back after each answer; pool is the filtered subset to study.
func NewModel(cfg model.StudyConfig, items, pool []*model.VocabularyItem, st *store.Store, sel *selector.Selector, logger *logging.Logger) *Model {
	if logger == nil {
		logger = logging.Nop()
	}
	if sel == nil {
		sel = selector.New()
	}
	m := &Model{
		config: cfg,
		items:  items,
		base:   pool,
		store:  st,
		sel:    sel,
		logger: logger.With("deck", cfg.DeckPath),
		now:    time.Now,
		help:   help.New(),
		lang:   deck.DetectLanguage(items),
	}
	m.save = func() error {
		return vocab.Save(m.config.DeckPath, m.items)
	}
	m.acc = session.New(func() time.Time { return m.now() }, cfg.DeckPath, unitLabel(cfg.Units))
	m.nextCard()
	return m
}

func unitLabel(units []string) string {
	return strings.Join(units, ",")
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.finish()
			return m, tea.Quit
		case m.current == nil:
			return m, nil
		case key.Matches(msg, keys.Flip):
			m.flipped = !m.flipped
			m.acc.Start()
			return m, nil
		case m.flipped && key.Matches(msg, keys.Knew):
			m.answer(true)
			return m, nil
		case m.flipped && key.Matches(msg, keys.Again):
			m.answer(false)
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderCard()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(keys))
	return body + "\n" + footerLine + "\n" + helpLine
}

// Summary returns the finished session, or nil while it is still running.
func (m *Model) Summary() *model.SessionSummary {
	return m.summary
}

func (m *Model) cardWidth() int {
	width := maxCardWidth
	if m.width > 0 && m.width-8 < width {
		width = m.width - 8
	}
	if width < 10 {
		width = 10
	}
	return width
}

func (m *Model) renderCard() string {
	if m.current == nil {
		msg := m.notice
		if msg == "" {
			msg = "No words to study."
		}
		return cardStyle.Render(metaStyle.Render(msg))
	}
	item := m.current
	width := m.cardWidth()
	lines := []string{wordStyle.Render(item.Word)}

	var meta []string
	if item.Pronunciation != "" {
		meta = append(meta, "["+item.Pronunciation+"]")
	}
	if item.PartOfSpeech != "" {
		meta = append(meta, "("+item.PartOfSpeech+")")
	}
	if item.Unit != "" {
		meta = append(meta, "unit "+item.Unit)
	}
	if item.Page > 0 {
		meta = append(meta, fmt.Sprintf("p. %d", item.Page))
	}
	if len(meta) > 0 {
		lines = append(lines, metaStyle.Render(strings.Join(meta, " ")))
	}
	lines = append(lines, "")

	if !m.flipped {
		lines = append(lines, hintStyle.Render("press space to show the answer"))
	} else {
		lines = append(lines, wrapText(item.Definition, width)...)
		if item.Translation != "" {
			for _, line := range wrapText("= "+item.Translation, width) {
				lines = append(lines, answerStyle.Render(line))
			}
			if article := deck.Article(item.Translation); m.lang == deck.LanguageGerman && article != "" {
				lines = append(lines, metaStyle.Render("article: "+article))
			}
		}
		lines = append(lines, "", hintStyle.Render("did you know it?"))
	}
	lines = append(lines, "", metaStyle.Render(m.itemStatus(item)))
	return cardStyle.Width(width + 6).Render(strings.Join(lines, "\n"))
}

func (m *Model) itemStatus(item *model.VocabularyItem) string {
	now := m.now()
	status := srs.StatusOf(item, now)
	parts := []string{status.Symbol() + " " + strings.ReplaceAll(status.String(), "_", " ")}
	if item.Attempts() > 0 {
		parts = append(parts, fmt.Sprintf("%d✓ %d✗ (%.0f%%)", item.CorrectCount, item.WrongCount, item.Accuracy()))
	}
	parts = append(parts, fmt.Sprintf("ease %.2f", item.Ease))
	if wait := item.NextReview.Sub(now); item.Repetitions > 0 && wait > 0 {
		parts = append(parts, fmt.Sprintf("next in %s", formatInterval(int(math.Ceil(wait.Minutes())))))
	}
	return strings.Join(parts, " · ")
}

func (m *Model) renderFooter() string {
	correct, wrong, elapsed := m.acc.Snapshot()
	segments := []string{
		correctStyle.Render(fmt.Sprintf("%d✓", correct)) + " " + wrongStyle.Render(fmt.Sprintf("%d✗", wrong)),
		fmt.Sprintf("Accuracy %.1f%%", session.Accuracy(correct, wrong)),
		"Time " + formatElapsed(elapsed),
	}
	counts := srs.CountStatuses(m.base, m.now())
	segments = append(segments, fmt.Sprintf("Due %d/%d", counts.DueNow, counts.Total))
	if m.errMsg != "" {
		segments = append(segments, wrongStyle.Render(m.errMsg))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func formatInterval(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%.1fh", float64(minutes)/60)
	default:
		return fmt.Sprintf("%.1fd", float64(minutes)/(24*60))
	}
}

func (m *Model) answer(correct bool) {
	item := m.current
	now := m.now()
	if err := srs.Answer(item, correct, now); err != nil {
		m.errMsg = "could not schedule word"
		m.logger.Error("failed to schedule answer", "word", item.Word, "error", err)
		m.nextCard()
		return
	}
	m.acc.RecordItem(item, correct)
	m.logger.Debug("answer recorded",
		"word", item.Word,
		"correct", correct,
		"ease", item.Ease,
		"interval_min", item.Interval,
		"repetitions", item.Repetitions,
	)
	if err := m.save(); err != nil {
		m.errMsg = "could not save word list"
		m.logger.Error("failed to save word list", "error", err)
	} else {
		m.errMsg = ""
	}
	m.nextCard()
}

func (m *Model) nextCard() {
	m.flipped = false
	m.pool = m.base
	if m.config.DueOnly {
		m.pool = srs.DueItems(m.base, m.now())
	}
	next, err := m.sel.Select(m.pool)
	if err != nil {
		m.current = nil
		if errors.Is(err, selector.ErrEmptyPool) {
			m.notice = m.emptyNotice()
			return
		}
		m.notice = "No words to study."
		m.logger.Error("failed to select word", "error", err)
		return
	}
	m.current = next
}

func (m *Model) emptyNotice() string {
	if !m.config.DueOnly || len(m.base) == 0 {
		return "No words to study."
	}
	var soonest time.Time
	for _, item := range m.base {
		if soonest.IsZero() || item.NextReview.Before(soonest) {
			soonest = item.NextReview
		}
	}
	wait := soonest.Sub(m.now()).Round(time.Minute)
	return fmt.Sprintf("Nothing due. Next review in %s.", formatInterval(int(wait.Minutes())))
}

func (m *Model) finish() {
	if m.summary != nil {
		return
	}
	summary := m.acc.Finish()
	m.summary = &summary
	if summary.WordsReviewed() == 0 {
		return
	}
	m.logger.Info("session finished",
		"words", summary.WordsReviewed(),
		"correct", summary.Correct,
		"wrong", summary.Wrong,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	if m.store == nil {
		return
	}
	if _, err := m.store.InsertSession(context.Background(), summary); err != nil {
		m.logger.Error("failed to save session", "error", err)
	}
}
