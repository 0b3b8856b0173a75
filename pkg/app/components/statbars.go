package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/utils"
)

// MaxStat is the largest base stat value, used as the full bar.
const MaxStat = 255

const labelWidth = 9

// StatBars draws one horizontal bar per base stat in the item's type color.
type StatBars struct {
	rows  []utils.StatRow
	color lipgloss.Color
	width int
}

func NewStatBars(rows []utils.StatRow, typeName string, width int) *StatBars {
	return &StatBars{
		rows:  rows,
		color: lipgloss.Color(utils.ColorForType(typeName)),
		width: width,
	}
}

func (s *StatBars) SetWidth(width int) {
	s.width = width
}

func (s *StatBars) Total() int {
	total := 0
	for _, r := range s.rows {
		total += r.Value
	}
	return total
}

func (s *StatBars) View() string {
	if len(s.rows) == 0 {
		return styles.MutedStyle.Render("No stats available")
	}

	// label, space, bar, space, 3-digit value
	barWidth := max(10, s.width-labelWidth-5)
	filled := lipgloss.NewStyle().Foreground(s.color)

	var b strings.Builder
	for _, r := range s.rows {
		label := styles.MutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, r.Label))
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(renderBar(r.Value, MaxStat, barWidth, filled))
		b.WriteString(fmt.Sprintf(" %3d\n", r.Value))
	}
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, "Total")))
	b.WriteString(fmt.Sprintf(" %d", s.Total()))
	return b.String()
}

func renderBar(current, total, width int, style lipgloss.Style) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = min(max(filled, 0), width)

	return style.Render(strings.Repeat("█", filled)) +
		styles.BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}
