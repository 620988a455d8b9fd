package layout

import "fmt"

const (
	bannerMinHeadroom = 100.0
	bannerMinY        = 50.0
	bannerLift        = 35.0
	bannerInset       = 10.0
)

// Compose renders one complete card page: base canvas, confirmation banner,
// contact table, info panel. All truncation and classification happens in the
// engines it delegates to.
func (e *Engine) Compose(cv Canvas, m TextMeasurer, page Page) error {
	card := e.cfg.Card
	if err := cv.CreateBase(card.Width, card.Height, e.cfg.Template.DefaultImage); err != nil {
		return fmt.Errorf("create card base for %s: %w", page.Callsign, err)
	}

	tableY := card.Height * e.cfg.Table.YPercent
	if tableY > bannerMinHeadroom {
		e.drawBanner(cv, m, page, tableY)
	}

	bottom := e.drawTable(cv, page)
	e.drawInfoPanel(cv, m, page, bottom)
	return nil
}

// drawBanner writes the confirmation line above the table, with an optional
// measured background box.
func (e *Engine) drawBanner(cv Canvas, m TextMeasurer, page Page, tableY float64) {
	y := tableY - bannerLift
	if y < bannerMinY {
		y = bannerMinY
	}

	plural := ""
	if page.TotalRecords > 1 {
		plural = "s"
	}
	text := fmt.Sprintf("QSL - Confirming %d QSO%s with %s", page.TotalRecords, plural, page.Callsign)
	if page.Total > 1 {
		text += fmt.Sprintf(" (Card %d of %d)", page.Index, page.Total)
	}

	x := e.cfg.Table.X + bannerInset
	if e.cfg.Confirmation.ShowBorder {
		w := e.measure(m, "confirmation_text", text)
		h := e.roleHeight(m, "confirmation_text", text)
		cv.FillRect(x-bannerInset, y-5, x+w+bannerInset, y+h+5, e.pal.rowBg)
		cv.StrokeRect(x-bannerInset, y-5, x+w+bannerInset, y+h+5, e.pal.border, 1)
	}
	cv.DrawText(x, y, text, ParseColor(e.cfg.Confirmation.TextColor), "confirmation_text")
}

// roleHeight is the measured line height for a role, falling back to the
// configured font size when measurement is unavailable.
func (e *Engine) roleHeight(m TextMeasurer, role, text string) float64 {
	if m != nil {
		if _, h, err := m.Measure(text, role); err == nil && h > 0 {
			return h
		}
	}
	if fr, ok := e.cfg.Fonts.Roles[role]; ok && fr.Size > 0 {
		return fr.Size
	}
	return fallbackCharWidth * 2
}
