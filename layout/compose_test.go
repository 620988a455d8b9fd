package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qslgen/config"
	"qslgen/record"
)

func bannerOps(cv *stubCanvas) []drawOp {
	return opsByRole(cv, "confirmation_text")
}

func TestComposeMultiCardBanner(t *testing.T) {
	cfg := config.Default()
	e := NewEngine(cfg, WithMessagePicker(func(n int) int { return 0 }))
	m := stubMeasurer{charW: 7}

	var recs []record.Raw
	for i := 0; i < 7; i++ {
		recs = append(recs, contact("KA1ABC", nil))
	}
	pages := Paginate(recs, cfg.Table.MaxContacts)
	require.Len(t, pages, 2)

	cv := &stubCanvas{}
	require.NoError(t, e.Compose(cv, m, pages[1]))

	assert.Equal(t, cfg.Card.Width, cv.baseW)
	assert.Equal(t, cfg.Card.Height, cv.baseH)

	banner := bannerOps(cv)
	require.Len(t, banner, 1)
	assert.Equal(t, "QSL - Confirming 7 QSOs with KA1ABC (Card 2 of 2)", banner[0].text)
	assert.InDelta(t, cfg.Table.X+bannerInset, banner[0].x0, 1e-9)
	assert.InDelta(t, cfg.Card.Height*cfg.Table.YPercent-bannerLift, banner[0].y0, 1e-9)
}

func TestComposeSingleContactBanner(t *testing.T) {
	cfg := config.Default()
	e := NewEngine(cfg)
	m := stubMeasurer{charW: 7}

	pages := Paginate([]record.Raw{contact("W2XYZ", nil)}, cfg.Table.MaxContacts)
	require.Len(t, pages, 1)

	cv := &stubCanvas{}
	require.NoError(t, e.Compose(cv, m, pages[0]))

	banner := bannerOps(cv)
	require.Len(t, banner, 1)
	// Singular QSO, and no card counter on a one-page callsign.
	assert.Equal(t, "QSL - Confirming 1 QSO with W2XYZ", banner[0].text)
}

func TestComposeSkipsBannerWithoutHeadroom(t *testing.T) {
	cfg := config.Default()
	cfg.Table.YPercent = 0.05 // table starts 52px down, too close to the edge
	e := NewEngine(cfg)
	m := stubMeasurer{charW: 7}

	cv := &stubCanvas{}
	require.NoError(t, e.Compose(cv, m, auxPage(contact("KA1ABC", nil))))
	assert.Empty(t, bannerOps(cv))
}

func TestComposeBannerBorder(t *testing.T) {
	cfg := config.Default()
	cfg.Confirmation.ShowBorder = true
	cfg.Confirmation.TextColor = "#0066cc"
	e := NewEngine(cfg)
	m := stubMeasurer{charW: 7}

	cv := &stubCanvas{}
	require.NoError(t, e.Compose(cv, m, auxPage(contact("KA1ABC", nil))))

	banner := bannerOps(cv)
	require.Len(t, banner, 1)
	assert.Equal(t, Color{0, 102, 204}, banner[0].color)

	// The border box wraps the measured text with the fixed insets.
	bannerY := cfg.Card.Height*cfg.Table.YPercent - bannerLift
	w := float64(len(banner[0].text)) * 7
	var found bool
	for _, op := range cv.ops {
		if op.kind == "stroke" && op.y0 == bannerY-5 {
			found = true
			assert.InDelta(t, cfg.Table.X, op.x0, 1e-9)
			assert.InDelta(t, banner[0].x0+w+bannerInset, op.x1, 1e-9)
		}
	}
	assert.True(t, found, "banner border stroke missing")
}

func TestComposeDrawsAllSections(t *testing.T) {
	cfg := config.Default()
	e := NewEngine(cfg, WithMessagePicker(func(n int) int { return 2 }))
	m := stubMeasurer{charW: 7}

	page := auxPage(
		contact("KA1ABC", map[string]string{"comment_intl": "nice signal", "pota_ref": "K-0001"}),
		contact("KA1ABC", nil),
	)
	cv := &stubCanvas{}
	require.NoError(t, e.Compose(cv, m, page))

	assert.Len(t, bannerOps(cv), 1)
	assert.Len(t, opsByRole(cv, "table_header"), len(cfg.Columns.Headers))
	assert.Len(t, opsByRole(cv, "table_cell"), 2*len(cfg.Columns.Headers))
	assert.Len(t, opsByRole(cv, "info_header"), 1)
	// One aux row: date+band and POTA in info_data, the comment separately.
	assert.Len(t, opsByRole(cv, "info_data"), 2)
	assert.Len(t, opsByRole(cv, "info_comment"), 1)

	// Info panel sits below the table bottom.
	info := opsByRole(cv, "info_header")[0]
	tableBottom := cfg.Card.Height*cfg.Table.YPercent + cfg.Table.HeaderHeight
	assert.Greater(t, info.y0, tableBottom)
}
