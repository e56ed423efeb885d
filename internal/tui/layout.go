package tui

import "github.com/javiermolinar/ttg/internal/timegrid"

const (
	titleH           = 1
	footerCompact    = 2
	footerFull       = 3
	footerFullMinH   = 20
	pickerMinW       = 24
	pickerMaxW       = 40
	minColWidth      = 8
	maxColWidth      = 28
	gridTimeColumnW  = 7 // time column plus its padding
	gridColumnFrameW = 3 // padding plus the column border
	gridOuterBorderW = 2
	paneGap          = 1
)

// Layout stores the pane sizes derived from the window size.
type Layout struct {
	InnerW int
	InnerH int

	FooterH int
	BodyH   int

	PickerW int
	GridW   int

	ColWidth int
}

func (m Model) buildLayout(width, height int) Layout {
	appH, appV := m.styles.AppStyle.GetFrameSize()
	innerW := max(0, width-appH)
	innerH := max(0, height-appV)

	footerH := footerCompact
	if innerH >= footerFullMinH {
		footerH = footerFull
	}
	bodyH := max(0, innerH-titleH-footerH)

	pickerW := min(pickerMaxW, max(pickerMinW, innerW/3))
	if pickerW > innerW {
		pickerW = innerW
	}
	gridW := max(0, innerW-pickerW-paneGap)

	return Layout{
		InnerW:   innerW,
		InnerH:   innerH,
		FooterH:  footerH,
		BodyH:    bodyH,
		PickerW:  pickerW,
		GridW:    gridW,
		ColWidth: columnWidth(gridW),
	}
}

// columnWidth fits six day columns into gridW.
func columnWidth(gridW int) int {
	days := timegrid.DaysPerWeek
	w := (gridW-gridTimeColumnW-gridOuterBorderW)/days - gridColumnFrameW
	if w > maxColWidth {
		return maxColWidth
	}
	if w < minColWidth {
		return minColWidth
	}
	return w
}

// pickerRows is the number of rows visible in the picker list.
func (l Layout) pickerRows() int {
	// border, breadcrumb, filter
	return max(1, l.BodyH-4)
}
