package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/oisee/concise/pkg/concise"
)

// runInspector opens an interactive word browser: a table of decoded words
// with a detail pane for the selected one.
func runInspector(path string, s *concise.Set) error {
	app := tview.NewApplication()
	infos := s.WordInfos()

	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	table.SetBorder(true).SetTitle(fmt.Sprintf(" %s — %d words ", path, len(infos)))

	headers := []string{"idx", "word", "kind", "blocks", "flip", "set bits", "first bit"}
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}
	for row, info := range infos {
		flip := "-"
		if info.Flip >= 0 {
			flip = fmt.Sprintf("%d", info.Flip)
		}
		cells := []string{
			fmt.Sprintf("%d", info.Index),
			fmt.Sprintf("%08X", info.Image),
			info.Kind.String(),
			fmt.Sprintf("%d", info.Blocks),
			flip,
			fmt.Sprintf("%d", info.SetBits),
			fmt.Sprintf("%d", info.FirstBit),
		}
		for col, text := range cells {
			table.SetCell(row+1, col, tview.NewTableCell(text))
		}
	}

	detail := tview.NewTextView().SetDynamicColors(true)
	detail.SetBorder(true).SetTitle(" word ")

	status := tview.NewTextView()
	status.SetText(fmt.Sprintf(
		" %s | %d elements | last %s | %.3f vs bitmap | q to quit",
		encodingName(s), s.Size(), lastLabel(s), s.BitmapCompressionRatio()))

	table.SetSelectionChangedFunc(func(row, col int) {
		if row < 1 || row > len(infos) {
			detail.SetText("")
			return
		}
		detail.SetText(describeWord(infos[row-1]))
	})
	if len(infos) > 0 {
		table.Select(1, 0)
		detail.SetText(describeWord(infos[0]))
	}

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(table, 0, 3, true).
		AddItem(detail, 7, 0, false).
		AddItem(status, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}

func describeWord(info concise.WordInfo) string {
	span := fmt.Sprintf("bits [%d, %d]", info.FirstBit, info.FirstBit+31*info.Blocks-1)
	switch info.Kind {
	case concise.WordLiteral:
		return fmt.Sprintf("literal %08X\n%s\npayload %031b\n%d set bits",
			info.Image, span, info.Payload, info.SetBits)
	case concise.WordZeroSequence:
		if info.Flip >= 0 {
			return fmt.Sprintf("zero run %08X\n%s\n%d blocks, flipped bit %d (element %d)",
				info.Image, span, info.Blocks, info.Flip, info.FirstBit+info.Flip)
		}
		return fmt.Sprintf("zero run %08X\n%s\n%d blocks, no set bit",
			info.Image, span, info.Blocks)
	default:
		if info.Flip >= 0 {
			return fmt.Sprintf("one run %08X\n%s\n%d blocks, cleared bit %d (element %d absent)",
				info.Image, span, info.Blocks, info.Flip, info.FirstBit+info.Flip)
		}
		return fmt.Sprintf("one run %08X\n%s\n%d blocks, all bits set",
			info.Image, span, info.Blocks)
	}
}

func lastLabel(s *concise.Set) string {
	if s.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%d", s.Last())
}
