// Package printers renders grocery lists and schedules for the terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pantry/pkg/grocery"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

// List renders resolved rows in layout order. Headers get their own style;
// checked items print struck through and dimmed.
func (pp *PrettyPrint) List(rows ...grocery.Row) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	h := color.New(color.Bold)
	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, r := range rows {
		if r.IsHeader() {
			if pp.ShowID {
				_, _ = t.Print(spacing)
			}
			_, _ = h.Printf("%s\n", r.Header)
			continue
		}
		if pp.ShowID {
			_, _ = y.Print(r.Item.ID)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(r.Item.ID)))
		}
		if r.Item.Checked {
			_, _ = t.Print("x ")
			_, _ = done.Printf("%s\n", r.Item.Name)
		} else {
			_, _ = t.Printf("• %s\n", r.Item.Name)
		}
	}
	_, _ = t.Println("")
}

// Stores renders the known stores and whether each is preferred.
func (pp *PrettyPrint) Stores(selected []grocery.StoreName) {
	bold := color.New(color.Bold)
	on := color.New(color.FgGreen)
	off := color.New(color.Faint)

	chosen := make(map[grocery.StoreName]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Store"), bold.Sprint("Preferred"))
	for _, s := range grocery.AllStores {
		if chosen[s] {
			tbl.AddRow(string(s), on.Sprint("yes"))
		} else {
			tbl.AddRow(string(s), off.Sprint("no"))
		}
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}
