package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/pantry/pkg/schedule"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Schedule renders a compact month grid per month, highlighting the days a
// task is scheduled on. Months without any scheduled day are skipped unless
// full is set.
func (pp *PrettyPrint) Schedule(days schedule.Days, full bool) {
	any := false
	for _, m := range schedule.Months {
		if len(days[m]) > 0 {
			any = true
			break
		}
	}
	if !any && !full {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" not scheduled\n\n")
		return
	}

	for _, m := range schedule.Months {
		if !full && len(days[m]) == 0 {
			continue
		}
		pp.PrintMonth(m, days[m])
	}
}

// PrintMonth renders one month's grid. Scheduled day indexes are zero based.
func (pp *PrettyPrint) PrintMonth(m schedule.Month, scheduled []int) {
	tf := color.New(color.FgWhite, color.Italic)

	name := string(m)
	mid := (width - len(name)) / 2
	tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), name, strings.Repeat(" ", width-mid-len(name)))

	on := make(map[int]bool, len(scheduled))
	for _, d := range scheduled {
		on[d] = true
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	total := schedule.DaysIn(m)
	col := 0
	for i := 0; i < total; i++ {
		if on[i] {
			l2.Printf("%2d ", i+1)
		} else {
			l1.Printf("%2d ", i+1)
		}

		col++
		if col == 7 {
			col = 0
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}
