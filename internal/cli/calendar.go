package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtmlib/dtm"
)

const calendarWidth = 22

func newCalendarCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [DTSPEC]",
		Short: "Print the month containing DTSPEC, or the current month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := dtm.FromTime(e.now())
			if len(args) == 1 {
				var err error
				if when, err = dtm.Parse(args[0], nil); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderCalendar(when))
			return err
		},
	}
}

// renderCalendar lays out the month containing when as a grid with Monday
// in the first column.
func renderCalendar(when dtm.Timestamp) string {
	mday := when.Time().Day()
	start := when.PreviousDay(mday - 1)
	end := when.NextDay(32 - mday)
	for end.Format("%b") != start.Format("%b") {
		end = end.PreviousDay(1)
	}
	mlen := end.Time().Day()

	var b strings.Builder
	title := start.Format("%B %Y")
	pad := strings.Repeat(" ", (calendarWidth-len(title))/2)
	b.WriteString(pad + title + pad + "\n")
	b.WriteString(" mo tu we th fr sa su\n")

	slot := 0
	if wd, ok := dtm.ParseWeekday(start.Weekday()); ok {
		for ; slot < wd.Number()-1; slot++ {
			b.WriteString("   ")
		}
	}
	for day := 1; day <= mlen; day++ {
		fmt.Fprintf(&b, " %2d", day)
		slot++
		if slot%7 == 0 {
			b.WriteString("\n")
		}
	}
	for ; slot%7 != 0; slot++ {
		b.WriteString("   ")
	}
	return b.String()
}
