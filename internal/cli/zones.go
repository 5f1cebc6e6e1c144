package cli

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dtmlib/dtm"
	"github.com/dtmlib/dtm/internal/zonedb"
)

// Report lines are flushed once they grow past this many columns.
const reportWidth = 70

func newZonesCommand(e *env) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "zones [SEARCH]",
		Short: "List zone names matching SEARCH, or all of them grouped by region",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := e.zoneNames()
			if err != nil {
				return errors.Wrap(err, "list zones")
			}
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 1 && args[0] != "":
				writeLines(out, zonedb.Filter(names, args[0]))
			case raw:
				writeLines(out, names)
			default:
				writeZoneReport(out, names)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "print the plain list instead of the grouped report")
	return cmd
}

func writeLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// zoneTree groups zone names by their slash separated components, keeping
// first-seen order.
type zoneTree struct {
	keys     []string
	children map[string]*zoneTree
}

func newZoneTree() *zoneTree {
	return &zoneTree{children: make(map[string]*zoneTree)}
}

func (t *zoneTree) insert(parts []string) {
	if len(parts) == 0 {
		return
	}
	child, ok := t.children[parts[0]]
	if !ok {
		child = newZoneTree()
		t.children[parts[0]] = child
		t.keys = append(t.keys, parts[0])
	}
	child.insert(parts[1:])
}

// writeZoneReport prints the roots, then each root's members, then the
// members of every second-level group.
func writeZoneReport(w io.Writer, names []string) {
	tree := newZoneTree()
	for _, name := range names {
		tree.insert(strings.Split(name, "/"))
	}
	writeZoneSet(w, "roots", tree.keys)
	for _, root := range tree.keys {
		sub := tree.children[root]
		writeZoneSet(w, root, sub.keys)
		for _, item := range sub.keys {
			writeZoneSet(w, root+"/"+item, sub.children[item].keys)
		}
	}
}

func writeZoneSet(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", label)
	var line strings.Builder
	for _, item := range items {
		fmt.Fprintf(&line, "  %-14s", item)
		if line.Len() > reportWidth {
			fmt.Fprintln(w, line.String())
			line.Reset()
		}
	}
	if line.Len() > 4 {
		fmt.Fprintln(w, line.String())
	}
}

func newZDetailsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "zdetails TIMEZONE",
		Short: "Show the current offset and abbreviation of TIMEZONE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := dtm.ResolveZone(args[0])
			if err != nil {
				return err
			}
			now := e.now().In(loc)
			abbrev, offset := now.Zone()
			dst := offset - standardOffset(loc, now.Year())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "zone: %s\n", loc)
			fmt.Fprintf(out, "dst: %s\n", clockDelta(dst))
			fmt.Fprintf(out, "tzname: %s\n", abbrev)
			fmt.Fprintf(out, "utcoffset: %s\n", hhmm(offset))
			return nil
		},
	}
}

func newWestEastCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "westeast",
		Short: "List every zone ordered by its current UTC offset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := e.zoneNames()
			if err != nil {
				return errors.Wrap(err, "list zones")
			}
			type zoneOffset struct {
				name   string
				offset int
			}
			now := e.now()
			var zones []zoneOffset
			for _, name := range names {
				loc, err := time.LoadLocation(name)
				if err != nil {
					slog.Debug("skipping unloadable zone", slog.String("zone", name), slog.String("error", err.Error()))
					continue
				}
				_, offset := now.In(loc).Zone()
				zones = append(zones, zoneOffset{name, offset})
			}
			slices.SortStableFunc(zones, func(a, b zoneOffset) int {
				return cmp.Compare(a.offset, b.offset)
			})

			out := cmd.OutOrStdout()
			for _, z := range zones {
				fmt.Fprintf(out, "%-35s %8s\n", z.name, hhmm(z.offset))
			}
			return nil
		},
	}
}

// standardOffset is the smaller of the offsets in effect on January 1 and
// July 1 of year.
func standardOffset(loc *time.Location, year int) int {
	_, jan := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return min(jan, jul)
}

// hhmm renders an offset in seconds as [-]HH:MM.
func hhmm(secs int) string {
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	return fmt.Sprintf("%s%02d:%02d", sign, secs/3600, secs%3600/60)
}

// clockDelta renders a span in seconds as [-]H:MM:SS.
func clockDelta(secs int) string {
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign, secs/3600, secs%3600/60, secs%60)
}
