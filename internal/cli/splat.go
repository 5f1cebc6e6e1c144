package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"

	"github.com/dtmlib/dtm"
)

const splatLayout = "%Y.%m%d %H:%M:%S"

func newSplatCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "splat",
		Short: "Show the current epoch as seen through several clocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := e.now()
			_, offset := now.Zone()
			readings := []struct {
				label string
				value int64
			}{
				{"t", now.Unix()},
				{"n", now.Unix()},
				// UTC wall clock read back as if it were local time.
				{"u", now.Unix() - int64(offset)},
			}
			for _, r := range readings {
				if err := writeSplat(cmd.OutOrStdout(), r.label, r.value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeSplat(w io.Writer, label string, value int64) error {
	ts, err := dtm.Epoch(value, "utc")
	if err != nil {
		return err
	}
	edge := value - floorMod(value, 86400)
	edgeTS, err := dtm.Epoch(edge, "utc")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %d\n%s\n%s\n%s\n%.1f\n",
		label, value,
		ts.Format(splatLayout),
		strftime.Format(splatLayout, time.Unix(value, 0).UTC()),
		edgeTS.Format(splatLayout),
		float64(edge)/86400,
	)
	return err
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
