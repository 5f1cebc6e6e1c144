package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/dtmlib/dtm"
)

// Upper bound for rtd when no SECONDS argument is given.
const maxRandomSpan = 5 * 24 * 3600

func newRDTCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rdt [EPOCH]",
		Short: "Show the local time of EPOCH, or of a random epoch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var epoch int64
			if len(args) == 1 {
				v, err := cast.ToInt64E(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid epoch %q", args[0])
				}
				epoch = v
			} else {
				limit := int64(float64(e.now().Unix()) * 1.25)
				epoch = e.randN(limit + 1)
			}
			ts, err := dtm.Epoch(epoch, nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (epoch = %d)\n", ts.Stamp(), ts.Unix())
			return err
		},
	}
}

func newRTDCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rtd [SECONDS]",
		Short: "Show SECONDS, or a random span, as days and clock time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secs int64
			if len(args) == 1 {
				v, err := cast.ToInt64E(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid seconds %q", args[0])
				}
				secs = v
			} else {
				secs = e.randN(maxRandomSpan + 1)
			}
			d := dtm.Seconds(secs)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (seconds = %d)\n", d.DHHMMSS(), d.Seconds())
			return err
		},
	}
}
