package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtmlib/dtm"
)

const (
	wallLayout  = "%F %T"
	zonedLayout = "%F %T %Z"
)

// specAndZone reads the optional [DTSPEC] [TIMEZONE] pair. An empty or
// missing spec means "now" and an empty or missing zone means local.
func specAndZone(args []string) (spec, zone string) {
	spec, zone = "now", "local"
	if len(args) > 0 && args[0] != "" {
		spec = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		zone = args[1]
	}
	return spec, zone
}

func newLTUCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ltu [LOC_DTSPEC] [TIMEZONE]",
		Short: "Convert a wall clock time in TIMEZONE to UTC",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, zone := specAndZone(args)
			if spec == "now" {
				spec = dtm.FromTime(e.now()).Format(wallLayout)
			}
			local, err := dtm.Parse(spec, zone)
			if err != nil {
				return err
			}
			out, err := local.FormatIn(zonedLayout, "utc")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newUTLCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "utl [UTC_DTSPEC] [TIMEZONE]",
		Short: "Convert a UTC wall clock time to TIMEZONE",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, zone := specAndZone(args)
			if spec == "now" {
				spec = dtm.FromTime(e.now().UTC()).Format(wallLayout)
			}
			when, err := dtm.Parse(spec, "utc")
			if err != nil {
				return err
			}
			out, err := when.FormatIn(zonedLayout, zone)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}
