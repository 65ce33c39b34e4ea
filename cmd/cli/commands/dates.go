package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/pkg/core/schedule"
)

// DatesCmd creates the dates command
func DatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dates [count]",
		Short: "List the upcoming roster dates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := app.Cfg.UpcomingDates
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					return fmt.Errorf("count must be a non-negative integer, got: %s", args[0])
				}
				count = n
			}

			dates, err := upcomingDates(app, count)
			if err != nil {
				return err
			}

			app.Logger.Debug("dates command", zap.Int("count", count), zap.Strings("dates", dates))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nUpcoming dates:\n")
			for i, d := range dates {
				fmt.Fprintf(out, "  %2d. %s\n", i+1, formatDate(d))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// upcomingDates generates count roster dates from today using the configured weekday
func upcomingDates(app *AppContext, count int) ([]string, error) {
	weekday, err := schedule.ParseWeekday(app.Cfg.RosterWeekday)
	if err != nil {
		return nil, err
	}
	return schedule.UpcomingDates(time.Now(), weekday, count)
}
