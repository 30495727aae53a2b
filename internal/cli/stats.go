package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/internal/service"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}

			dashboard := service.NewDashboardService(repository.NewNurseRepo(e.db), repository.NewRequestRepo(e.db))
			overview, err := dashboard.Overview(cmd.Context())
			if err != nil {
				return err
			}

			printOverview(cmd.OutOrStdout(), overview)
			return nil
		},
	}
}

func printOverview(w io.Writer, o *service.DashboardOverview) {
	bold := color.New(color.Bold)

	bold.Fprintln(w, "Staffing summary")
	fmt.Fprintf(w, "  Active nurses:      %d\n", o.Stats.ActiveNurses)
	fmt.Fprintf(w, "  Pending requests:   %d\n", o.Stats.PendingRequests)
	fmt.Fprintf(w, "  Completed requests: %d\n", o.Stats.CompletedRequests)
	fmt.Fprintf(w, "  Assigned/required:  %d/%d\n", o.Stats.TotalAssigned, o.Stats.TotalRequired)
	fmt.Fprintf(w, "  Fill rate:          %s\n", fillRateColor(o.Stats.FillRate).Sprintf("%d%%", o.Stats.FillRate))
	fmt.Fprintf(w, "  Open demand:        %d (recent requests)\n", o.OpenDemand)
	fmt.Fprintln(w)

	bold.Fprintln(w, "Departments")
	if len(o.Departments) == 0 {
		fmt.Fprintln(w, "  (no active nurses)")
	}
	for _, d := range o.Departments {
		fmt.Fprintf(w, "  %-20s %d\n", d.Department, d.Count)
	}
	fmt.Fprintln(w)

	bold.Fprintln(w, "Recent requests")
	if len(o.Recent) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, r := range o.Recent {
		status := color.New(color.FgYellow).Sprint(r.Status)
		if !r.OpenForAssignment {
			status = color.New(color.FgGreen).Sprint(r.Status)
		}
		fmt.Fprintf(w, "  #%-5d %-24s %-12s %d/%d %s\n",
			r.ID, r.HospitalName, r.Department, r.AssignedNurses, r.RequiredNurses, status)
	}
}

func fillRateColor(rate int) *color.Color {
	switch {
	case rate >= 80:
		return color.New(color.FgGreen)
	case rate >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
