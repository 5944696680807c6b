package main

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

const callTimeout = 30 * time.Second

// call dials opts.addr, attaches credentials and invokes method on service.
func call[Resp any](cmd *cobra.Command, opts *options, service, method string, in any) (*Resp, error) {
	conn, err := rpc.Dial(opts.addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", opts.addr, err)
	}
	defer conn.Close()
	return invoke[Resp](cmd.Context(), conn, opts, service, method, in)
}

func invoke[Resp any](ctx context.Context, conn grpc.ClientConnInterface, opts *options, service, method string, in any) (*Resp, error) {
	token := opts.token
	if token == "" {
		var err error
		token, err = middleware.IssueToken(opts.cfg.JWT.SecretKey, opts.cfg.JWT.Issuer, opts.userID, opts.role, time.Minute)
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(rpc.WithBearer(ctx, token), callTimeout)
	defer cancel()
	return rpc.Invoke[Resp](ctx, conn, "/"+service+"/"+method, in)
}

func newPOSCmd(opts *options) *cobra.Command {
	posCmd := &cobra.Command{
		Use:   "pos",
		Short: "Point of sale commands",
	}

	posCmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Copy POS-enabled catalog products into the reception and restaurant registers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := call[hotelv1.SyncPOSProductsResponse](cmd, opts, hotelv1.POSServiceName, "SyncPOSProducts", &hotelv1.SyncPOSProductsRequest{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reception:  %d\nRestaurant: %d\nSkipped:    %d\n", res.Reception, res.Restaurant, res.Skipped)
			for _, e := range res.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			return nil
		},
	})

	posCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show POS catalog sync counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := call[hotelv1.SyncStatsResponse](cmd, opts, hotelv1.POSServiceName, "GetSyncStats", &hotelv1.GetSyncStatsRequest{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enabled: %d\nPOS:     %d\nSynced:  %d\nPending: %d\n",
				res.EnabledProducts, res.POSProducts, res.SyncedProducts, res.PendingSync)
			return nil
		},
	})

	return posCmd
}

func newReservationsCmd(opts *options) *cobra.Command {
	reservationsCmd := &cobra.Command{
		Use:   "reservations",
		Short: "Reservation commands",
	}

	req := &hotelv1.ListReservationsRequest{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := call[hotelv1.ListReservationsResponse](cmd, opts, hotelv1.ReservationServiceName, "ListReservations", req)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGUEST\tCHECK-IN\tCHECK-OUT\tSTATUS\tTOTAL\tPENDING")
			for _, r := range res.Reservations {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Id, r.GuestName, r.CheckIn, r.CheckOut, r.Status, r.TotalAmount, r.PendingAmount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d reservations\n", len(res.Reservations), res.Total)
			return nil
		},
	}
	listCmd.Flags().StringVar(&req.Status, "status", "", "filter by status")
	listCmd.Flags().StringVar(&req.CheckInFrom, "from", "", "check-in from (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&req.CheckInTo, "to", "", "check-in to (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&req.Search, "search", "", "guest name, email or phone")
	listCmd.Flags().Int32Var(&req.Page, "page", 1, "page number")
	listCmd.Flags().Int32Var(&req.PageSize, "page-size", 20, "page size")

	reservationsCmd.AddCommand(listCmd)
	return reservationsCmd
}

func newTokensCmd(opts *options) *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "AI token usage commands",
	}

	filter := &hotelv1.UsageFilter{}
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize AI token usage and estimated cost",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := call[hotelv1.UsageStatsResponse](cmd, opts, hotelv1.AssistantServiceName, "GetUsageStats", &hotelv1.GetUsageStatsRequest{Filter: filter})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Requests:      %d (%d ok, %d failed)\n", res.TotalRequests, res.SuccessfulRequests, res.FailedRequests)
			fmt.Fprintf(out, "Tokens:        %d (prompt %d, completion %d)\n", res.TotalTokens, res.PromptTokens, res.CompletionTokens)
			fmt.Fprintf(out, "Avg/request:   %d\n", res.AvgTokensPerRequest)
			fmt.Fprintf(out, "Cost (USD):    %s\n", res.TotalCostUsd)
			fmt.Fprintf(out, "Top model:     %s\n", res.MostUsedModel)
			fmt.Fprintf(out, "Top feature:   %s\n", res.MostUsedFeature)

			models := make([]string, 0, len(res.ByModel))
			for m := range res.ByModel {
				models = append(models, m)
			}
			sort.Strings(models)
			for _, m := range models {
				fmt.Fprintf(out, "  %s: %d\n", m, res.ByModel[m])
			}
			return nil
		},
	}
	statsCmd.Flags().StringVar(&filter.Period, "period", "month", "today, week, month or all")
	statsCmd.Flags().StringVar(&filter.FeatureType, "feature", "", "filter by feature type")
	statsCmd.Flags().StringVar(&filter.Model, "model", "", "filter by model")
	statsCmd.Flags().StringVar(&filter.StartDate, "from", "", "first day included (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&filter.EndDate, "to", "", "last day included (YYYY-MM-DD)")

	trendsReq := &hotelv1.GetUsageTrendsRequest{}
	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Show AI token usage per day, week or month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := call[hotelv1.UsageTrendsResponse](cmd, opts, hotelv1.AssistantServiceName, "GetUsageTrends", trendsReq)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tREQUESTS\tTOKENS\tCOST (USD)")
			for _, p := range res.Points {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", p.Date, p.Requests, p.TotalTokens, p.TotalCostUsd)
			}
			return w.Flush()
		},
	}
	trendsCmd.Flags().StringVar(&trendsReq.Period, "period", "daily", "daily, weekly or monthly")
	trendsCmd.Flags().Int32Var(&trendsReq.Days, "days", 30, "how many days back")

	tokensCmd.AddCommand(statsCmd, trendsCmd)
	return tokensCmd
}
