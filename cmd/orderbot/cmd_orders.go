package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/orderbot/internal/storage"
	"github.com/dshills/orderbot/pkg/types"
)

var (
	ordersFormat string
	ordersLimit  int
	ordersAll    bool
)

// ordersCmd prints stored orders for the operator
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Print recent orders",
	Long: `Print the most recent orders, newest first.

The text format mirrors the operator's /orders reply; yaml includes every
stored field and the ordered items.`,
	Args: cobra.NoArgs,
	RunE: runOrders,
}

func init() {
	ordersCmd.Flags().StringVarP(&ordersFormat, "format", "f", "text", "output format: text or yaml")
	ordersCmd.Flags().IntVarP(&ordersLimit, "limit", "n", 0, "number of orders to print (default recent_orders)")
	ordersCmd.Flags().BoolVar(&ordersAll, "all", false, "print every order")
}

func runOrders(cmd *cobra.Command, args []string) error {
	if ordersFormat != "text" && ordersFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want text or yaml)", ordersFormat)
	}

	path, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	var orders []types.Order
	if ordersAll {
		orders, err = store.ListOrders(ctx)
	} else {
		limit := ordersLimit
		if limit <= 0 {
			limit = cfg.RecentOrders
		}
		orders, err = store.ListRecentOrders(ctx, limit)
	}
	if err != nil {
		return err
	}

	return writeOrders(cmd.OutOrStdout(), orders, ordersFormat)
}

func writeOrders(w io.Writer, orders []types.Order, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orders); err != nil {
			return fmt.Errorf("failed to encode orders: %w", err)
		}
		return enc.Close()
	case "text":
		if len(orders) == 0 {
			_, err := fmt.Fprintln(w, "No orders yet")
			return err
		}
		for _, o := range orders {
			_, err := fmt.Fprintf(w, "#%d  %s  %s  %s  %s  %d item(s)  %s\n",
				o.ID, o.FullName, o.Phone, types.FormatPrice(o.Total), o.PaymentMethod,
				len(o.Items), humanize.Time(o.CreatedAt))
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
}
