package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/statscrape/internal/convert"
	"github.com/pfrederiksen/statscrape/internal/scraper"
)

func (a *app) newTouchdownsCmd() *cobra.Command {
	var (
		year  int
		limit int
		feed  bool
	)

	cmd := &cobra.Command{
		Use:   "touchdowns",
		Short: "Print the NFL regular season touchdown leaders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().UTC().Year()
			}
			if limit <= 0 {
				limit = a.cfg.Touchdowns.Limit
			}

			sc := scraper.New(a.fetcher(a.cfg.Touchdowns.Headers))

			var res *scraper.Result
			var err error
			if feed {
				res, err = sc.TouchdownsFeed(cmd.Context(), a.cfg.Touchdowns.Feed, limit)
			} else {
				res, err = sc.Touchdowns(cmd.Context(), a.cfg.Touchdowns.SourceURLs(year), limit)
			}
			if err != nil {
				return err
			}
			return WriteLines(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Season year (default: current year)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of leaders to print (default from config)")
	cmd.Flags().BoolVar(&feed, "feed", false, "Read leaders from the configured JSON feed")

	return cmd
}

func (a *app) newSuperBowlCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "superbowl",
		Short: "Print the first Super Bowl champions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = a.cfg.SuperBowl.Limit
			}

			sc := scraper.New(a.fetcher(a.cfg.SuperBowl.Headers))
			res, err := sc.SuperBowl(cmd.Context(), a.cfg.SuperBowl.URL, a.cfg.SuperBowl.Selector, limit)
			if err != nil {
				return err
			}
			return WriteLines(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of rows to print (default from config)")

	return cmd
}

func (a *app) newStockCmd() *cobra.Command {
	var (
		symbol string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Print daily closing prices for a stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stock := a.cfg.Stock
			if symbol != "" {
				stock.Symbol = symbol
			}
			if days > 0 {
				stock.Days = days
			}

			sc := scraper.New(a.fetcher(stock.Headers))
			res, err := sc.StockHistory(cmd.Context(), strings.ToUpper(stock.Symbol), stock)
			if err != nil {
				return err
			}
			return WriteLines(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Ticker symbol (default from config)")
	cmd.Flags().IntVar(&days, "days", 0, "Days of history for the CSV fallback (default from config)")

	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert FROM TO VALUE",
		Short: "Convert a value between units",
		Long: fmt.Sprintf(`Convert a value between temperature or distance units.

Units: %s

Negative values must follow "--", e.g. convert celsius fahrenheit -- -40`, strings.Join(convert.Units(), ", ")),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[2], err)
			}

			result, err := convert.Convert(args[0], args[1], value)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'f', -1, 64))
			return err
		},
	}
}
