package scraper

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/statscrape/internal/config"
	"github.com/pfrederiksen/statscrape/internal/jsondoc"
	"github.com/pfrederiksen/statscrape/internal/logger"
)

const (
	priceStoreMarker = "HistoricalPriceStore"
	pricesPath       = "context.dispatcher.stores.HistoricalPriceStore.prices"
	dateLayout       = "2006-01-02"
)

// StockHeader is the header row of a price history
var StockHeader = []string{"Date", "Close"}

// StockHistory returns daily closing prices for symbol. The price store
// embedded in the quote page is tried first; when it cannot be read the CSV
// download endpoint is used instead.
func (s *Scraper) StockHistory(ctx context.Context, symbol string, cfg config.Stock) (*Result, error) {
	htmlURL, csvURL := cfg.URLs(symbol)

	rows, err := s.stockFromHTML(ctx, htmlURL)
	if err == nil {
		return stockResult(rows, htmlURL), nil
	}

	logger.Warn("HTML scrape failed, using CSV fallback", logger.Fields{
		"url":   htmlURL,
		"error": err.Error(),
	})

	days := cfg.Days
	if days <= 0 {
		days = config.DefaultStockDays
	}
	rows, err = s.stockFromCSV(ctx, csvURL, days)
	if err != nil {
		return nil, err
	}
	return stockResult(rows, csvURL), nil
}

func stockResult(rows [][]string, sourceURL string) *Result {
	logger.AddCounter("rows.emitted", int64(len(rows)))
	return &Result{Header: StockHeader, Rows: rows, Source: sourceURL}
}

func (s *Scraper) stockFromHTML(ctx context.Context, url string) ([][]string, error) {
	data, err := s.fetcher.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	return parsePriceStore(doc)
}

// parsePriceStore reads the price list out of the script that embeds the
// page's data stores
func parsePriceStore(doc *goquery.Document) ([][]string, error) {
	var blob string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := sel.Text(); strings.Contains(text, priceStoreMarker) {
			blob = text
			return false
		}
		return true
	})
	if blob == "" {
		return nil, fmt.Errorf("%w: no script holds %s", jsondoc.ErrUnexpected, priceStoreMarker)
	}

	start := strings.Index(blob, `{"context"`)
	end := strings.LastIndex(blob, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: %s JSON not found", jsondoc.ErrUnexpected, priceStoreMarker)
	}

	root, err := jsondoc.Parse([]byte(blob[start : end+1]))
	if err != nil {
		return nil, err
	}

	pricesValue, err := root.Lookup(pricesPath)
	if err != nil {
		return nil, err
	}
	prices, ok := pricesValue.Items()
	if !ok {
		return nil, fmt.Errorf("%w: prices is %s, not array", jsondoc.ErrUnexpected, pricesValue.Kind())
	}

	var rows [][]string
	for _, p := range prices {
		if row, ok := priceRow(p); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, errors.New("no price rows parsed from HTML JSON")
	}
	return rows, nil
}

// priceRow converts one price entry. Dividend and split entries carry a
// type and no close, so they are skipped along with incomplete entries.
func priceRow(p jsondoc.Value) ([]string, bool) {
	if t, ok := p.Get("type"); ok && !t.IsNull() {
		return nil, false
	}

	c, ok := p.Get("close")
	if !ok || c.IsNull() {
		return nil, false
	}
	closeText, ok := c.Text()
	if !ok {
		return nil, false
	}

	d, ok := p.Get("date")
	if !ok {
		return nil, false
	}
	secs, ok := d.Float()
	if !ok {
		return nil, false
	}

	date := time.Unix(int64(secs), 0).UTC().Format(dateLayout)
	return []string{date, closeText}, true
}

func (s *Scraper) stockFromCSV(ctx context.Context, url string, days int) ([][]string, error) {
	end := s.now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)

	data, err := s.fetcher.Get(ctx, url, map[string]string{
		"period1":              strconv.FormatInt(start.Unix(), 10),
		"period2":              strconv.FormatInt(end.Unix(), 10),
		"interval":             "1d",
		"events":               "history",
		"includeAdjustedClose": "true",
	})
	if err != nil {
		return nil, err
	}

	return parsePriceCSV(data)
}

// parsePriceCSV keeps the Date and Close columns of a price download.
// Rows without a close are dropped.
func parsePriceCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	dateCol, closeCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case "Date":
			dateCol = i
		case "Close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("CSV header %v lacks Date or Close", header)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if len(rec) <= max(dateCol, closeCol) {
			continue
		}

		date, closeText := strings.TrimSpace(rec[dateCol]), strings.TrimSpace(rec[closeCol])
		if date == "" || closeText == "" || closeText == "null" {
			continue
		}
		rows = append(rows, []string{date, closeText})
	}

	if len(rows) == 0 {
		return nil, errors.New("CSV returned no rows")
	}
	return rows, nil
}
