// Package scraper fetches the NFL touchdown leaders, Super Bowl champions and
// stock price history sources and reduces each to a flat result table.
//
// Touchdown leaders and Super Bowl champions come from HTML pages whose
// tables shift layout between seasons. Rather than addressing cells by
// position, every table on the page is scored against a signature of
// expected columns and the best one is projected into ranked rows. Price
// history is read from the JSON store embedded in the quote page, with the
// CSV download endpoint as a fallback.
package scraper
