package notifier

import (
	"fmt"
	"html"
	"strings"

	"TickerDesk/internal/pipeline"
)

// FormatResult renders a dashboard result as a Telegram HTML message.
func FormatResult(res pipeline.Result) string {
	var b strings.Builder

	if res.Company == "" {
		// Unknown ticker: the placeholder headline is the whole message.
		for _, n := range res.News {
			b.WriteString(html.EscapeString(n.Headline))
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(res.Ticker), html.EscapeString(res.Company)))

	b.WriteString("📰 <b>News</b>\n")
	switch {
	case res.NewsError != "":
		b.WriteString(html.EscapeString(res.NewsError) + "\n")
	case len(res.News) == 0:
		b.WriteString("No headlines found\n")
	default:
		for i, n := range res.News {
			headline := html.EscapeString(n.Headline)
			if n.Link != "" {
				headline = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(n.Link), headline)
			}
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, headline))
		}
	}

	b.WriteString("\n📈 <b>Chart</b>\n")
	b.WriteString(FormatChartSummary(res))
	return b.String()
}

// FormatChartSummary describes the plotted period in a few lines.
func FormatChartSummary(res pipeline.Result) string {
	c := res.Chart
	if c.Empty || c.Annotations == nil {
		return "Market data unavailable\n"
	}
	a := c.Annotations
	bars := c.Candles.Bars

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Period: %s to %s (%d bars)\n",
		bars[0].Date.Format("2006-01-02"), bars[len(bars)-1].Date.Format("2006-01-02"), len(bars)))
	b.WriteString(fmt.Sprintf("Last close: %.2f\n", a.LastClose))
	if a.LastSMA.Valid {
		dev := 0.0
		if a.LastSMA.Float64 > 0 {
			dev = (a.LastClose - a.LastSMA.Float64) / a.LastSMA.Float64 * 100
		}
		b.WriteString(fmt.Sprintf("%s: %.2f (%+.1f%%)\n", html.EscapeString(c.Overlay.Name), a.LastSMA.Float64, dev))
	}
	b.WriteString(fmt.Sprintf("Range: %.2f - %.2f (at %.0f%%)\n", a.PeriodLow, a.PeriodHigh, a.RangePosition*100))
	b.WriteString(fmt.Sprintf("RSI: %.0f\n", a.RSI))
	return b.String()
}

// FormatTickers lists the selectable tickers.
func FormatTickers(tickers []string, def string) string {
	var b strings.Builder
	b.WriteString("<b>Available tickers</b>\n")
	for _, t := range tickers {
		if t == def {
			b.WriteString(fmt.Sprintf("• %s (default)\n", t))
			continue
		}
		b.WriteString(fmt.Sprintf("• %s\n", t))
	}
	return b.String()
}

// HelpText is the reply to unrecognized input.
const HelpText = "Commands:\n• <code>WEGE3</code> or <code>/ticker WEGE3</code>: news and chart\n• /tickers: list tickers"
