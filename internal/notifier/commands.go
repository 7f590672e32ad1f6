package notifier

import (
	"context"
	"strings"

	"TickerDesk/internal/pipeline"
)

// Selector runs the dashboard update for a ticker.
type Selector interface {
	HandleSelection(ctx context.Context, ticker string) pipeline.Result
}

// TickerLister exposes the registered tickers.
type TickerLister interface {
	Tickers() []string
	Default() string
}

// NewCommandHandler maps chat commands onto the dashboard pipeline.
func NewCommandHandler(sel Selector, tickers TickerLister) CommandHandler {
	return func(ctx context.Context, command string) string {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return HelpText
		}

		cmd := strings.ToLower(fields[0])
		// Strip the bot suffix Telegram adds in group chats.
		if i := strings.IndexByte(cmd, '@'); i > 0 {
			cmd = cmd[:i]
		}

		switch {
		case cmd == "/tickers":
			return FormatTickers(tickers.Tickers(), tickers.Default())
		case cmd == "/ticker":
			if len(fields) < 2 {
				return FormatResult(sel.HandleSelection(ctx, tickers.Default()))
			}
			return FormatResult(sel.HandleSelection(ctx, strings.ToUpper(fields[1])))
		case cmd == "/start" || cmd == "/help":
			return HelpText
		case len(fields) == 1 && !strings.HasPrefix(cmd, "/"):
			return FormatResult(sel.HandleSelection(ctx, strings.ToUpper(fields[0])))
		default:
			return HelpText
		}
	}
}
