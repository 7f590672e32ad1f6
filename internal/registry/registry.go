package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTicker is returned when a symbol is not in the registry.
var ErrUnknownTicker = errors.New("unknown ticker")

// Registry maps ticker symbols to company display names.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	names         map[string]string
	symbols       []string
	defaultTicker string
}

// New copies the mapping so later changes by the caller are not observed.
func New(tickers map[string]string, defaultTicker string) (*Registry, error) {
	if len(tickers) == 0 {
		return nil, errors.New("registry: no tickers configured")
	}
	names := make(map[string]string, len(tickers))
	symbols := make([]string, 0, len(tickers))
	for symbol, name := range tickers {
		symbol = strings.TrimSpace(symbol)
		names[symbol] = strings.TrimSpace(name)
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	if defaultTicker == "" {
		defaultTicker = symbols[0]
	}
	if _, ok := names[defaultTicker]; !ok {
		return nil, fmt.Errorf("registry: default ticker %q not registered", defaultTicker)
	}
	return &Registry{names: names, symbols: symbols, defaultTicker: defaultTicker}, nil
}

// Resolve returns the company name for a ticker symbol.
func (r *Registry) Resolve(ticker string) (string, error) {
	name, ok := r.names[strings.TrimSpace(ticker)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}
	return name, nil
}

// Tickers returns the registered symbols in sorted order.
func (r *Registry) Tickers() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// Default returns the symbol selected when no choice has been made.
func (r *Registry) Default() string { return r.defaultTicker }
