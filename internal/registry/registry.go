// Package registry holds the static list of YieldMax fund tickers the
// dashboard knows about. The list mirrors the fund lineup published on the
// YieldMax ETFs website; it is intentionally hardcoded and only changes with
// a release.
package registry

// yieldmaxTickers is the full YieldMax fund lineup, in listing order.
var yieldmaxTickers = []string{
	"TSLY", "OARK", "APLY", "NVDY", "AMZY", "FBY", "GOOY", "CONY", "NFLY", "DISO",
	"MSFO", "XOMO", "JPMO", "AMDY", "PYPY", "SQY", "MRNY", "AIYY", "YMAX", "YMAG",
	"MSTY", "ULTY", "YBIT", "CRSH", "GDXY", "SNOY", "ABNY", "FIAT", "DIPS", "BABO",
	"YQQQ", "TSMY", "SMCY", "PLTY", "BIGY", "SOXY", "MARO",
}

// defaultSelection is the ticker set pre-selected in the UI.
var defaultSelection = []string{"YMAX", "YMAG"}

// All returns the full ticker registry in listing order.
// The returned slice is a copy; callers may modify it freely.
func All() []string {
	tickers := make([]string, len(yieldmaxTickers))
	copy(tickers, yieldmaxTickers)
	return tickers
}

// DefaultSelection returns the tickers selected by default in the UI.
func DefaultSelection() []string {
	selection := make([]string, len(defaultSelection))
	copy(selection, defaultSelection)
	return selection
}

// IsKnown reports whether symbol is part of the YieldMax fund registry.
func IsKnown(symbol string) bool {
	for _, t := range yieldmaxTickers {
		if t == symbol {
			return true
		}
	}
	return false
}
