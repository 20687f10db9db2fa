package screener

// DefaultUniverse is the built-in large-cap ticker list used when the
// caller supplies none.
var DefaultUniverse = []string{
	// Mega-cap tech / growth
	"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "META", "NVDA", "TSLA",
	"NFLX", "ADBE", "CRM", "INTC", "CSCO", "ORCL", "IBM",
	// Financials
	"JPM", "BAC", "WFC", "GS", "MS", "C", "BLK", "SCHW", "AXP", "V", "MA", "PYPL",
	// Energy
	"XOM", "CVX", "COP", "SLB", "EOG",
	// Healthcare
	"UNH", "JNJ", "PFE", "ABBV", "LLY", "MRK", "TMO",
	// Consumer / retail
	"KO", "PEP", "MCD", "SBUX", "COST", "WMT", "TGT", "HD", "LOW", "NKE",
	// Communications / media
	"DIS", "CMCSA", "T", "VZ",
}
