package tabular

// Candidate header names for the default column selection, tried in priority
// order with exact case-sensitive matching. English first, then the
// Portuguese names common in instrument exports.
var (
	TimeColumnCandidates = []string{
		"time", "tempo", "Time", "Tempo", "rt", "t",
	}
	SignalColumnCandidates = []string{
		"signal", "sinal", "intensity",
		"Signal", "Sinal", "Intensity", "intensidade", "mAU",
	}
)

// GuessTimeColumn picks the default time column: first candidate match, else
// the first column.
func GuessTimeColumn(columns []string) string {
	return guess(columns, TimeColumnCandidates, 0)
}

// GuessSignalColumn picks the default signal column: first candidate match,
// else the second column when there is one.
func GuessSignalColumn(columns []string) string {
	fallback := 0
	if len(columns) > 1 {
		fallback = 1
	}
	return guess(columns, SignalColumnCandidates, fallback)
}

func guess(columns, candidates []string, fallback int) string {
	for _, want := range candidates {
		for _, col := range columns {
			if col == want {
				return col
			}
		}
	}
	if len(columns) == 0 {
		return ""
	}
	return columns[fallback]
}
