package backtest

import "github.com/rustyeddy/tradelog/trade"

// Streaks returns the longest runs of winning and losing trades in the
// given order. Break-even trades are skipped: they neither extend nor
// break a run.
func Streaks(sorted []trade.Trade) (maxWin, maxLose int) {
	var (
		current int
		lastWin bool
		started bool
	)
	for _, t := range sorted {
		var win bool
		switch t.Profit().Sign() {
		case 1:
			win = true
		case -1:
			win = false
		default:
			continue
		}

		if started && win == lastWin {
			current++
		} else {
			current = 1
		}
		started, lastWin = true, win

		if win && current > maxWin {
			maxWin = current
		}
		if !win && current > maxLose {
			maxLose = current
		}
	}
	return maxWin, maxLose
}
