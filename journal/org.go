package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in the PROPERTIES drawer; the trader's notes, if any,
// seed the Review section.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Pair, t.Direction, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ACCOUNT_ID: %s\n", t.AccountID))
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	b.WriteString(fmt.Sprintf(":LOTS: %.2f\n", t.TotalLots))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	if t.ExitPrice != nil {
		b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", *t.ExitPrice))
	}
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.5f\n", t.StopLoss))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", t.TakeProfit))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", t.OpenDatetime))
	if t.CloseDatetime != "" {
		b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", t.CloseDatetime))
	}
	b.WriteString(fmt.Sprintf(":PNL: %.2f\n", t.TotalPnl))
	b.WriteString(fmt.Sprintf(":PNL_WITH_FEES: %.2f\n", t.PnLWithFees()))
	b.WriteString(fmt.Sprintf(":RISK_REWARD: %.2f\n", t.RiskReward))
	b.WriteString(fmt.Sprintf(":PARTIALS: %d\n", len(t.Partials)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n")
	for _, p := range t.Partials {
		b.WriteString(fmt.Sprintf("- partial %d: %.2f lots @ %.5f (%.2f) %s\n", p.CloseNumber, p.LotsClosed, p.ExitPrice, p.PnL, p.CloseDatetime))
	}
	if len(t.Partials) == 0 {
		b.WriteString("- \n")
	}
	b.WriteString("\n")
	b.WriteString("*** Review\n")
	if t.Notes != "" {
		b.WriteString(fmt.Sprintf("- %s\n", t.Notes))
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
