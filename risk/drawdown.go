package risk

// Level grades how much of a drawdown limit has been used.
type Level string

const (
	LevelSafe     Level = "Safe"
	LevelWarning  Level = "Warning"
	LevelDanger   Level = "Danger"
	LevelCritical Level = "Critical"
)

// Band boundaries in percent of the limit.
const (
	warningPct  = 70
	dangerPct   = 85
	criticalPct = 95
)

// DrawdownStatus is the graded level and the percentage of the limit used.
type DrawdownStatus struct {
	Level   Level
	Percent float64
}

// ClassifyDrawdown grades currentDD against limit. Without a limit the
// account is reported Safe at 0%.
func ClassifyDrawdown(currentDD, limit float64) DrawdownStatus {
	if limit <= 0 {
		return DrawdownStatus{Level: LevelSafe}
	}

	pct := currentDD / limit * 100
	switch {
	case pct >= criticalPct:
		return DrawdownStatus{Level: LevelCritical, Percent: pct}
	case pct >= dangerPct:
		return DrawdownStatus{Level: LevelDanger, Percent: pct}
	case pct >= warningPct:
		return DrawdownStatus{Level: LevelWarning, Percent: pct}
	}
	return DrawdownStatus{Level: LevelSafe, Percent: pct}
}
