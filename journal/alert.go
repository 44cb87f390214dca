package journal

import (
	"fmt"
	"time"
)

type AlertType string

const (
	AlertMaxDrawdown   AlertType = "MAX_DD"
	AlertDailyDrawdown AlertType = "DAILY_DD"
	AlertProfitTarget  AlertType = "PROFIT_TARGET"
	AlertPhasePassed   AlertType = "PHASE_PASSED"
)

type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeveritySuccess  Severity = "SUCCESS"
	SeverityWarning  Severity = "WARNING"
	SeverityDanger   Severity = "DANGER"
	SeverityCritical Severity = "CRITICAL"
)

// TradingAlert is a risk or progress notification derived from an
// account and its trades.
type TradingAlert struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"accountId"`
	Type         AlertType `json:"type"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	CurrentValue float64   `json:"currentValue"`
	LimitValue   float64   `json:"limitValue"`
	Percentage   float64   `json:"percentage"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Key identifies the condition an alert reports, independent of when it
// was detected. Two detections of the same condition share a key.
func (a TradingAlert) Key() string {
	return fmt.Sprintf("%s:%s:%s", a.AccountID, a.Type, a.Severity)
}

// AlertSettings are the user's alert thresholds, all in percent.
type AlertSettings struct {
	MaxDrawdownWarning    float64 `json:"maxDrawdownWarning" yaml:"max_drawdown_warning"`
	MaxDrawdownDanger     float64 `json:"maxDrawdownDanger" yaml:"max_drawdown_danger"`
	MaxDrawdownCritical   float64 `json:"maxDrawdownCritical" yaml:"max_drawdown_critical"`
	DailyDrawdownWarning  float64 `json:"dailyDrawdownWarning" yaml:"daily_drawdown_warning"`
	DailyDrawdownDanger   float64 `json:"dailyDrawdownDanger" yaml:"daily_drawdown_danger"`
	DailyDrawdownCritical float64 `json:"dailyDrawdownCritical" yaml:"daily_drawdown_critical"`
	ProfitTargetInfo      float64 `json:"profitTargetInfo" yaml:"profit_target_info"`
	EnableSounds          bool    `json:"enableSounds" yaml:"enable_sounds"`
	EnableNotifications   bool    `json:"enableNotifications" yaml:"enable_notifications"`
}

// DefaultAlertSettings are used until the user saves their own.
func DefaultAlertSettings() AlertSettings {
	return AlertSettings{
		MaxDrawdownWarning:    70,
		MaxDrawdownDanger:     80,
		MaxDrawdownCritical:   90,
		DailyDrawdownWarning:  60,
		DailyDrawdownDanger:   80,
		DailyDrawdownCritical: 90,
		ProfitTargetInfo:      80,
		EnableSounds:          true,
		EnableNotifications:   true,
	}
}
