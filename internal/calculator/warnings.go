package calculator

import (
	"fmt"
	"time"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// WarningKind classifies a known approximation in the computed report.
type WarningKind string

const (
	WarnSellToCoverBasis WarningKind = "sell-to-cover-basis"
	WarnSplitSaleFees    WarningKind = "split-sale-fees"
	WarnInboundTransfer  WarningKind = "inbound-transfer"
)

// Warning flags a result that is computed but may be inaccurate.
type Warning struct {
	Kind    WarningKind
	Date    time.Time
	Message string
}

func (w Warning) String() string {
	if w.Date.IsZero() {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, model.FormatDate(w.Date), w.Message)
}
