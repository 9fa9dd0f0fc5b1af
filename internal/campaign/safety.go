package campaign

import (
	"fmt"

	"github.com/ignite/gophish-awareness/internal/config"
)

// ConfirmPhrase must be passed verbatim via --confirm before any live send.
const ConfirmPhrase = "I-UNDERSTAND-THIS-IS-AWARENESS"

// SendMode is the resolved safety posture for a run. It is decided once,
// before any side-effecting call, instead of scattering boolean checks.
type SendMode int

const (
	// ModeReportOnly fetches results without touching campaign state.
	ModeReportOnly SendMode = iota
	// ModeDryRun validates and prints the plan without sending.
	ModeDryRun
	// ModeLiveConfirmed creates the campaign; emails will be dispatched.
	ModeLiveConfirmed
	// ModeLiveBlocked refuses to send; Reason in Gate says why.
	ModeLiveBlocked
)

func (m SendMode) String() string {
	switch m {
	case ModeReportOnly:
		return "report-only"
	case ModeDryRun:
		return "dry-run"
	case ModeLiveConfirmed:
		return "live-confirmed"
	case ModeLiveBlocked:
		return "live-blocked"
	default:
		return "unknown"
	}
}

// Gate is the outcome of safety resolution.
type Gate struct {
	Mode   SendMode
	Reason string
}

// GateOptions carries the CLI flags that influence safety resolution.
type GateOptions struct {
	ReportOnly bool
	DryRun     bool
	Confirm    string
}

// ResolveSendMode decides the send mode from config and flags.
// Precedence: report-only, then dry run (flag or config), then live send
// which requires both allow_live_send and the exact confirmation phrase.
func ResolveSendMode(cfg *config.Config, opts GateOptions) Gate {
	if opts.ReportOnly {
		return Gate{Mode: ModeReportOnly}
	}

	// Dry run is the safest default and always wins over live settings.
	if opts.DryRun || cfg.DryRun {
		return Gate{Mode: ModeDryRun}
	}

	if !cfg.AllowLiveSend {
		return Gate{
			Mode:   ModeLiveBlocked,
			Reason: "allow_live_send is false. Refusing to send awareness emails.",
		}
	}

	if opts.Confirm != ConfirmPhrase {
		return Gate{
			Mode:   ModeLiveBlocked,
			Reason: fmt.Sprintf("missing --confirm phrase. Use --confirm %s to proceed.", ConfirmPhrase),
		}
	}

	return Gate{Mode: ModeLiveConfirmed}
}
