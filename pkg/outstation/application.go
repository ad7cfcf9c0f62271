package outstation

import (
	"time"

	"avaneesh/dnp3-sim/pkg/field"
)

// Section names used to file validation errors
const (
	SectionIdentifier     = "identifier"
	SectionApplication    = "application"
	SectionStaticDefaults = "staticDefaults"
	SectionEventDefaults  = "eventDefaults"
	SectionTemplate       = "template"
)

// Application layer fields with their ranges and defaults
var (
	FieldUnsolicitedEnabled          = field.Bool{Name: "unsolicitedEnabled", Default: false}
	FieldSolicitedConfirmTimeoutMs   = field.Int{Name: "solicitedConfirmTimeoutMs", Min: 100, Max: 120000, Default: 5000}
	FieldUnsolicitedConfirmTimeoutMs = field.Int{Name: "unsolicitedConfirmTimeoutMs", Min: 100, Max: 120000, Default: 5000}
	FieldUnsolicitedRetryPeriodMs    = field.Int{Name: "unsolicitedRetryPeriodMs", Min: 100, Max: 120000, Default: 5000}
	FieldMaxTxFragmentSize           = field.Int{Name: "maxTxFragmentSize", Min: 20, Max: 2048, Default: 2048}
	FieldSelectTimeoutMs             = field.Int{Name: "selectTimeoutMs", Min: 100, Max: 120000, Default: 5000}
	FieldMaxControlsPerRequest       = field.Int{Name: "maxControlsPerRequest", Min: 1, Max: 16, Default: 1}
)

// ApplicationInput carries the raw, unvalidated application layer values
// collected by an editing surface. A nil field means "not supplied" and
// resolves to the field's default.
type ApplicationInput struct {
	UnsolicitedEnabled          interface{}
	SolicitedConfirmTimeoutMs   interface{}
	UnsolicitedConfirmTimeoutMs interface{}
	UnsolicitedRetryPeriodMs    interface{}
	MaxTxFragmentSize           interface{}
	SelectTimeoutMs             interface{}
	MaxControlsPerRequest       interface{}
}

// ApplicationConfig holds validated application layer timing and limits.
//
// The unsolicited confirm timeout and retry period are validated even when
// unsolicited responses are disabled; the protocol engine ignores them in
// that case.
type ApplicationConfig struct {
	UnsolicitedEnabled          bool
	SolicitedConfirmTimeoutMs   uint32
	UnsolicitedConfirmTimeoutMs uint32
	UnsolicitedRetryPeriodMs    uint32
	MaxTxFragmentSize           uint16
	SelectTimeoutMs             uint32
	MaxControlsPerRequest       uint8
}

// DefaultApplicationConfig returns the configuration every omitted field resolves to
func DefaultApplicationConfig() ApplicationConfig {
	return ApplicationConfig{
		UnsolicitedEnabled:          FieldUnsolicitedEnabled.Default,
		SolicitedConfirmTimeoutMs:   uint32(FieldSolicitedConfirmTimeoutMs.Default),
		UnsolicitedConfirmTimeoutMs: uint32(FieldUnsolicitedConfirmTimeoutMs.Default),
		UnsolicitedRetryPeriodMs:    uint32(FieldUnsolicitedRetryPeriodMs.Default),
		MaxTxFragmentSize:           uint16(FieldMaxTxFragmentSize.Default),
		SelectTimeoutMs:             uint32(FieldSelectTimeoutMs.Default),
		MaxControlsPerRequest:       uint8(FieldMaxControlsPerRequest.Default),
	}
}

// NewApplicationConfig checks every field of in. It never stops at the first
// failure: either a complete configuration is returned or every failing
// field is reported.
func NewApplicationConfig(in ApplicationInput) (ApplicationConfig, field.Errors) {
	var errs field.Errors

	unsol, err := FieldUnsolicitedEnabled.Check(in.UnsolicitedEnabled)
	errs.Add(err)
	solConfirm, err := FieldSolicitedConfirmTimeoutMs.Check(in.SolicitedConfirmTimeoutMs)
	errs.Add(err)
	unsolConfirm, err := FieldUnsolicitedConfirmTimeoutMs.Check(in.UnsolicitedConfirmTimeoutMs)
	errs.Add(err)
	unsolRetry, err := FieldUnsolicitedRetryPeriodMs.Check(in.UnsolicitedRetryPeriodMs)
	errs.Add(err)
	maxTxFrag, err := FieldMaxTxFragmentSize.Check(in.MaxTxFragmentSize)
	errs.Add(err)
	selectTimeout, err := FieldSelectTimeoutMs.Check(in.SelectTimeoutMs)
	errs.Add(err)
	maxControls, err := FieldMaxControlsPerRequest.Check(in.MaxControlsPerRequest)
	errs.Add(err)

	if len(errs) > 0 {
		return ApplicationConfig{}, errs.InSection(SectionApplication)
	}

	return ApplicationConfig{
		UnsolicitedEnabled:          unsol,
		SolicitedConfirmTimeoutMs:   uint32(solConfirm),
		UnsolicitedConfirmTimeoutMs: uint32(unsolConfirm),
		UnsolicitedRetryPeriodMs:    uint32(unsolRetry),
		MaxTxFragmentSize:           uint16(maxTxFrag),
		SelectTimeoutMs:             uint32(selectTimeout),
		MaxControlsPerRequest:       uint8(maxControls),
	}, nil
}

// Input converts a validated configuration back into raw input, for
// re-editing an existing outstation.
func (c ApplicationConfig) Input() ApplicationInput {
	return ApplicationInput{
		UnsolicitedEnabled:          c.UnsolicitedEnabled,
		SolicitedConfirmTimeoutMs:   c.SolicitedConfirmTimeoutMs,
		UnsolicitedConfirmTimeoutMs: c.UnsolicitedConfirmTimeoutMs,
		UnsolicitedRetryPeriodMs:    c.UnsolicitedRetryPeriodMs,
		MaxTxFragmentSize:           c.MaxTxFragmentSize,
		SelectTimeoutMs:             c.SelectTimeoutMs,
		MaxControlsPerRequest:       c.MaxControlsPerRequest,
	}
}

func millis(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// SolicitedConfirmTimeout returns the solicited response confirm timeout
func (c ApplicationConfig) SolicitedConfirmTimeout() time.Duration {
	return millis(c.SolicitedConfirmTimeoutMs)
}

// UnsolicitedConfirmTimeout returns the unsolicited response confirm timeout
func (c ApplicationConfig) UnsolicitedConfirmTimeout() time.Duration {
	return millis(c.UnsolicitedConfirmTimeoutMs)
}

// UnsolicitedRetryPeriod returns the delay between unsolicited retries
func (c ApplicationConfig) UnsolicitedRetryPeriod() time.Duration {
	return millis(c.UnsolicitedRetryPeriodMs)
}

// SelectTimeout returns how long a select stays armed before operate
func (c ApplicationConfig) SelectTimeout() time.Duration {
	return millis(c.SelectTimeoutMs)
}

// UnsolicitedActive reports whether unsolicited reporting should run. The
// unsolicited timers only take effect when it does.
func (c ApplicationConfig) UnsolicitedActive() bool {
	return c.UnsolicitedEnabled
}
