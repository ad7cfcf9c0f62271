package link

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quic-go/quic-go"
	"github.com/spf13/cast"

	"avaneesh/dnp3-sim/pkg/field"
)

// Section is the name validation errors for the link configuration are filed under
const Section = "link"

// Addresses 0xFFF0-0xFFFF are reserved for broadcast and self-address
const MaxStationAddress = 0xFFEF

// Defaults for an outstation link
const (
	DefaultLocalAddress       = 1024
	DefaultRemoteAddress      = 1
	DefaultResponseTimeoutMs  = 1000
	DefaultKeepAliveTimeoutMs = 60000
)

// Config holds the data-link parameters of one outstation
type Config struct {
	LocalAddress       uint16 `json:"localAddress" yaml:"localAddress" validate:"max=65519"`
	RemoteAddress      uint16 `json:"remoteAddress" yaml:"remoteAddress" validate:"max=65519,nefield=LocalAddress"`
	UseConfirmations   bool   `json:"useConfirmations" yaml:"useConfirmations"`
	NumRetry           uint8  `json:"numRetry" yaml:"numRetry"`
	ResponseTimeoutMs  uint32 `json:"responseTimeoutMs" yaml:"responseTimeoutMs" validate:"min=100,max=60000"`
	KeepAliveTimeoutMs uint32 `json:"keepAliveTimeoutMs" yaml:"keepAliveTimeoutMs" validate:"min=1000,max=3600000"`
}

// Declared ranges, used to report OutOfRange with the full permitted range
var ranges = map[string]field.Int{
	"localAddress":       {Name: "localAddress", Min: 0, Max: MaxStationAddress, Default: DefaultLocalAddress},
	"remoteAddress":      {Name: "remoteAddress", Min: 0, Max: MaxStationAddress, Default: DefaultRemoteAddress},
	"responseTimeoutMs":  {Name: "responseTimeoutMs", Min: 100, Max: 60000, Default: DefaultResponseTimeoutMs},
	"keepAliveTimeoutMs": {Name: "keepAliveTimeoutMs", Min: 1000, Max: 3600000, Default: DefaultKeepAliveTimeoutMs},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DefaultConfig returns the link configuration of a fresh outstation
func DefaultConfig() Config {
	return Config{
		LocalAddress:       DefaultLocalAddress,
		RemoteAddress:      DefaultRemoteAddress,
		NumRetry:           0,
		ResponseTimeoutMs:  DefaultResponseTimeoutMs,
		KeepAliveTimeoutMs: DefaultKeepAliveTimeoutMs,
	}
}

// Normalize replaces omitted (zero) timeouts with their defaults
func (c Config) Normalize() Config {
	if c.ResponseTimeoutMs == 0 {
		c.ResponseTimeoutMs = DefaultResponseTimeoutMs
	}
	if c.KeepAliveTimeoutMs == 0 {
		c.KeepAliveTimeoutMs = DefaultKeepAliveTimeoutMs
	}
	return c
}

// Check normalizes c and validates every field. All failures are returned,
// each filed under Section.
func Check(c Config) (Config, field.Errors) {
	c = c.Normalize()

	var errs field.Errors
	err := validate.Struct(c)
	if err == nil {
		return c, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(field.InvalidValue("link", nil, err.Error()))
		return c, errs.InSection(Section)
	}

	for _, fe := range verrs {
		errs.Add(translate(fe))
	}
	return c, errs.InSection(Section)
}

func translate(fe validator.FieldError) *field.Error {
	name := fe.Field()
	value := fe.Value()

	switch fe.Tag() {
	case "min", "max", "gte", "lte":
		v, _ := cast.ToInt64E(value)
		if r, ok := ranges[name]; ok {
			return field.OutOfRange(name, v, r.Min, r.Max)
		}
		return field.InvalidValue(name, v, "violates "+fe.Tag()+"="+fe.Param())
	case "nefield":
		return field.InvalidValue(name, value, "must differ from "+lowerFirst(fe.Param()))
	}
	return field.InvalidValue(name, value, "failed "+fe.Tag()+" check")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ResponseTimeout returns the link response timeout
func (c Config) ResponseTimeout() time.Duration {
	return time.Duration(c.ResponseTimeoutMs) * time.Millisecond
}

// KeepAliveTimeout returns the idle period after which link status is requested
func (c Config) KeepAliveTimeout() time.Duration {
	return time.Duration(c.KeepAliveTimeoutMs) * time.Millisecond
}

// QUICConfig maps the link timing onto a QUIC transport configuration for
// outstations served over a QUIC channel. The connection is kept alive at the
// link keep-alive period and dropped once a keep-alive exchange, including
// retries, has gone unanswered.
func (c Config) QUICConfig() *quic.Config {
	c = c.Normalize()
	attempts := time.Duration(c.NumRetry) + 1
	return &quic.Config{
		HandshakeIdleTimeout: c.ResponseTimeout() * attempts,
		KeepAlivePeriod:      c.KeepAliveTimeout(),
		MaxIdleTimeout:       c.KeepAliveTimeout() + c.ResponseTimeout()*attempts,
	}
}
