// Package campus routes analysis requests to the six domain analyzers and
// records, publishes and summarizes their reports.
package campus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/footfall"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/greenery"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/parking"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/space"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/waste"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/water"
	"github.com/02loveslollipop/campus-pulse/services/api/metrics"
	"github.com/02loveslollipop/campus-pulse/services/api/publish"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// ErrUnknownDomain is returned for a domain name outside Domains.
var ErrUnknownDomain = errors.New("unknown domain")

type Domain string

const (
	Space    Domain = "space"
	Footfall Domain = "footfall"
	Water    Domain = "water"
	Waste    Domain = "waste"
	Parking  Domain = "parking"
	Greenery Domain = "greenery"
)

// Domains lists every analyzer in dashboard order.
var Domains = []Domain{Space, Footfall, Water, Waste, Parking, Greenery}

var defaultZones = map[Domain]string{
	Space:    "campus",
	Footfall: footfall.ZoneAll,
	Water:    "Z1",
	Waste:    "campus_wide",
	Parking:  parking.LotAll,
	Greenery: "campus",
}

// DefaultZone is the zone used when a request names none.
func (d Domain) DefaultZone() string { return defaultZones[d] }

func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := defaultZones[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return d, nil
}

// Analyzers holds one analyzer per domain.
type Analyzers struct {
	Space    *space.Analyzer
	Footfall *footfall.Analyzer
	Water    *water.Analyzer
	Waste    *waste.Analyzer
	Parking  *parking.Analyzer
	Greenery *greenery.Analyzer
}

// Simulated wires every analyzer to its synthetic signal source.
func Simulated(env analysis.Env, noise signal.Noise, waterDetector string) Analyzers {
	params := env.Registry.WaterParameters()
	return Analyzers{
		Space:    space.New(env, space.NewSimulator(noise), space.NewSeasonalModel()),
		Footfall: footfall.New(env, footfall.NewSimulator(noise)),
		Water:    water.New(env, water.NewSimulator(params, noise), water.NewDetector(waterDetector, params, env.Logger())),
		Waste:    waste.New(env, waste.NewSimulator(noise)),
		Parking:  parking.New(env, parking.NewSimulator(noise)),
		Greenery: greenery.New(env, greenery.NewSimulator(noise)),
	}
}

// Request asks one domain about one zone. Readings carry a water sensor or
// greenery soil override.
type Request struct {
	Domain   Domain
	Zone     string
	Options  map[string]string
	Readings signal.Sample
}

// Result is a report with its dashboard headline.
type Result struct {
	Domain   Domain   `json:"domain"`
	Zone     string   `json:"zone"`
	Headline Headline `json:"headline"`
	Report   any      `json:"report"`
}

type Service struct {
	analyzers Analyzers
	metrics   *metrics.Metrics
	sink      publish.Sink
	log       logrus.FieldLogger
	clock     signal.Clock
	workers   int
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }
func WithSink(sink publish.Sink) Option     { return func(s *Service) { s.sink = sink } }
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}
func WithClock(c signal.Clock) Option { return func(s *Service) { s.clock = c } }

// WithWorkers bounds how many analyzers Overview runs at once.
func WithWorkers(n int) Option { return func(s *Service) { s.workers = n } }

func NewService(a Analyzers, opts ...Option) *Service {
	s := &Service{
		analyzers: a,
		sink:      publish.Nop{},
		log:       analysis.Env{}.Logger(),
		clock:     signal.SystemClock,
		workers:   len(Domains),
	}
	for _, o := range opts {
		o(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// Analyze runs one analyzer and publishes its report. Publishing failures
// are logged and never fail the request.
func (s *Service) Analyze(ctx context.Context, req Request) (Result, error) {
	if _, ok := defaultZones[req.Domain]; !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownDomain, req.Domain)
	}
	zone := strings.TrimSpace(req.Zone)
	if zone == "" {
		zone = req.Domain.DefaultZone()
	}

	start := time.Now()
	report, err := s.dispatch(ctx, req.Domain, zone, req.Options, req.Readings)
	s.metrics.Analysis(string(req.Domain), time.Since(start), err)
	entry := s.log.WithFields(logrus.Fields{"domain": req.Domain, "zone": zone, "elapsed": time.Since(start)})
	if err != nil {
		entry.WithError(err).Debug("analysis rejected")
		return Result{}, err
	}
	entry.Debug("analysis complete")

	h := HeadlineOf(report)
	for sev, n := range h.Severities {
		s.metrics.Anomalies(string(req.Domain), sev, n)
	}
	s.publish(ctx, req.Domain, zone, h, report)

	return Result{Domain: req.Domain, Zone: zone, Headline: h, Report: report}, nil
}

func (s *Service) publish(ctx context.Context, d Domain, zone string, h Headline, report any) {
	ev, err := publish.NewEvent(string(d), zone, h.String(), s.clock(), report)
	if err == nil {
		err = s.sink.Publish(ctx, ev)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{"domain": d, "zone": zone, "sink": s.sink.Name()}).
			WithError(err).Warn("report publish failed")
	}
}

func (s *Service) dispatch(ctx context.Context, d Domain, zone string, raw map[string]string, readings signal.Sample) (any, error) {
	opts := newOptionReader(raw)
	if len(readings) > 0 && d != Water && d != Greenery {
		return nil, analysis.Invalid("readings", readings, "only water and greenery accept readings")
	}

	switch d {
	case Space:
		o := space.Options{Hours: opts.int("hours"), SpaceType: opts.str("space_type")}
		if err := opts.done(); err != nil {
			return nil, err
		}
		return s.analyzers.Space.Analyze(ctx, zone, o)
	case Footfall:
		o := footfall.Options{TimeOfDay: opts.str("time_of_day")}
		if err := opts.done(); err != nil {
			return nil, err
		}
		return s.analyzers.Footfall.Analyze(ctx, zone, o)
	case Water:
		if err := opts.done(); err != nil {
			return nil, err
		}
		return s.analyzers.Water.Analyze(ctx, zone, water.Options{Sensors: readings})
	case Waste:
		o := waste.Options{Days: opts.int("days"), WasteType: opts.str("waste_type")}
		if err := opts.done(); err != nil {
			return nil, err
		}
		return s.analyzers.Waste.Analyze(ctx, zone, o)
	case Parking:
		o := parking.Options{ForecastHours: opts.int("forecast_hours"), At: opts.time("at")}
		if err := opts.done(); err != nil {
			return nil, err
		}
		return s.analyzers.Parking.Analyze(ctx, zone, o)
	case Greenery:
		o := greenery.Options{AreaSqm: opts.float("area_sqm"), Texture: opts.str("texture"), Soil: readings}
		if err := opts.done(); err != nil {
			return nil, err
		}
		return s.analyzers.Greenery.Analyze(ctx, zone, o)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
}
