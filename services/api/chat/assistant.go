// Package chat answers free-text questions about the campus by routing them
// to an analyzer and phrasing the report as a reply.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/campus"
	"github.com/02loveslollipop/campus-pulse/services/api/metrics"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, req campus.Request) (campus.Result, error)
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Intent    string           `json:"intent"`
	Zone      string           `json:"zone,omitempty"`
	Text      string           `json:"reply"`
	Responder string           `json:"responder"`
	Headline  *campus.Headline `json:"headline,omitempty"`
}

type Assistant struct {
	analyzer  Analyzer
	registry  *registry.Registry
	responder Responder
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
}

func NewAssistant(a Analyzer, reg *registry.Registry, r Responder, m *metrics.Metrics, log logrus.FieldLogger) *Assistant {
	if r == nil {
		r = TemplateResponder{}
	}
	if log == nil {
		log = analysis.Env{}.Logger()
	}
	return &Assistant{analyzer: a, registry: reg, responder: r, metrics: m, log: log}
}

// Reply answers msg. An empty message is an invalid option.
func (a *Assistant) Reply(ctx context.Context, msg string) (Reply, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return Reply{}, analysis.Invalid("message", msg, "must not be empty")
	}

	d, ok := Resolve(msg)
	if !ok {
		return a.answer(ctx, IntentHelp, Prompt{Question: msg}, Reply{Intent: IntentHelp})
	}

	zone := ExtractZone(a.registry, d, msg)
	res, err := a.analyzer.Analyze(ctx, campus.Request{Domain: d, Zone: zone, Options: ExtractOptions(d, msg)})
	if errors.Is(err, analysis.ErrInvalidOption) {
		// Phrased options are best effort; retry on defaults.
		a.log.WithError(err).WithField("domain", d).Debug("dropping options parsed from message")
		res, err = a.analyzer.Analyze(ctx, campus.Request{Domain: d, Zone: zone})
	}
	if err != nil {
		return Reply{}, err
	}
	return a.answer(ctx, string(d), Prompt{Question: msg, Result: &res}, Reply{Intent: string(d), Zone: res.Zone, Headline: &res.Headline})
}

func (a *Assistant) answer(ctx context.Context, intent string, p Prompt, r Reply) (Reply, error) {
	ans, err := a.responder.Respond(ctx, p)
	if err != nil {
		return Reply{}, err
	}
	a.metrics.ChatReply(intent, ans.Responder)
	r.Text, r.Responder = ans.Text, ans.Responder
	return r, nil
}
