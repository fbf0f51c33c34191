package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const systemPrompt = "You are the campus operations assistant. Answer the facility manager's question " +
	"using only the JSON analysis report provided. Be concise, use markdown, lead with the most " +
	"urgent finding and keep the report's recommendations."

type generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// LLMConfig points at an OpenAI-compatible chat endpoint.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	RPM     int
}

// LLMResponder phrases replies with a chat model, falling back to another
// responder when the model errors or returns nothing.
type LLMResponder struct {
	model    generator
	limiter  *rate.Limiter
	fallback Responder
	log      logrus.FieldLogger
}

// NewLLMResponder dials the chat model. RPM spreads requests evenly over a
// minute with a burst of one.
func NewLLMResponder(ctx context.Context, cfg LLMConfig, fallback Responder, log logrus.FieldLogger) (*LLMResponder, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	rpm := cfg.RPM
	if rpm <= 0 {
		rpm = 30
	}
	return newLLMResponder(cm, rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1), fallback, log), nil
}

func newLLMResponder(g generator, limiter *rate.Limiter, fallback Responder, log logrus.FieldLogger) *LLMResponder {
	return &LLMResponder{model: g, limiter: limiter, fallback: fallback, log: log}
}

func (l *LLMResponder) Respond(ctx context.Context, p Prompt) (Answer, error) {
	if p.Result == nil {
		return l.fallback.Respond(ctx, p)
	}
	text, err := l.generate(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return Answer{}, ctx.Err()
		}
		l.log.WithError(err).WithField("domain", p.Result.Domain).Warn("chat model failed, using template reply")
		return l.fallback.Respond(ctx, p)
	}
	return Answer{Text: text, Responder: "llm"}, nil
}

func (l *LLMResponder) generate(ctx context.Context, p Prompt) (string, error) {
	report, err := json.Marshal(p.Result)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: "Question: " + p.Question + "\n\nReport:\n" + string(report)},
	}
	resp, err := l.model.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
