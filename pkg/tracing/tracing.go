package tracing

import (
	"context"
	"fmt"
	"trade_desk/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	jCfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
)

var (
	serviceName = "trade_desk"
	spanPrefix  = ""
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// SetSpanPrefix sets the namespace put in front of every span started with StartSpan.
func SetSpanPrefix(prefix string) string {
	old := spanPrefix
	spanPrefix = prefix
	return old
}

type Config struct {
	Host string
	Port int
	// SampleRate in (0,1) samples probabilistically; anything else keeps every trace.
	SampleRate float64
	SpanPrefix string
}

func samplerConfig(rate float64) *jCfg.SamplerConfig {
	if rate > 0 && rate < 1 {
		return &jCfg.SamplerConfig{Type: "probabilistic", Param: rate}
	}
	return &jCfg.SamplerConfig{Type: "const", Param: 1}
}

// InitTracer installs a jaeger tracer as the global opentracing tracer.
// Until it is called, opentracing falls back to its no-op tracer.
func InitTracer(conf Config) (opentracing.Tracer, func(), error) {
	cfg := &jCfg.Configuration{
		ServiceName: serviceName,
		Sampler:     samplerConfig(conf.SampleRate),
		Reporter: &jCfg.ReporterConfig{
			LogSpans:           true,
			LocalAgentHostPort: fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		},
	}

	tracer, closer, err := cfg.NewTracer(
		jCfg.Metrics(metrics.NullFactory),
	)
	if err != nil {
		return nil, nil, err
	}

	SetSpanPrefix(conf.SpanPrefix)
	opentracing.SetGlobalTracer(tracer)
	return tracer, func() {
		if err := closer.Close(); err != nil {
			logger.Error("closing jaeger tracer: %v", err)
		}
	}, nil
}

// SpanName is op under the configured prefix.
func SpanName(op string) string {
	if spanPrefix == "" {
		return op
	}
	return spanPrefix + "." + op
}

// StartSpan starts a child of the span in ctx, if any, on the global tracer.
func StartSpan(ctx context.Context, op string) (opentracing.Span, context.Context) {
	return opentracing.StartSpanFromContext(ctx, SpanName(op))
}

// Finish marks the span failed when *err is set and finishes it. Meant for defer.
func Finish(span opentracing.Span, err *error) {
	if err != nil && *err != nil {
		ext.Error.Set(span, true)
		span.SetTag("error.message", (*err).Error())
	}
	span.Finish()
}
