package tracing

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider(t *testing.T) {
	Convey("Given tracing configuration", t, func() {
		ctx := context.Background()

		Convey("When tracing is disabled", func() {
			p, err := NewProvider(ctx, Config{Enabled: false})

			Convey("Then a no-op provider should be returned", func() {
				So(err, ShouldBeNil)
				So(p.IsEnabled(), ShouldBeFalse)
				So(p.Tracer("test"), ShouldNotBeNil)
				So(p.Shutdown(ctx), ShouldBeNil)
			})
		})

		Convey("When the service name is missing", func() {
			_, err := NewProvider(ctx, Config{Enabled: true, SamplingRate: 1})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, ErrMissingServiceName), ShouldBeTrue)
			})
		})

		Convey("When the sampling rate is out of range", func() {
			_, err := NewProvider(ctx, Config{Enabled: true, ServiceName: "svc", SamplingRate: 1.5})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, ErrInvalidSampling), ShouldBeTrue)
			})
		})
	})
}

func TestSamplerFor(t *testing.T) {
	Convey("Given sampling rates", t, func() {
		So(samplerFor(1).Description(), ShouldEqual, sdktrace.AlwaysSample().Description())
		So(samplerFor(0).Description(), ShouldEqual, sdktrace.NeverSample().Description())
		So(samplerFor(0.25).Description(), ShouldEqual, sdktrace.TraceIDRatioBased(0.25).Description())
	})
}

func TestStartSpan(t *testing.T) {
	Convey("Given a recording tracer provider", t, func() {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		previous := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		Reset(func() {
			_ = tp.Shutdown(context.Background())
			otel.SetTracerProvider(previous)
		})

		Convey("When a span ends without error", func() {
			ctx, end := StartSpan(context.Background(), "ranking.evaluate", attribute.Int("items", 15))
			traceID := TraceID(ctx)
			SetAttributes(ctx, attribute.Int("score", 2))
			end(nil)

			Convey("Then it should be recorded with its attributes", func() {
				spans := recorder.Ended()
				So(len(spans), ShouldEqual, 1)
				So(spans[0].Name(), ShouldEqual, "ranking.evaluate")
				So(spans[0].Status().Code, ShouldEqual, codes.Unset)
				So(len(spans[0].Attributes()), ShouldEqual, 2)
				So(traceID, ShouldEqual, spans[0].SpanContext().TraceID().String())
			})
		})

		Convey("When a span ends with an error", func() {
			_, end := StartSpan(context.Background(), "ranking.team")
			end(errors.New("boom"))

			Convey("Then the error status should be set", func() {
				spans := recorder.Ended()
				So(len(spans), ShouldEqual, 1)
				So(spans[0].Status().Code, ShouldEqual, codes.Error)
				So(spans[0].Status().Description, ShouldEqual, "boom")
			})
		})
	})

	Convey("Given no active span", t, func() {
		So(TraceID(context.Background()), ShouldEqual, "")
	})
}
