package metrics

import (
	"context"
	"time"

	logging "github.com/textileio/go-log/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const prefix = "nearplugins"

var log = logging.Logger("metrics")

// Requester sends JSON-RPC requests.
type Requester interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// InstrumentedRequester counts and times the calls of a Requester.
type InstrumentedRequester struct {
	next Requester

	calls    metric.Int64Counter
	duration metric.Int64Histogram
}

// NewRequester wraps next, recording each call with meter.
func NewRequester(next Requester, meter metric.Meter) *InstrumentedRequester {
	m := metric.Must(meter)
	return &InstrumentedRequester{
		next:     next,
		calls:    m.NewInt64Counter(prefix + "_rpc_calls_total"),
		duration: m.NewInt64Histogram(prefix + "_rpc_call_duration_millis"),
	}
}

// CallContext implements Requester.
func (r *InstrumentedRequester) CallContext(
	ctx context.Context,
	result interface{},
	method string,
	args ...interface{},
) (err error) {
	attrMethod := attribute.String("method", method)
	defer func() { MetricIncrCounter(ctx, err, r.calls, attrMethod) }()
	start := time.Now()
	err = r.next.CallContext(ctx, result, method, args...)
	r.duration.Record(ctx, time.Since(start).Milliseconds(), attrMethod)
	return err
}
