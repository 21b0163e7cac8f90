// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/oneconcern/domx/pkg/metrics"
	"github.com/oneconcern/domx/pkg/storage/status"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Instrument decorates a store with tracing spans, debug logs and operation metrics.
//
// Any of tr, logger and m may be nil.
func Instrument(tr opentracing.Tracer, logger *zap.Logger, m *metrics.Metrics, store Store) Store {
	if tr == nil {
		tr = opentracing.NoopTracer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedStore{
		tr:      tr,
		store:   store,
		metrics: m,
		logger:  logger.With(zap.String("model", store.String())),
	}
}

type instrumentedStore struct {
	store   Store
	tr      opentracing.Tracer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func (i *instrumentedStore) opName(name string) string {
	return strings.Join([]string{"storage", i.String(), name}, ".")
}

func (i *instrumentedStore) spanFromContext(ctx context.Context, name string) opentracing.Span {
	parent := opentracing.SpanFromContext(ctx)
	var span opentracing.Span
	if parent != nil {
		span = i.tr.StartSpan(name, opentracing.ChildOf(parent.Context()))
	} else {
		span = i.tr.StartSpan(name)
	}
	return span
}

func (i *instrumentedStore) done(span opentracing.Span, op string, start time.Time, err error) {
	if err != nil {
		span.SetTag("error", true)
		span.LogKV("message", err.Error())
	}
	span.Finish()
	i.metrics.Observe(op, start, err)
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (has bool, err error) {
	span, start := i.spanFromContext(ctx, i.opName("Has")), time.Now()
	defer func() { i.done(span, "Has", start, err) }()
	i.logger.Debug("storage has", zap.String("key", key))

	return i.store.Has(ctx, key)
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (rdr io.ReadCloser, err error) {
	span, start := i.spanFromContext(ctx, i.opName("Get")), time.Now()
	defer func() { i.done(span, "Get", start, err) }()

	i.logger.Debug("storage get", zap.String("key", key))
	return i.store.Get(ctx, key)
}

func (i *instrumentedStore) Stat(ctx context.Context, key string) (info Info, err error) {
	span, start := i.spanFromContext(ctx, i.opName("Stat")), time.Now()
	defer func() { i.done(span, "Stat", start, err) }()

	i.logger.Debug("storage stat", zap.String("key", key))
	return i.store.Stat(ctx, key)
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader) (err error) {
	span, start := i.spanFromContext(ctx, i.opName("Put")), time.Now()
	defer func() { i.done(span, "Put", start, err) }()

	i.logger.Debug("storage put", zap.String("key", key))
	return i.store.Put(ctx, key, rdr)
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) (err error) {
	span, start := i.spanFromContext(ctx, i.opName("Delete")), time.Now()
	defer func() { i.done(span, "Delete", start, err) }()

	i.logger.Debug("storage delete", zap.String("key", key))
	return i.store.Delete(ctx, key)
}

func (i *instrumentedStore) Keys(ctx context.Context) (keys []string, err error) {
	span, start := i.spanFromContext(ctx, i.opName("Keys")), time.Now()
	defer func() { i.done(span, "Keys", start, err) }()
	i.logger.Debug("storage keys")

	return i.store.Keys(ctx)
}

// Move delegates to the decorated store when it supports moves.
func (i *instrumentedStore) Move(ctx context.Context, key string, dest Store, destKey string) (err error) {
	span, start := i.spanFromContext(ctx, i.opName("Move")), time.Now()
	defer func() { i.done(span, "Move", start, err) }()
	i.logger.Debug("storage move", zap.String("key", key), zap.String("dest", dest.String()), zap.String("destKey", destKey))

	mover, ok := i.store.(Mover)
	if !ok {
		return errors.Wrapf(status.ErrNotSupported, "move on %s", i.store)
	}
	return mover.Move(ctx, key, dest, destKey)
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}

func (i *instrumentedStore) Unwrap() Store {
	return i.store
}
