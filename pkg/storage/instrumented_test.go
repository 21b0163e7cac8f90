package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/oneconcern/domx/pkg/metrics"
	"github.com/oneconcern/domx/pkg/storage"
	"github.com/oneconcern/domx/pkg/storage/localfs"
	"github.com/oneconcern/domx/pkg/storage/status"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noMove struct {
	storage.Store
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	tr := mocktracer.New()
	m := metrics.New()
	require.NoError(t, fs.MkdirAll("/objects", 0755))

	base := localfs.New(fs, "/objects")
	store := storage.Instrument(tr, nil, m, base)
	assert.Equal(t, base.String(), store.String())
	assert.Equal(t, base, storage.Unwrap(store))

	require.NoError(t, store.Put(ctx, "a.xml", strings.NewReader("<a/>")))
	rdr, err := store.Get(ctx, "a.xml")
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "<a/>", string(b))

	_, err = store.Get(ctx, "missing.xml")
	require.Error(t, err)

	spans := tr.FinishedSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "storage."+base.String()+".Put", spans[0].OperationName)
	assert.Equal(t, true, spans[2].Tag("error"))

	ops, err := testutil.GatherAndCount(m.Registry(), "domx_storage_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, ops) // Put and Get
	failures, err := testutil.GatherAndCount(m.Registry(), "domx_storage_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
}

func TestInstrumentMove(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src", 0755))
	require.NoError(t, fs.MkdirAll("/dst", 0755))

	src := storage.Instrument(nil, nil, nil, localfs.New(fs, "/src"))
	dst := localfs.New(fs, "/dst")
	require.NoError(t, src.Put(ctx, "a.xml", strings.NewReader("<a/>")))

	mover, ok := src.(storage.Mover)
	require.True(t, ok)
	require.NoError(t, mover.Move(ctx, "a.xml", dst, "b.xml"))

	has, err := dst.Has(ctx, "b.xml")
	require.NoError(t, err)
	assert.True(t, has)

	plain := storage.Instrument(nil, nil, nil, noMove{Store: localfs.New(fs, "/src")})
	err = plain.(storage.Mover).Move(ctx, "a.xml", dst, "c.xml")
	assert.True(t, errors.Is(err, status.ErrNotSupported))
}
