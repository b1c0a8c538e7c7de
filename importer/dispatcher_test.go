package importer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifimport/wifi"
	"github.com/shazow/wifimport/wifi/mock"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *mock.MockBackend) {
	t.Helper()
	b, err := mock.New(nil)
	require.NoError(t, err)
	m := b.(*mock.MockBackend)
	m.ActionSleep = 0
	return NewDispatcher(testImporter(), m), m
}

func TestDispatcher_Batches(t *testing.T) {
	d, m := newTestDispatcher(t)
	src := validCSV(12)

	first := d.Dispatch(src)
	assert.Equal(t, StateBatch, first.State)
	assert.Len(t, first.Batch, 5)
	assert.Equal(t, 7, first.Remaining)
	assert.Equal(t, "Showing 5 networks. 7 remaining.", first.Summary())

	second := d.Dispatch(src)
	assert.Len(t, second.Batch, 5)
	assert.Equal(t, 2, second.Remaining)

	third := d.Dispatch(src)
	assert.Len(t, third.Batch, 2)
	assert.Equal(t, 0, third.Remaining)
	assert.Equal(t, "net-11", third.Batch[1].SSID())

	fourth := d.Dispatch(src)
	assert.Equal(t, StateExhausted, fourth.State)
	assert.Empty(t, fourth.Batch)
	assert.Equal(t, "All networks have been processed.", fourth.Summary())

	total, dispatched := d.Loaded()
	assert.Zero(t, total)
	assert.Zero(t, dispatched)

	// After exhaustion the next call starts over with a fresh load.
	fifth := d.Dispatch(src)
	assert.Equal(t, StateBatch, fifth.State)
	assert.Equal(t, "net-0", fifth.Batch[0].SSID())

	proposed := m.Proposals()
	require.Len(t, proposed, 4)
	assert.Len(t, proposed[0], 5)
	assert.Len(t, proposed[2], 2)
}

func TestDispatcher_ExactMultiple(t *testing.T) {
	d, _ := newTestDispatcher(t)
	src := validCSV(5)

	assert.Equal(t, StateBatch, d.Dispatch(src).State)
	assert.Equal(t, StateExhausted, d.Dispatch(src).State)
}

func TestDispatcher_NoNetworks(t *testing.T) {
	d, m := newTestDispatcher(t)

	res := d.Dispatch(BytesSource("ssid,password,security\n"))
	assert.Equal(t, StateEmpty, res.State)
	assert.Equal(t, "No networks found in CSV.", res.Summary())

	res = d.Dispatch(BytesSource("ssid,password,security\nx,,WPA2\ny\n"))
	assert.Equal(t, StateEmpty, res.State)
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, "Found 2 errors. Press 'e' for details.", res.Summary())
	assert.Len(t, d.Errors(), 2)

	assert.Empty(t, m.Proposals())
}

func TestDispatcher_LoadsOnlyOnce(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Dispatch(validCSV(7))
	// A different source is ignored while a load is in progress.
	res := d.Dispatch(validCSV(1))
	assert.Len(t, res.Batch, 2)
	assert.Equal(t, "net-6", res.Batch[1].SSID())
}

func TestDispatcher_Reset(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Dispatch(validCSV(7))
	d.Reset()
	res := d.Dispatch(validCSV(1))
	require.Len(t, res.Batch, 1)
	assert.Equal(t, 0, res.Remaining)
}

func TestDispatcher_Concurrent(t *testing.T) {
	d, m := newTestDispatcher(t)
	src := validCSV(50)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(src)
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, batch := range m.Proposals() {
		for _, s := range batch {
			assert.False(t, seen[s.SSID()], "duplicate dispatch of %s", s.SSID())
			seen[s.SSID()] = true
		}
	}
	assert.Len(t, seen, 50)
}

func TestDispatch_BatchIsolated(t *testing.T) {
	d, _ := newTestDispatcher(t)
	src := validCSV(7)

	first := d.Dispatch(src)
	// Appending to a batch must not clobber the next one.
	_ = append(first.Batch, wifi.Suggestion{})
	second := d.Dispatch(src)
	assert.Equal(t, "net-5", second.Batch[0].SSID())
}
