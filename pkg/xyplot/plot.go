package xyplot

import (
	"sync"
	"sync/atomic"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/josephlevy222/xyplot/pkg/xyplot/scale"
)

// Plot holds the current state of one plot. Readers take snapshots without
// locking; writers are serialized and each publishes a new snapshot with the
// next version number.
type Plot struct {
	mu      sync.Mutex
	current atomic.Pointer[plotSnapshot]
}

type plotSnapshot struct {
	data    models.PlotData
	version uint64
}

// NewPlot returns a Plot holding a copy of pd at version 0.
func NewPlot(pd models.PlotData) *Plot {
	p := &Plot{}
	p.current.Store(&plotSnapshot{data: pd.Clone()})
	return p
}

// Snapshot returns a copy of the current plot data and its version.
func (p *Plot) Snapshot() (models.PlotData, uint64) {
	s := p.current.Load()
	return s.data.Clone(), s.version
}

// Version returns the version of the current snapshot.
func (p *Plot) Version() uint64 {
	return p.current.Load().version
}

// Update applies fn to a copy of the current data, rescales the axes when
// auto-scaling is enabled and publishes the result. fn may be nil.
func (p *Plot) Update(fn func(pd *models.PlotData)) uint64 {
	return p.publish(func(pd models.PlotData) models.PlotData {
		if fn != nil {
			fn(&pd)
		}
		return scale.ScaleAxes(pd)
	})
}

// Rescale recomputes the axes regardless of the auto-scale setting and
// publishes the result.
func (p *Plot) Rescale() uint64 {
	return p.publish(scale.AxesScale)
}

// Pin applies fn to a copy of the current data and publishes it without
// rescaling, for settings that must override the computed axes.
func (p *Plot) Pin(fn func(pd *models.PlotData)) uint64 {
	return p.publish(func(pd models.PlotData) models.PlotData {
		fn(&pd)
		return pd
	})
}

func (p *Plot) publish(transform func(models.PlotData) models.PlotData) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.current.Load()
	next := &plotSnapshot{
		data:    transform(prev.data.Clone()),
		version: prev.version + 1,
	}
	p.current.Store(next)
	return next.version
}
