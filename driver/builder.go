package driver

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/instclass/classify"
)

// Builder can create drivers.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	batchSize int
	sink      Sink
}

// NewBuilder creates a builder with a serial engine, a 1 GHz clock and one
// function per tick.
func NewBuilder() Builder {
	return Builder{
		engine:    sim.NewSerialEngine(),
		freq:      1 * sim.GHz,
		batchSize: 1,
	}
}

// WithEngine sets the engine that drives the driver.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the tick frequency of the driver.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithBatchSize sets how many functions are classified per tick.
func (b Builder) WithBatchSize(n int) Builder {
	if n < 1 {
		panic("batch size must be at least 1")
	}
	b.batchSize = n
	return b
}

// WithSink sets where results are delivered.
func (b Builder) WithSink(sink Sink) Builder {
	b.sink = sink
	return b
}

// Build creates a driver.
func (b Builder) Build(name string) Driver {
	if b.engine == nil {
		panic("driver requires an engine")
	}
	if b.sink == nil {
		panic("driver requires a sink")
	}

	batchSize := b.batchSize
	if batchSize == 0 {
		batchSize = 1
	}
	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	d := &driverImpl{
		classifier: classify.NewClassifier(),
		sink:       b.sink,
		batchSize:  batchSize,
	}
	d.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, d)

	return d
}
