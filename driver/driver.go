// Package driver runs classification over many functions on behalf of a
// host.
//
// The driver is a ticking component of an akita simulation engine. Functions
// are queued with Enqueue; every tick classifies a batch of them, in queue
// order, and hands each result to a Sink. Run drives the engine until the
// queue is empty. Each function gets its own classification run; the driver
// keeps no per-function state once the result is delivered.
package driver

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/instclass/classify"
	"github.com/sarchlab/instclass/ir"
)

// Driver schedules per-function classification.
type Driver interface {
	// Enqueue adds functions to the end of the queue.
	Enqueue(fns ...*ir.Function)

	// Pending returns the number of queued functions.
	Pending() int

	// Run classifies every queued function and delivers the results to the
	// sink. It returns the first sink error, if any. The function whose
	// result was rejected, and everything behind it, stays queued.
	Run() error
}

type classifyTask struct {
	fn *ir.Function
}

type driverImpl struct {
	*sim.TickingComponent

	classifier *classify.Classifier
	sink       Sink
	batchSize  int

	tasks []*classifyTask
	runID string
	done  int
	err   error
}

func (d *driverImpl) Enqueue(fns ...*ir.Function) {
	for _, fn := range fns {
		d.tasks = append(d.tasks, &classifyTask{fn: fn})
	}
}

func (d *driverImpl) Pending() int {
	return len(d.tasks)
}

// Tick classifies up to one batch of queued functions.
func (d *driverImpl) Tick() (madeProgress bool) {
	if d.err != nil {
		return false
	}

	for i := 0; i < d.batchSize && len(d.tasks) > 0; i++ {
		madeProgress = d.doOneTask(d.tasks[0]) || madeProgress
		if d.err != nil {
			break
		}
		d.tasks = d.tasks[1:]
	}

	return madeProgress
}

func (d *driverImpl) doOneTask(task *classifyTask) bool {
	res := d.classifier.ClassifyFunction(task.fn)

	Trace("Classify",
		"Run", d.runID,
		"Time", float64(d.Engine.CurrentTime()*1e9),
		"Function", task.fn.Name,
		"Instructions", res.Total(),
	)

	if err := d.sink.Deliver(res); err != nil {
		d.err = fmt.Errorf("failed to deliver result of function %s: %w",
			task.fn.Name, err)
		return false
	}

	d.done++
	return true
}

func (d *driverImpl) Run() error {
	d.runID = xid.New().String()
	d.done = 0
	d.err = nil

	Trace("RunStart", "Run", d.runID, "Pending", len(d.tasks))

	if len(d.tasks) > 0 {
		d.TickLater()
		if err := d.Engine.Run(); err != nil {
			return fmt.Errorf("engine failed: %w", err)
		}
	}

	Trace("RunEnd", "Run", d.runID, "Classified", d.done, "Pending", len(d.tasks))

	return d.err
}
