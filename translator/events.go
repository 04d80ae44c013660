package translator

import (
	"github.com/gomlx/nnhal/model"
	"k8s.io/klog/v2"
)

// EventKind enumerates the events of a translation.
type EventKind int

//go:generate go tool enumer -type EventKind events.go

const (
	TranslationStarted EventKind = iota
	OperationValidated
	OperationBuilt
	OperationFailed
	TranslationDone
)

// Event reports the progress of a translation to an EventSink.
type Event struct {
	Kind EventKind

	// Name of the computation being translated.
	Name string

	// OperationIndex and OperationType are set for the Operation* kinds.
	OperationIndex int
	OperationType  model.OperationType

	// Err is set for OperationFailed, and for TranslationDone if the translation failed.
	Err error
}

// EventSink receives the events of a translation.
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(event Event)

// Emit implements EventSink.
func (f EventSinkFunc) Emit(event Event) { f(event) }

// DiscardSink ignores all events.
type DiscardSink struct{}

// Emit implements EventSink.
func (DiscardSink) Emit(Event) {}

// KlogSink logs the events with klog: failures as errors, progress with verbosity 1 and
// per-operation details with verbosity 2.
type KlogSink struct{}

// Emit implements EventSink.
func (KlogSink) Emit(event Event) {
	switch event.Kind {
	case TranslationStarted:
		klog.V(1).Infof("translating %q", event.Name)
	case OperationValidated, OperationBuilt:
		klog.V(2).Infof("%q: operation #%d (%s): %s", event.Name, event.OperationIndex, event.OperationType, event.Kind)
	case OperationFailed:
		klog.Errorf("%q: operation #%d (%s) failed: %+v", event.Name, event.OperationIndex, event.OperationType, event.Err)
	case TranslationDone:
		if event.Err != nil {
			klog.Errorf("translation of %q failed: %v", event.Name, event.Err)
		} else {
			klog.V(1).Infof("translation of %q done", event.Name)
		}
	}
}
