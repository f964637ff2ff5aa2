package native

// Events receives notifications from a Player. Callbacks run on the bus
// loop goroutine, or on the caller's goroutine for errors raised while
// applying a setter, and never while the Player holds its lock.
type Events interface {
	PlayerLoaded()
	PipelineStateChanged(newState, oldState State)
	PipelineEOS()
	PipelineError(source, message, debugInfo string)
	// ElementMessage delivers the structure name of an element message and
	// its fields encoded as a JSON object.
	ElementMessage(element, message string)
}

// NopEvents discards every notification.
type NopEvents struct{}

func (NopEvents) PlayerLoaded() {}
func (NopEvents) PipelineStateChanged(newState, oldState State) {}
func (NopEvents) PipelineEOS() {}
func (NopEvents) PipelineError(source, message, debugInfo string) {}
func (NopEvents) ElementMessage(element, message string) {}
