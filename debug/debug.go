// Package debug carries the panel's diagnostic output.
//
// Platforms bind a Writer (USB serial on the firmware, the log package on
// the host). Panel events are also kept in a small ring that can be dumped
// after a fault without having had output enabled.
package debug

// Writer is a function type for writing debug messages
type Writer func(string)

// Event captures a panel event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Axis   uint8  // Axis for jog events, 0xFF otherwise
	Tick   uint32 // UI tick at event
	Value1 int32  // Context-dependent value
	Value2 int32  // Context-dependent value
}

// Event type codes
const (
	EvtInput     = 1 // Encoder delta or click handled
	EvtEnter     = 2 // Screen entered
	EvtBack      = 3 // Screen left
	EvtMoveSoon  = 4 // Manual move marked pending
	EvtMoveQueue = 5 // Manual move handed to motion
	EvtMoveDone  = 6 // Manual move finished
	EvtDiscard   = 7 // Pending manual move dropped
	EvtPreheat   = 8 // Preheat profile applied
	EvtCooldown  = 9 // All heaters and fans off
)

const (
	RingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// write is the global debug print function (can be set by platform code)
	write Writer = func(s string) {} // No-op by default

	// enabled controls whether debug output is active
	enabled bool = false

	// Event ring buffer (non-blocking, for post-mortem)
	ring     [RingSize]Event
	ringHead uint8
	tick     uint32

	// Async debug output channel
	asyncChan chan string
)

// SetWriter sets the platform-specific debug output function
func SetWriter(writer Writer) {
	if writer == nil {
		writer = func(string) {}
	}
	write = writer
}

// SetEnabled enables or disables debug output
func SetEnabled(on bool) {
	enabled = on
}

// IsEnabled returns whether debug output is enabled
func IsEnabled() bool {
	return enabled
}

// InitAsync starts the async debug output goroutine
// Call this from main() after SetWriter
func InitAsync() {
	asyncChan = make(chan string, 16) // Buffer 16 messages
	go outputWorker(asyncChan)
}

// outputWorker runs in background, drains the debug channel
func outputWorker(ch chan string) {
	for msg := range ch {
		write(msg)
	}
}

// Println writes a debug message using the platform-specific writer
func Println(msg string) {
	if enabled {
		write(msg)
	}
}

// Async queues a debug message for async output (non-blocking)
// Drops the message if the channel is full or async output is not running
func Async(msg string) {
	if !enabled || asyncChan == nil {
		return
	}
	select {
	case asyncChan <- msg:
	default:
	}
}

// Tick advances the UI tick counter stamped on recorded events
func Tick() {
	tick++
}

// Record captures an event in the ring buffer
func Record(eventType, axis uint8, value1, value2 int32) {
	idx := ringHead
	ring[idx] = Event{
		Type:   eventType,
		Axis:   axis,
		Tick:   tick,
		Value1: value1,
		Value2: value2,
	}
	ringHead = (idx + 1) % RingSize
}

// Events returns the recorded events from oldest to newest
func Events() []Event {
	out := make([]Event, 0, RingSize)
	start := ringHead
	for i := uint8(0); i < RingSize; i++ {
		evt := ring[(start+i)%RingSize]
		if evt.Type == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns the dump label of an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtInput:
		return "INPUT"
	case EvtEnter:
		return "ENTER"
	case EvtBack:
		return "BACK"
	case EvtMoveSoon:
		return "MOVE_SOON"
	case EvtMoveQueue:
		return "MOVE_QUEUE"
	case EvtMoveDone:
		return "MOVE_DONE"
	case EvtDiscard:
		return "DISCARD"
	case EvtPreheat:
		return "PREHEAT"
	case EvtCooldown:
		return "COOLDOWN"
	}
	return "UNKNOWN"
}

// DumpRing outputs the event ring through the writer regardless of SetEnabled
func DumpRing() {
	write("[PANEL] === Event Ring Dump ===")
	for _, evt := range Events() {
		write("[PANEL] " + EventName(evt.Type) +
			" axis=" + itoa(int(evt.Axis)) +
			" tick=" + itoa(int(evt.Tick)) +
			" v1=" + itoa(int(evt.Value1)) +
			" v2=" + itoa(int(evt.Value2)))
	}
	write("[PANEL] === End Dump ===")
}

// ClearRing clears the event buffer
func ClearRing() {
	for i := range ring {
		ring[i] = Event{}
	}
	ringHead = 0
	tick = 0
}
