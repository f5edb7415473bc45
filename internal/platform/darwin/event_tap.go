//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

extern CGEventRef goHandleEvent(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo);

// Listen-only tap appended after other taps for the current user session.
static CFRunLoopSourceRef startEventTap(uintptr_t handle, CFMachPortRef *tapOut) {
    CGEventMask mask = CGEventMaskBit(kCGEventOtherMouseDown) |
                       CGEventMaskBit(kCGEventLeftMouseDown) |
                       CGEventMaskBit(kCGEventLeftMouseUp) |
                       CGEventMaskBit(kCGEventLeftMouseDragged);
    CFMachPortRef tap = CGEventTapCreate(kCGSessionEventTap,
                                         kCGTailAppendEventTap,
                                         kCGEventTapOptionListenOnly,
                                         mask,
                                         goHandleEvent,
                                         (void *)handle);
    if (tap == NULL) {
        return NULL;
    }
    CGEventTapEnable(tap, true);
    CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
    *tapOut = tap;
    return source;
}

static void stopEventTap(CFRunLoopRef loop, CFMachPortRef tap, CFRunLoopSourceRef source) {
    CFRunLoopRemoveSource(loop, source, kCFRunLoopCommonModes);
    CGEventTapEnable(tap, false);
    CFMachPortInvalidate(tap);
    CFRelease(source);
    CFRelease(tap);
}

static void reenableTap(CFMachPortRef tap) {
    if (tap != NULL) CGEventTapEnable(tap, true);
}

static CFRunLoopRef currentRunLoop(void) {
    return CFRunLoopGetCurrent();
}

static void addSourceToRunLoop(CFRunLoopRef loop, CFRunLoopSourceRef source) {
    CFRunLoopAddSource(loop, source, kCFRunLoopCommonModes);
}

// Run the loop for up to seconds; returns early when stopped.
static void runCurrentRunLoopFor(double seconds) {
    CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
}

static void stopRunLoop(CFRunLoopRef loop) {
    CFRunLoopStop(loop);
}

static int tapDisabled(CGEventType type) {
    return type == kCGEventTapDisabledByTimeout || type == kCGEventTapDisabledByUserInput;
}

static int eventKind(CGEventType type) {
    switch (type) {
    case kCGEventOtherMouseDown: return 1;
    case kCGEventLeftMouseDown: return 2;
    case kCGEventLeftMouseUp: return 3;
    case kCGEventLeftMouseDragged: return 4;
    default: return 0;
    }
}

static double eventX(CGEventRef event) {
    return CGEventGetLocation(event).x;
}

static double eventY(CGEventRef event) {
    return CGEventGetLocation(event).y;
}

// Nanoseconds since system startup.
static uint64_t eventTimestamp(CGEventRef event) {
    return CGEventGetTimestamp(event);
}

static int64_t eventUserData(CGEventRef event) {
    return CGEventGetIntegerValueField(event, kCGEventSourceUserData);
}
*/
import "C"

import (
	"context"
	"errors"
	"runtime"
	"runtime/cgo"
	"sync"
	"time"
	"unsafe"

	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/platform"
)

// eventKinds maps the C eventKind codes to platform kinds.
var eventKinds = map[C.int]platform.EventKind{
	1: platform.OtherButtonDown,
	2: platform.LeftButtonDown,
	3: platform.LeftButtonUp,
	4: platform.LeftButtonDragged,
}

// runLoopSlice bounds how long the run loop runs between context checks.
const runLoopSlice = 250 * time.Millisecond

// EventTap implements platform.EventSource with a listen-only CGEventTap.
type EventTap struct{}

// NewEventTap creates a new macOS event source.
func NewEventTap() *EventTap {
	return &EventTap{}
}

type tapStream struct {
	emit     func(platform.PointerEvent) error
	tap      C.CFMachPortRef
	stopLoop func()
	err      error
}

func (s *tapStream) handle(eventType C.CGEventType, event C.CGEventRef) {
	if C.tapDisabled(eventType) != 0 {
		C.reenableTap(s.tap)
		return
	}
	if s.err != nil {
		return
	}
	kind, ok := eventKinds[C.eventKind(eventType)]
	if !ok {
		return
	}
	if int64(C.eventUserData(event)) == injectedEventTag {
		return
	}
	ev := platform.PointerEvent{
		Kind:      kind,
		At:        model.Point{X: float64(C.eventX(event)), Y: float64(C.eventY(event))},
		Timestamp: int64(C.eventTimestamp(event) / 1_000_000),
	}
	if err := s.emit(ev); err != nil {
		s.err = err
		s.stopLoop()
	}
}

// Stream runs the tap on the calling goroutine's locked OS thread until ctx
// is cancelled or emit fails. emit runs on that thread one event at a time;
// while it blocks, the window server queues further events.
func (t *EventTap) Stream(ctx context.Context, emit func(platform.PointerEvent) error) error {
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	stream := &tapStream{emit: emit}
	handle := cgo.NewHandle(stream)
	defer handle.Delete()

	var tap C.CFMachPortRef
	source := C.startEventTap(C.uintptr_t(handle), &tap)
	if source == 0 {
		return errors.New("failed to create CGEvent tap")
	}
	stream.tap = tap

	loop := C.currentRunLoop()
	defer C.stopEventTap(loop, tap, source)
	var stopOnce sync.Once
	stream.stopLoop = func() {
		stopOnce.Do(func() {
			C.stopRunLoop(loop)
		})
	}
	C.addSourceToRunLoop(loop, source)

	// Wake periodically so cancellation is noticed even when no events arrive.
	for ctx.Err() == nil && stream.err == nil {
		C.runCurrentRunLoopFor(C.double(runLoopSlice.Seconds()))
	}

	if stream.err != nil {
		return stream.err
	}
	return ctx.Err()
}

//export goHandleEvent
func goHandleEvent(_ C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, userInfo unsafe.Pointer) C.CGEventRef {
	stream, ok := cgo.Handle(uintptr(userInfo)).Value().(*tapStream)
	if ok {
		stream.handle(eventType, event)
	}
	// Listen-only: pass the event on unchanged.
	return event
}
