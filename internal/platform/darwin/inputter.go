//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation -framework Carbon
#include <CoreGraphics/CoreGraphics.h>
#include <Carbon/Carbon.h>
#include <stdint.h>

// Left click at screen coordinates. Both events are created before either
// is posted so a failure never leaves the button held. The HID tap delivers
// to whatever window is under the point, not just this process.
static int cg_click(double x, double y, int64_t tag) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef down = CGEventCreateMouseEvent(NULL, kCGEventLeftMouseDown, point, kCGMouseButtonLeft);
    CGEventRef up = CGEventCreateMouseEvent(NULL, kCGEventLeftMouseUp, point, kCGMouseButtonLeft);
    if (!down || !up) {
        if (down) CFRelease(down);
        if (up) CFRelease(up);
        return -1;
    }
    CGEventSetIntegerValueField(down, kCGEventSourceUserData, tag);
    CGEventSetIntegerValueField(up, kCGEventSourceUserData, tag);
    CGEventPost(kCGHIDEventTap, down);
    CGEventPost(kCGHIDEventTap, up);
    CFRelease(down);
    CFRelease(up);
    return 0;
}

// Press a key combo with modifiers, posted to the annotated session tap
// so it reaches the focused application.
static int cg_key_combo(CGKeyCode keyCode, CGEventFlags modifiers, int64_t tag) {
    CGEventSourceRef source = CGEventSourceCreate(kCGEventSourceStateCombinedSessionState);
    CGEventRef keyDown = CGEventCreateKeyboardEvent(source, keyCode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(source, keyCode, false);
    if (!keyDown || !keyUp) {
        if (keyDown) CFRelease(keyDown);
        if (keyUp) CFRelease(keyUp);
        if (source) CFRelease(source);
        return -1;
    }
    CGEventSetFlags(keyDown, modifiers);
    CGEventSetFlags(keyUp, modifiers);
    CGEventSetIntegerValueField(keyDown, kCGEventSourceUserData, tag);
    CGEventSetIntegerValueField(keyUp, kCGEventSourceUserData, tag);
    CGEventPost(kCGAnnotatedSessionEventTap, keyDown);
    CGEventPost(kCGAnnotatedSessionEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
    if (source) CFRelease(source);
    return 0;
}
*/
import "C"

import (
	"fmt"

	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/platform"
)

// injectedEventTag marks events posted by this process in
// kCGEventSourceUserData so the event tap can drop them.
const injectedEventTag = 0x6d61637061737465 // "macpaste"

// DarwinInputter implements the platform.Inputter interface for macOS.
type DarwinInputter struct{}

// NewInputter creates a new macOS inputter.
func NewInputter() *DarwinInputter {
	return &DarwinInputter{}
}

// Click sends a left down and up at a screen point. The events carry
// injectedEventTag so the event tap ignores them.
func (inp *DarwinInputter) Click(at model.Point) error {
	if C.cg_click(C.double(at.X), C.double(at.Y), C.int64_t(injectedEventTag)) != 0 {
		return fmt.Errorf("failed to click at (%.0f, %.0f)", at.X, at.Y)
	}
	return nil
}

// KeyCombo presses key with mod held, then releases both.
func (inp *DarwinInputter) KeyCombo(key platform.Key, mod platform.Modifier) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("unknown key: %v", key)
	}
	flags, ok := modifierFlags[mod]
	if !ok {
		return fmt.Errorf("unknown modifier: %v", mod)
	}
	if C.cg_key_combo(C.CGKeyCode(code), C.CGEventFlags(flags), C.int64_t(injectedEventTag)) != 0 {
		return fmt.Errorf("failed to send %s+%s", mod, key)
	}
	return nil
}

// macOS virtual key codes from Carbon Events.h.
var keyCodes = map[platform.Key]uint16{
	platform.KeyCopy:  0x08, // kVK_ANSI_C
	platform.KeyPaste: 0x09, // kVK_ANSI_V
}

// macOS modifier key flags.
var modifierFlags = map[platform.Modifier]uint64{
	platform.ModifierCommand: uint64(C.kCGEventFlagMaskCommand),
	platform.ModifierControl: uint64(C.kCGEventFlagMaskControl),
}
