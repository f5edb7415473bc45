//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>

static int is_trusted() {
    return AXIsProcessTrusted();
}

static int prompt_trusted() {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
                                                 &kCFTypeDictionaryKeyCallBacks,
                                                 &kCFTypeDictionaryValueCallBacks);
    Boolean trusted = AXIsProcessTrustedWithOptions(options);
    CFRelease(options);
    return trusted;
}
*/
import "C"
import "errors"

// ErrAccessibilityPermission is returned when the process is not trusted
// for Accessibility, which the event tap and event posting require.
var ErrAccessibilityPermission = errors.New(
	"accessibility permission required\n\n" +
		"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
		"Add your terminal app (or the macpaste binary when run as a login item).\n" +
		"Then restart macpaste.")

// CheckAccessibilityPermission checks if the process has macOS accessibility permission.
func CheckAccessibilityPermission() error {
	if C.is_trusted() == 0 {
		return ErrAccessibilityPermission
	}
	return nil
}

// IsAccessibilityTrusted returns true if the process has accessibility permission.
func IsAccessibilityTrusted() bool {
	return C.is_trusted() != 0
}

// PromptAccessibilityPermission shows the system prompt if the process is
// not yet trusted, and reports the current trust state.
func PromptAccessibilityPermission() bool {
	return C.prompt_trusted() != 0
}
