//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    char *appName;
    char *title;
    int pid;
    int windowID;
    int layer;
    double x, y, width, height;
} CGWindowInfo;

static char *copy_cfstring(CFStringRef str) {
    if (str == NULL) return NULL;
    CFIndex len = CFStringGetLength(str);
    CFIndex size = CFStringGetMaximumSizeForEncoding(len, kCFStringEncodingUTF8) + 1;
    char *buf = malloc(size);
    if (buf == NULL) return NULL;
    if (!CFStringGetCString(str, buf, size, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

static int dict_int(CFDictionaryRef info, CFStringRef key) {
    int v = 0;
    CFNumberRef n = (CFNumberRef)CFDictionaryGetValue(info, key);
    if (n != NULL) CFNumberGetValue(n, kCFNumberIntType, &v);
    return v;
}

// List on-screen windows, front to back. Windows without bounds are omitted.
static int cg_list_windows(CGWindowInfo **out, int *count) {
    *out = NULL;
    *count = 0;
    CFArrayRef list = CGWindowListCopyWindowInfo(kCGWindowListOptionOnScreenOnly, kCGNullWindowID);
    if (list == NULL) return -1;

    CFIndex n = CFArrayGetCount(list);
    if (n == 0) {
        CFRelease(list);
        return 0;
    }
    CGWindowInfo *windows = calloc(n, sizeof(CGWindowInfo));
    if (windows == NULL) {
        CFRelease(list);
        return -1;
    }

    int j = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef info = (CFDictionaryRef)CFArrayGetValueAtIndex(list, i);
        CFDictionaryRef boundsDict = (CFDictionaryRef)CFDictionaryGetValue(info, kCGWindowBounds);
        CGRect rect;
        if (boundsDict == NULL || !CGRectMakeWithDictionaryRepresentation(boundsDict, &rect)) {
            continue;
        }
        CGWindowInfo *w = &windows[j++];
        w->appName = copy_cfstring((CFStringRef)CFDictionaryGetValue(info, kCGWindowOwnerName));
        w->title = copy_cfstring((CFStringRef)CFDictionaryGetValue(info, kCGWindowName));
        w->pid = dict_int(info, kCGWindowOwnerPID);
        w->windowID = dict_int(info, kCGWindowNumber);
        w->layer = dict_int(info, kCGWindowLayer);
        w->x = rect.origin.x;
        w->y = rect.origin.y;
        w->width = rect.size.width;
        w->height = rect.size.height;
    }
    CFRelease(list);

    *out = windows;
    *count = j;
    return 0;
}

static void cg_free_windows(CGWindowInfo *windows, int count) {
    if (windows == NULL) return;
    for (int i = 0; i < count; i++) {
        free(windows[i].appName);
        free(windows[i].title);
    }
    free(windows);
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/macpaste/internal/model"
)

// DarwinWindowLister implements platform.WindowLister with CGWindowListCopyWindowInfo.
type DarwinWindowLister struct{}

// NewWindowLister creates a new macOS window lister.
func NewWindowLister() *DarwinWindowLister {
	return &DarwinWindowLister{}
}

// ListWindows returns every on-screen window, front to back, on all layers.
// Window titles are only populated when the process has screen recording
// permission.
func (l *DarwinWindowLister) ListWindows() ([]model.Window, error) {
	var cWindows *C.CGWindowInfo
	var cCount C.int

	if C.cg_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.cg_free_windows(cWindows, cCount)

	count := int(cCount)
	windows := make([]model.Window, 0, count)
	if count == 0 {
		return windows, nil
	}

	for _, cw := range unsafe.Slice(cWindows, count) {
		windows = append(windows, model.Window{
			App:   goString(cw.appName),
			PID:   int(cw.pid),
			Title: goString(cw.title),
			ID:    int(cw.windowID),
			Layer: int(cw.layer),
			Bounds: model.Bounds{
				X:      float64(cw.x),
				Y:      float64(cw.y),
				Width:  float64(cw.width),
				Height: float64(cw.height),
			},
		})
	}
	return windows, nil
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}
