//go:build darwin && cgo

package darwin

import "github.com/mj1618/macpaste/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			EventSource:  NewEventTap(),
			Inputter:     NewInputter(),
			WindowLister: NewWindowLister(),
		}, nil
	}
	platform.RequestPermissionsFunc = func() {
		PromptAccessibilityPermission()
	}
}
