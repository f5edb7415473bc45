// Package darwin provides macOS platform support using CoreGraphics and Accessibility APIs.
// All functionality requires CGo. On other platforms, or when CGo is
// disabled, only this file builds and platform.NewProvider reports
// platform.ErrUnsupported.
package darwin
