package testutil

import (
	"io"
	"log/slog"
)

// AndroidNS is the namespace declaration vector drawables carry.
const AndroidNS = `xmlns:android="http://schemas.android.com/apk/res/android"`

// VectorXML wraps body in a 24dp vector drawable root. rootAttrs are
// added to the <vector> start tag.
func VectorXML(rootAttrs, body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<vector ` + AndroidNS + ` ` + rootAttrs + `
    android:width="24dp"
    android:height="24dp"
    android:viewportWidth="24"
    android:viewportHeight="24">
` + body + `
</vector>
`
}

// SimpleIconXML is a one-path icon.
func SimpleIconXML(pathData string) string {
	return VectorXML("", `    <path android:fillColor="@android:color/white" android:pathData="`+pathData+`"/>`)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
