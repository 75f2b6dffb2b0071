package version

// AppVersion is overridden at release build time via -ldflags.
var AppVersion = "0.1.0"
