package version

// Version is overridden at build time with -ldflags "-X genrich/internal/version.Version=...".
var Version = "0.3.0"
