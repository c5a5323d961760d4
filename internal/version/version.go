package version

// Name is the binary name shown in CLI output and install messages.
var Name = "ccswitch"

// Version is injected at build time via -ldflags.
var Version = "2.2.0"
