package internal

// Version is the current welshtools release version.
const Version = "1.0.0"
