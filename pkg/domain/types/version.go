package types

// Version is the relpub build version, overridden at link time
var Version = "dev"
