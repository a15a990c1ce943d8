package rayscript

// Version is the translator release tag reported by the CLI.
const Version = "0.2.0"
