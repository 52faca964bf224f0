package querykit

// Version is the library version reported to observability backends.
const Version = "0.3.0"
