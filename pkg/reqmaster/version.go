package reqmaster

// Version is the reqmaster release version.
const Version = "0.3.0"
