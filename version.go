package mandelbrot

// Version is the explorer release, overridden at link time with
// -ldflags "-X github.com/gogpu/mandelbrot.Version=...".
var Version = "dev"
