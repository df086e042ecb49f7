//go:build llama

package model

// cgo link directives for the in-process llama adapter.
// - We set an rpath of $ORIGIN so the runtime loader finds libllama.so and
//   libggml*.so in the same directory as the built Go binary (./bin).
// - CUDA builds of llama.cpp additionally need the CUDA runtime libraries;
//   build with -tags=llama,cuda to link them.
/*
#cgo LDFLAGS: -Wl,-rpath,'$ORIGIN' -L${SRCDIR}/../../bin
#cgo cuda LDFLAGS: -lcublas -lcudart
*/
import "C"
