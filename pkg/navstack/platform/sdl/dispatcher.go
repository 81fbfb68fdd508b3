// Package sdl runs routing steps on the SDL main thread.
//
// SDL requires window and renderer calls to come from the thread that
// initialized it. Routables that draw should therefore receive their push,
// pop and change callbacks through this dispatcher:
//
//	func main() {
//		sdl.Main(func() {
//			r := router.New(root, router.Options{Dispatcher: sdl.Dispatcher{}})
//			defer r.Close()
//			...
//		})
//	}
package sdl

import (
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
	gosdl "github.com/veandco/go-sdl2/sdl"
)

var _ router.Dispatcher = Dispatcher{}

// Dispatcher hands functions to the SDL main loop started by Main. Dispatch
// blocks until the function has run, so steps stay in submission order.
type Dispatcher struct{}

func (Dispatcher) Dispatch(fn func()) {
	gosdl.Do(fn)
}

// Main locks the calling goroutine to the main thread, runs run on another
// goroutine and services Dispatch calls until run returns.
func Main(run func()) {
	gosdl.Main(run)
}
