// Command checkerboard is a minimal libretro core built as a c-shared
// library:
//
//	go build -buildmode=c-shared -o checkerboard_libretro.so ./cmd/checkerboard
//
// It runs without content, draws a scrolling checkerboard steered by the
// first joypad and plays silence.
package main

import (
	emucore "github.com/user-none/eblitcore/api"
	_ "github.com/user-none/eblitcore/libretro"
	"github.com/user-none/eblitcore/wrapper"
)

var (
	_ emucore.Core             = (*board)(nil)
	_ emucore.SaveStater       = (*board)(nil)
	_ emucore.MemoryMapper     = (*board)(nil)
	_ emucore.OptionsDefiner   = (*board)(nil)
	_ emucore.OptionsListener  = (*board)(nil)
	_ emucore.KeyboardListener = (*board)(nil)
)

func init() {
	wrapper.RegisterCore(func() emucore.Core { return newBoard() })
}

func main() {}
