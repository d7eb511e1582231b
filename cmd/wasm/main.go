//go:build js && wasm

package main

import (
	"encoding/binary"
	"syscall/js"

	sp "segprep/pkg/segprep"
)

var cache = sp.NewIndexCache()

func main() {
	js.Global().Set("indicesInRadius", js.FuncOf(indicesInRadius))
	js.Global().Set("palette", js.FuncOf(palette))
	select {} // block forever
}

// indicesInRadius(height, width, radius) returns a Uint8Array holding
// little-endian uint32 (from, to) pairs.
func indicesInRadius(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("usage: indicesInRadius(height, width, radius)")
	}

	pairs, err := cache.Get(args[0].Int(), args[1].Int(), args[2].Int())
	if err != nil {
		return errorResult(err.Error())
	}

	buf := make([]byte, 8*len(pairs))
	for i, p := range pairs {
		binary.LittleEndian.PutUint32(buf[8*i:], uint32(p.From))
		binary.LittleEndian.PutUint32(buf[8*i+4:], uint32(p.To))
	}
	return toUint8Array(buf)
}

func palette(this js.Value, args []js.Value) interface{} {
	return toUint8Array(sp.Palette())
}

func toUint8Array(b []byte) js.Value {
	uint8Array := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(uint8Array, b)
	return uint8Array
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
