//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"
	"time"

	"gopper-panel/menu"
	"gopper-panel/panel"
	"gopper-panel/standalone/config"
	"gopper-panel/standalone/machine"
)

// Global panel instance for the page
var (
	printer *machine.Machine
	front   *panel.Panel
	frame   *menu.Frame
	last    time.Time
)

func main() {
	cfg := config.DefaultCartesianConfig()
	var err error
	printer, err = machine.NewWithConfig(cfg)
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	printer.Start()
	front = panel.New(cfg, printer, nil)
	frame = menu.NewFrame(cfg.LCD.Columns, cfg.LCD.Rows)
	last = time.Now()

	// Export functions to JavaScript
	js.Global().Set("gopperPanel", js.ValueOf(map[string]interface{}{
		"input":   js.FuncOf(inputWrapper),
		"render":  js.FuncOf(renderWrapper),
		"gcode":   js.FuncOf(gcodeWrapper),
		"columns": cfg.LCD.Columns,
		"rows":    cfg.LCD.Rows,
	}))

	// Keep the program running
	select {}
}

// inputWrapper runs one panel tick
// Args: delta (int), click (bool)
func inputWrapper(this js.Value, args []js.Value) interface{} {
	in := menu.Input{}
	if len(args) > 0 {
		in.EncoderDelta = args[0].Int()
	}
	if len(args) > 1 {
		in.Click = args[1].Truthy()
	}

	now := time.Now()
	printer.Advance(now.Sub(last).Seconds())
	last = now
	front.Update(now, in)
	return nil
}

// renderWrapper draws the panel
// Returns: {lines: string[], inverted: bool[]}
func renderWrapper(this js.Value, args []js.Value) interface{} {
	front.Render(frame)
	lines := make([]interface{}, frame.Rows)
	inverted := make([]interface{}, frame.Rows)
	for i := 0; i < frame.Rows; i++ {
		lines[i] = frame.Line(i)
		inverted[i] = frame.Inverted(i)
	}
	return js.ValueOf(map[string]interface{}{
		"lines":    lines,
		"inverted": inverted,
	})
}

// gcodeWrapper feeds a G-code line to the printer
// Args: line (string)
// Returns: reply text
func gcodeWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: missing line argument")
	}
	for _, b := range []byte(args[0].String() + "\n") {
		printer.ProcessByte(b)
	}
	return js.ValueOf(string(printer.GetOutput()))
}
