package bough

import "fmt"

// GuiLayer is the name of the screen-space layer every runtime creates.
const GuiLayer = "gui"

// Config holds runtime settings. Start from DefaultConfig.
type Config struct {
	// ScreenWidth and ScreenHeight size the gui layer until the first Draw,
	// which takes the size of the target image.
	ScreenWidth  int
	ScreenHeight int

	// HalfTexelOffset shifts pixel-aligned origins by half a pixel, for
	// backends that sample texel centers.
	HalfTexelOffset bool

	// Debug enables disposed-visual panics, tree warnings and per-frame
	// stats logged at Debug.
	Debug bool

	// DefaultLayer is used when VisualOptions.Layer is empty.
	DefaultLayer string

	// DragThreshold is the distance in pixels the pointer must move while
	// pressed before drag events start.
	DragThreshold float64

	// WheelScale converts wheel ticks into the delta passed to OnMouseWheel.
	WheelScale float64

	// ScreenshotDir receives the PNGs written by Runtime.Screenshot.
	ScreenshotDir string
}

// DefaultConfig returns the default settings for a 640x480 screen.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:   640,
		ScreenHeight:  480,
		DefaultLayer:  GuiLayer,
		DragThreshold: 4,
		WheelScale:    0.1,
		ScreenshotDir: "screenshots",
	}
}

func (c *Config) validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("bough: invalid screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.DragThreshold < 0 {
		return fmt.Errorf("bough: negative drag threshold %v", c.DragThreshold)
	}
	if c.WheelScale < 0 {
		return fmt.Errorf("bough: negative wheel scale %v", c.WheelScale)
	}
	if c.DefaultLayer == "" {
		c.DefaultLayer = GuiLayer
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	return nil
}
