package emucore

import "github.com/user-none/eblitcore/abi"

// PixelFormat is a framebuffer format negotiated with the host.
type PixelFormat int

const (
	PixelFormat0RGB1555 PixelFormat = abi.PixelFormat0RGB1555
	PixelFormatXRGB8888 PixelFormat = abi.PixelFormatXRGB8888
	PixelFormatRGB565   PixelFormat = abi.PixelFormatRGB565
)

// BytesPerPixel returns the size of one pixel, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormat0RGB1555, PixelFormatRGB565:
		return 2
	case PixelFormatXRGB8888:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormat0RGB1555:
		return "0RGB1555"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	default:
		return "Unknown"
	}
}

// ConvertRGBAToXRGB8888 converts RGBA pixels to XRGB8888 format.
func ConvertRGBAToXRGB8888(src, dst []byte, pixels int) {
	for i := 0; i < pixels; i++ {
		idx := i * 4
		dst[idx+0] = src[idx+2] // B
		dst[idx+1] = src[idx+1] // G
		dst[idx+2] = src[idx+0] // R
		dst[idx+3] = 0xFF       // X
	}
}
