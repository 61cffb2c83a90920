// Package avatar turns a source image plus a client-side crop selection
// into a square JPEG ready for object storage.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/arjn/careermatch/internal/pkg/apperrors"
)

// Size is the edge length in pixels of the stored avatar.
const Size = 256

// JPEGQuality matches the quality the web client used when it encoded
// crops locally, so avatars look the same after the move server-side.
const JPEGQuality = 95

// CropRequest describes the selection the client made. Coordinates are
// in displayed-image space; DisplayWidth/DisplayHeight give the size the
// image was rendered at so the selection can be mapped back onto the
// full-resolution source.
type CropRequest struct {
	X             float64
	Y             float64
	Width         float64
	Height        float64
	DisplayWidth  float64
	DisplayHeight float64
}

// squareTolerance is the allowed width/height mismatch in displayed
// pixels, absorbing client-side rounding of the selection.
const squareTolerance = 1.0

// Validate checks the selection geometry before any decoding work.
func (c CropRequest) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return apperrors.NewBadRequestError("crop width and height must be positive")
	}
	if c.DisplayWidth <= 0 || c.DisplayHeight <= 0 {
		return apperrors.NewBadRequestError("display width and height must be positive")
	}
	// The avatar is a square; a non-square selection would be stretched.
	if math.Abs(c.Width-c.Height) > squareTolerance {
		return apperrors.NewBadRequestError("crop selection must be square")
	}
	return nil
}

// sourceRect maps the displayed-space selection onto the source image.
func (c CropRequest) sourceRect(srcW, srcH int) image.Rectangle {
	scaleX := float64(srcW) / c.DisplayWidth
	scaleY := float64(srcH) / c.DisplayHeight

	x0 := int(c.X * scaleX)
	y0 := int(c.Y * scaleY)
	x1 := int((c.X + c.Width) * scaleX)
	y1 := int((c.Y + c.Height) * scaleY)

	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, srcW, srcH))
}

// Render crops the source according to the request and scales the result
// to a Size x Size square.
func Render(src image.Image, req CropRequest) (*image.NRGBA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	rect := req.sourceRect(bounds.Dx(), bounds.Dy())
	if rect.Empty() {
		return nil, apperrors.ErrEmptyCrop
	}

	cropped := imaging.Crop(src, rect)
	return imaging.Resize(cropped, Size, Size, imaging.Lanczos), nil
}

// Decode reads an image from raw bytes, accepting the formats browsers
// commonly upload.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.ErrUnsupportedImage
	}
	return img, nil
}

// EncodeJPEG serializes the rendered avatar.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("error encoding avatar: %w", err)
	}
	return buf.Bytes(), nil
}
