package qrcode

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strconv"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"

	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
)

const imageSize = 256

// Codec encodes item identifiers as QR images and reads them back.
// The payload is the decimal item identifier, nothing else, so any stock
// QR scanner app can read a printed label.
type Codec struct {
	size int
}

// NewCodec creates a Codec producing images of the default size
func NewCodec() *Codec {
	return &Codec{size: imageSize}
}

// EncodeItemID renders the item identifier as a QR code PNG
func (c *Codec) EncodeItemID(itemID uint) ([]byte, error) {
	return qrcode.Encode(strconv.FormatUint(uint64(itemID), 10), qrcode.Medium, c.size)
}

// DecodeItemID reads an item identifier from a PNG or JPEG image.
// Returns shared.ErrUnreadableCode when the image holds no QR code or the
// payload is not a positive integer.
func (c *Codec) DecodeItemID(data []byte) (uint, error) {
	text, err := c.DecodeText(data)
	if err != nil {
		return 0, err
	}
	return c.ParseItemID(text)
}

// ParseItemID interprets a payload already extracted by a client-side scanner.
// Returns shared.ErrUnreadableCode unless it is a positive integer: item ids
// are assigned starting at 1, so a zero payload can never name a stored item.
func (c *Codec) ParseItemID(text string) (uint, error) {
	id, err := strconv.ParseUint(text, 10, 32)
	if err != nil || id == 0 {
		return 0, shared.ErrUnreadableCode
	}
	return uint(id), nil
}

// DecodeText extracts the raw text payload from a QR image
func (c *Codec) DecodeText(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", shared.ErrUnreadableCode
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", shared.ErrUnreadableCode
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", shared.ErrUnreadableCode
	}

	return result.GetText(), nil
}
