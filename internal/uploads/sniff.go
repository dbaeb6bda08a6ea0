package uploads

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gabriel-vasile/mimetype"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// allowedTypes maps accepted sniffed MIME types to the extension we store
// files under. The allow-list is enforced on content, never on the client
// filename or Content-Type header.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageInfo is what sniffing and decoding learn about an upload.
type ImageInfo struct {
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Inspect sniffs the MIME type and decodes the pixel dimensions. It
// rejects anything outside the allow-list and anything that does not
// actually decode as an image of the sniffed type.
func Inspect(data []byte) (*ImageInfo, error) {
	mtype := mimetype.Detect(data)

	ext, ok := allowedTypes[mtype.String()]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %s", mtype.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a decodable image: %w", err)
	}

	return &ImageInfo{
		ContentType: mtype.String(),
		Ext:         ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
