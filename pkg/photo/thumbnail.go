package photo

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
)

// ThumbnailVariants are the sizes the gallery requests. Other variants are
// rejected so the endpoint cannot be used to resize to arbitrary dimensions.
var ThumbnailVariants = []string{"300x300", "600x600"}

func (s service) downloadThumbnail(ctx context.Context, photo *model.Photo, variant string, dst io.Writer, cb func(contentLength int64)) error {
	width, height, err := parseVariant(variant)
	if err != nil {
		return err
	}

	var original bytes.Buffer
	err = s.s3Client.Download(ctx, s.s3Bucket, photo.ObjectKey, &original, func(int64) {})
	if err != nil {
		return err
	}

	img, _, err := image.Decode(&original)
	if err != nil {
		return errdef.NewBadRequest("failed to decode photo %d: %v", photo.ID, err)
	}

	thumbnail := resize.Thumbnail(width, height, img, resize.Lanczos3)

	var encoded bytes.Buffer
	if photo.ContentType == "image/png" {
		err = png.Encode(&encoded, thumbnail)
	} else {
		err = jpeg.Encode(&encoded, thumbnail, nil)
	}
	if err != nil {
		return err
	}

	cb(int64(encoded.Len()))
	_, err = io.Copy(dst, &encoded)
	return err
}

func parseVariant(variant string) (uint, uint, error) {
	for _, allowed := range ThumbnailVariants {
		if variant != allowed {
			continue
		}
		parts := strings.SplitN(variant, "x", 2)
		width, _ := strconv.Atoi(parts[0])
		height, _ := strconv.Atoi(parts[1])
		return uint(width), uint(height), nil
	}
	return 0, 0, errdef.NewBadRequest("unsupported thumbnail variant %q, supported: %s", variant, strings.Join(ThumbnailVariants, ", "))
}
