package usecase

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"storypad/internal/apperr"
	"storypad/internal/entity"
	"storypad/pkg/assets"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// imageExtensions maps a sniffed content type to the stored file extension.
// Types outside this map are refused even when the image/* family check
// passed; they are formats the resizer cannot re-encode.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/tiff": ".tif",
}

type UploadUseCase interface {
	Ingest(ctx context.Context, data []byte) (*entity.UploadedAsset, error)
}

type uploadUseCase struct {
	store    assets.Store
	maxWidth int
	nameLen  int
}

func NewUploadUseCase(store assets.Store, maxWidth, nameLen int) UploadUseCase {
	return &uploadUseCase{
		store:    store,
		maxWidth: maxWidth,
		nameLen:  nameLen,
	}
}

// Ingest validates the uploaded bytes, downsamples oversized images and
// persists the result. The content type is sniffed from the bytes themselves;
// anything the client claimed is ignored.
func (uc *uploadUseCase) Ingest(ctx context.Context, data []byte) (*entity.UploadedAsset, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("no file content supplied")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apperr.Validation("unsupported content type")
	}

	ext, ok := imageExtensions[mtype.String()]
	if !ok {
		return nil, apperr.Validation("unsupported image format")
	}

	name, err := randomFileName(uc.nameLen)
	if err != nil {
		return nil, apperr.Processing("failed to generate file name", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Processing("failed to decode image", err)
	}

	// Downscale only; an image narrower than the maximum keeps its dimensions.
	if img.Bounds().Dx() > uc.maxWidth {
		img = imaging.Resize(img, uc.maxWidth, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, apperr.Processing("failed to resolve output format", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, apperr.Processing("failed to encode image", err)
	}

	path, err := uc.store.Put(ctx, name+ext, buf.Bytes(), mtype.String())
	if err != nil {
		return nil, apperr.Processing("failed to store asset", err)
	}

	return &entity.UploadedAsset{
		Path:   path,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Size:   buf.Len(),
	}, nil
}

// randomFileName returns length hex characters. Collisions are not checked;
// at 32 characters the probability is negligible and accepted.
func randomFileName(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}
