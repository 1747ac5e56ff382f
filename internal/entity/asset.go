package entity

// UploadedAsset describes the result of one upload: the stored file's public
// path and the final dimensions and byte size of the (possibly downscaled)
// image, not the original.
type UploadedAsset struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}
