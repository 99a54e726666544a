package types

const ContextUserKey = "user"

const (
	// ImageUploadDir is where investment images live, relative to the media root.
	ImageUploadDir = "uploads/investment"

	// ImageFormField is the multipart field carrying an uploaded image.
	ImageFormField = "image"
)
