package uploads

import (
	"errors"
	"lojastreet_server/handling"
	"lojastreet_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

const imageField = "image"

// UploadImage handles POST /api/uploads/image with a multipart "image" field.
func (urm *UploadRoutesManager) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handling.HandleServiceError(w, urm.logger, lib.NewValidationError(imageField, "is too large"), "upload too large")
			return
		}
		handling.HandleServiceError(w, urm.logger, lib.NewValidationError(imageField, "is required"), "missing upload")
		return
	}
	defer file.Close()

	result, err := urm.uploadService.SaveImage(file)
	if err != nil {
		handling.HandleServiceError(w, urm.logger, err, "failed to store upload")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image uploaded"),
		gecho.WithData(result),
		gecho.Send(),
	)
}
