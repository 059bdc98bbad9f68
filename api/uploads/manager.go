package uploads

import (
	"lojastreet_server/api/middleware"
	"lojastreet_server/services"
	"net/http"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type UploadRoutesManager struct {
	logger        *gecho.Logger
	uploadService *services.UploadService
	mw            *middleware.Middleware
}

func NewUploadRoutesManager(
	logger *gecho.Logger,
	uploadService *services.UploadService,
	mw *middleware.Middleware,
) *UploadRoutesManager {
	return &UploadRoutesManager{
		logger:        logger,
		uploadService: uploadService,
		mw:            mw,
	}
}

func (urm *UploadRoutesManager) RegisterRoutes(r chi.Router) {
	r.With(urm.mw.AdminAuthMiddleware).Post("/api/uploads/image", urm.UploadImage)

	files := http.StripPrefix(services.UploadPathPrefix, http.FileServer(http.Dir(urm.uploadService.Dir())))
	r.Get(services.UploadPathPrefix+"*", func(w http.ResponseWriter, r *http.Request) {
		// no directory listings
		if strings.HasSuffix(r.URL.Path, "/") {
			gecho.NotFound(w, gecho.Send())
			return
		}
		files.ServeHTTP(w, r)
	})
}
