package storage

import (
	"net/http"

	"github.com/inkvoice/inkvoice/internal/apperr"
)

// FileHandler serves stored audio from dir under PublicPathPrefix.
// Requests carrying signature params are verified first, so an expired or
// tampered signed link is rejected instead of falling back to plain access.
func FileHandler(signer *Signer, dir string) http.Handler {
	fs := http.StripPrefix(PublicPathPrefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		exp, sig := q.Get("exp"), q.Get("sig")
		if exp != "" || sig != "" {
			if err := signer.Verify(r.URL.Path, exp, sig); err != nil {
				http.Error(w, err.Error(), apperr.HTTPStatus(apperr.KindOf(err)))
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}
