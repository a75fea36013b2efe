package httpclient

import (
	"fmt"

	"github.com/fieldlane/tallyapi/utils"
)

// FinalizeBody prepares BodyBytes and ContentType exactly once per call.
// Rules:
// - If BodyBytes is already set (raw/multipart payload), respect it and
//   leave ContentType alone: the transport negotiates its own boundary
//   header and forcing one would corrupt the upload.
// - Otherwise build BodyBytes from Body+BodyType.
func (r *HTTPRequest) FinalizeBody() error {
	if r.BodyBytes != nil {
		return nil
	}

	bodyBuf, ct, err := utils.PrepareBody(r.Body, r.BodyType)
	if err != nil {
		return fmt.Errorf("prepare body: %w", err)
	}

	r.BodyBytes = bodyBuf
	// Prefer explicit ContentType if some middleware set it.
	if r.ContentType == "" {
		r.ContentType = ct
	}
	return nil
}
