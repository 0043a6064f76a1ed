// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/platform/ctxutil"
	"github.com/taibuivan/techblog/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies; webhook payloads are a few hundred bytes.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.
Unknown fields are ignored since CMS webhooks carry more than we read.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves the named content id parameter.

Returns:
  - string: The id as routed, possibly carrying a locale suffix
  - error: VALIDATION_ERROR if it is not a CMS content id
*/
func ID(request *http.Request, name string) (string, error) {
	id := chi.URLParam(request, name)
	if err := (&validate.Validator{}).Required(name, id).ContentID(name, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

/*
Locale returns the locale the locale middleware resolved for this route.
*/
func Locale(request *http.Request) locale.Locale {
	return ctxutil.GetLocale(request.Context())
}
