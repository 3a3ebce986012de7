package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/files"
)

// UploadField is the multipart field carrying the files.
const UploadField = "files"

// DefaultUploadMaxMemory is the multipart in-memory threshold.
const DefaultUploadMaxMemory int64 = 32 << 20

const downloadSuffix = "/download"

// Files serves the authenticated file API.
// Implements internal.Handler.
type Files struct {
	svc       *files.Service
	authn     *auth.Authenticator
	maxMemory int64
}

// FilesOption configures Files.
type FilesOption func(*Files)

// WithUploadMaxMemory sets how many bytes of a multipart body stay in memory.
func WithUploadMaxMemory(n int64) FilesOption {
	return func(h *Files) {
		if n > 0 {
			h.maxMemory = n
		}
	}
}

// NewFiles creates the file API handler.
func NewFiles(svc *files.Service, authn *auth.Authenticator, opts ...FilesOption) *Files {
	h := &Files{
		svc:       svc,
		authn:     authn,
		maxMemory: DefaultUploadMaxMemory,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes declares the file API. Every route requires a bearer token.
// Object keys contain "/", so they are matched with a catch-all.
func (h *Files) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.Authenticate(h.authn))

		r.GET("/me", h.me)
		r.POST("/upload", h.upload)
		r.GET("/files", h.list)
		r.GET("/files/*", h.download)
		r.DELETE("/files/*", h.delete)
	})
}

func (h *Files) me(c internal.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newMeResponse(id))
}

// meResponse renders a missing email as null.
type meResponse struct {
	Email   *string `json:"email"`
	UID     string  `json:"uid"`
	IsAdmin bool    `json:"is_admin"`
}

func newMeResponse(id auth.Identity) meResponse {
	resp := meResponse{UID: id.Subject, IsAdmin: id.IsAdmin}
	if id.Email != "" {
		email := id.Email
		resp.Email = &email
	}
	return resp
}

func (h *Files) upload(c internal.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	parts, err := c.MultipartFiles(UploadField, h.maxMemory)
	if err != nil {
		if errors.Is(err, internal.ErrNoMultipartForm) {
			return fmt.Errorf("%w: %v", files.ErrNoFiles, err)
		}
		return fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	if form := c.Request().MultipartForm; form != nil {
		defer func() { _ = form.RemoveAll() }()
	}

	uploads := make([]files.Upload, 0, len(parts))
	for _, fh := range parts {
		uploads = append(uploads, files.Upload{
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
	}

	uploaded, err := h.svc.Upload(c, id, uploads)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"uploaded": uploaded})
}

func (h *Files) list(c internal.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	listing, err := h.svc.List(c, id, files.ListOptions{
		Query:    c.Query("q"),
		FileType: c.Query("file_type"),
		SortBy:   c.QueryDefault("sort_by", files.SortByDate),
		Order:    c.QueryDefault("order", files.OrderDesc),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *Files) download(c internal.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	rest := c.Param("*")
	if !strings.HasSuffix(rest, downloadSuffix) {
		return internal.ErrNotFound(MsgNotFound)
	}
	key := objectKey(c, strings.TrimSuffix(rest, downloadSuffix))

	signed, err := h.svc.DownloadURL(c, id, key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": signed})
}

func (h *Files) delete(c internal.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	key := objectKey(c, c.Param("*"))
	if err := h.svc.Delete(c, id, key); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"deleted":     true,
		"object_name": key,
	})
}

func identity(c internal.Context) (auth.Identity, error) {
	id, ok := middlewares.GetIdentity(c)
	if !ok {
		return auth.Identity{}, auth.ErrUnauthenticated
	}
	return id, nil
}

// objectKey returns the key carried by a catch-all path value. chi routes on
// RawPath when the request escaped a "/", and then the value is still
// escaped; otherwise it was decoded once by net/url already.
func objectKey(c internal.Context, raw string) string {
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if key, err := url.PathUnescape(raw); err == nil {
		return key
	}
	return raw
}
