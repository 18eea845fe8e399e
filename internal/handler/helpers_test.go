package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/msomdec/carousel-admin/internal/handler"
	"github.com/msomdec/carousel-admin/internal/repository/filesystem"
	"github.com/msomdec/carousel-admin/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testApp struct {
	auth     *service.AuthService
	carousel *service.CarouselService
	blobs    *filesystem.BlobStore
	docPath  string
	srv      *httptest.Server
	client   *http.Client
}

func newTestServices(t *testing.T) (*service.AuthService, *service.CarouselService, *filesystem.BlobStore, string) {
	t.Helper()
	hash, err := service.HashPassword("admin123", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	auth := service.NewAuthService(service.AdminCredentials{
		Username:     "admin",
		PasswordHash: hash,
		SigningKey:   testJWTSecret,
	})

	dir := t.TempDir()
	docPath := filepath.Join(dir, "carousel_data.json")
	blobs := filesystem.NewBlobStore(filepath.Join(dir, "uploads"))
	carousel := service.NewCarouselService(
		service.NewMediaValidator(nil, 0),
		blobs,
		filesystem.NewDocumentStore(docPath),
	)
	return auth, carousel, blobs, docPath
}

// newTestApp starts a server with the full route table and a client that
// keeps cookies and does not follow redirects.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	auth, carousel, blobs, docPath := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, service.NewTokenBucket(0, 100), carousel, false)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{auth: auth, carousel: carousel, blobs: blobs, docPath: docPath, srv: srv, client: client}
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	token, err := a.auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	req, _ := http.NewRequest(http.MethodGet, a.srv.URL, nil)
	a.client.Jar.SetCookies(req.URL, []*http.Cookie{{Name: "auth_token", Value: token, Path: "/"}})
}

// multipartUpload builds a form with a media part carrying the given declared type.
func multipartUpload(t *testing.T, filename, contentType string, data []byte, caption string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.WriteField("caption", caption); err != nil {
		t.Fatalf("write caption: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func (a *testApp) upload(t *testing.T, filename, contentType string, data []byte, caption string) *http.Response {
	t.Helper()
	body, ct := multipartUpload(t, filename, contentType, data, caption)
	resp, err := a.client.Post(a.srv.URL+"/admin/upload", ct, body)
	if err != nil {
		t.Fatalf("POST /admin/upload: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
