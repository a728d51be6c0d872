package main

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
)

func newTestApplication(t *testing.T) (*application, *stubUserRepo, *stubProductRepo, *stubOrderRepo) {
	t.Helper()

	templateCache, err := newTemplateCache("../../ui/html")
	if err != nil {
		t.Fatal(err)
	}

	session := scs.New()
	session.Lifetime = 24 * time.Hour

	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := newStubOrderRepo()

	app := &application{
		errorLog:      log.New(io.Discard, "", 0),
		infoLog:       log.New(io.Discard, "", 0),
		session:       session,
		templateCache: templateCache,
		uploadDir:     t.TempDir(),
		users:         users,
		products:      products,
		orders:        orders,
	}
	return app, users, products, orders
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	ts.Client().Jar = jar
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &testServer{ts}
}

func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().Get(ts.URL + urlPath)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}
	return rs.StatusCode, rs.Header, string(body)
}

func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().PostForm(ts.URL+urlPath, form)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}
	return rs.StatusCode, rs.Header, string(body)
}

// postMultipart submits a multipart form, optionally with one uploaded file.
func (ts *testServer) postMultipart(t *testing.T, urlPath string, fields map[string]string, fileField, fileName string, fileContent []byte) (int, http.Header, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	rs, err := ts.Client().Post(ts.URL+urlPath, writer.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}
	return rs.StatusCode, rs.Header, string(body)
}

func (ts *testServer) login(t *testing.T, username, password string) {
	t.Helper()

	status, _, _ := ts.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if status != http.StatusSeeOther {
		t.Fatalf("login as %s: expected status %d, got %d", username, http.StatusSeeOther, status)
	}
}

var flashRE = regexp.MustCompile(`<div class="flash">(.*?)</div>`)

// flashMessage pulls the one-shot notice out of a rendered page.
func flashMessage(body string) string {
	match := flashRE.FindStringSubmatch(body)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
