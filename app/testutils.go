package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moonhalo/blogapi/internal/blogservice"
	"github.com/moonhalo/blogapi/internal/common"
	"github.com/moonhalo/blogapi/internal/engagementservice"
	"github.com/moonhalo/blogapi/internal/mailservice"
	"github.com/moonhalo/blogapi/internal/mediaservice"
	"github.com/moonhalo/blogapi/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *mediaservice.MockImageHost) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	rabbitURI := common.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupUserExchange(rabbitmq)
	assert.NoError(t, err)

	cfg, err := loadConfig("../.test.env")
	assert.NoError(t, err)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	host := new(mediaservice.MockImageHost)
	media := mediaservice.NewMediaService(t.TempDir(), host)

	app := &application{
		config:            cfg,
		logger:            logger,
		userService:       userservice.NewUserService(db, rabbitmq, []byte(cfg.AuthSecret)),
		blogService:       blogservice.NewBlogService(db, cache),
		engagementService: engagementservice.NewEngagementService(db, media, cache),
		mediaService:      media,
		mailService:       mailservice.NewMailService(rabbitmq, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:            rabbitmq,
	}

	return app, db, host
}

func (ts *testServer) post(t *testing.T, path string, data any, cookie *http.Cookie) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) postMultipart(t *testing.T, path string, fields map[string]string, fileField, fileName, contentType string, fileData []byte, cookie *http.Cookie) (int, http.Header, envelope) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		err := w.WriteField(key, value)
		if err != nil {
			t.Fatal(err)
		}
	}

	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, fileName))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, err = part.Write(fileData)
		if err != nil {
			t.Fatal(err)
		}
	}

	err := w.Close()
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string, cookie *http.Cookie) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) put(t *testing.T, path string, payload any, cookie *http.Cookie) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPut, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) delete(t *testing.T, path string, cookie *http.Cookie) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// signUpAndIn registers a fresh account and returns its auth cookie plus the
// user id.
func (ts *testServer) signUpAndIn(t *testing.T, username, email, password string) (*http.Cookie, int) {
	status, _, _ := ts.post(t, "/v1/auth/sign-up", map[string]string{
		"username": username,
		"name":     "Test User",
		"email":    email,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/auth/sign-in", bytes.NewReader([]byte(fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == authCookieName {
			cookie = c
		}
	}
	assert.NotNil(t, cookie)

	status, _, body := readResponse(t, res)
	assert.Equal(t, http.StatusOK, status)

	user, ok := body["user"].(map[string]any)
	assert.True(t, ok)
	id, ok := user["id"].(float64)
	assert.True(t, ok)

	return cookie, int(id)
}
