package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/storage/service"
	helper "schoolhub_backend/internals/helpers"
	helperOSS "schoolhub_backend/internals/helpers/oss"
	"schoolhub_backend/internals/helpers/tenant"
)

func TestHTTPError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", service.ErrInvalidPath), fiber.StatusBadRequest},
		{service.ErrInvalidName, fiber.StatusBadRequest},
		{service.ErrRootFolder, fiber.StatusBadRequest},
		{service.ErrFileNotFound, fiber.StatusNotFound},
		{service.ErrExists, fiber.StatusConflict},
		{service.ErrAlreadyInTrash, fiber.StatusConflict},
		{service.ErrNotDeleted, fiber.StatusConflict},
		{service.ErrTooLarge, fiber.StatusRequestEntityTooLarge},
		{helperOSS.ErrUnsupportedImage, fiber.StatusUnsupportedMediaType},
		{tenant.ErrNoTenant, fiber.StatusBadRequest},
		{fiber.NewError(fiber.StatusTeapot, "x"), fiber.StatusTeapot},
		{io.ErrUnexpectedEOF, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		var fe *fiber.Error
		require.ErrorAs(t, httpError(tt.err, "fail"), &fe, tt.err.Error())
		assert.Equal(t, tt.want, fe.Code, tt.err.Error())
	}
	assert.NoError(t, httpError(nil, ""))
}

// nopRepo: jalur yang dites tidak pernah menyentuh repo.
type nopRepo struct{ service.Repo }

func newApp(svc *service.Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(nil)})
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(tenant.WithTenant(c.UserContext(), tenant.Tenant{Slug: "acme", Schema: "t_acme"}))
		return c.Next()
	})
	ctl := NewStorageController(svc)
	app.Post("/files", ctl.Upload)
	app.Post("/folders", ctl.CreateFolder)
	return app
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, body := range files {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadRejectsEmptyAndOversize(t *testing.T) {
	store := helperOSS.NewMemoryStore()
	svc := service.NewService(store, nopRepo{}, 4, nil)
	app := newApp(svc)

	body, ct := multipartBody(t, map[string]string{"folder": "a"}, nil)
	req := httptest.NewRequest("POST", "/files", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, ct = multipartBody(t, nil, map[string]string{"big.txt": "123456"})
	req = httptest.NewRequest("POST", "/files", body)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	_, ok := store.Read("acme/files/big.txt")
	assert.False(t, ok)
}

func TestCreateFolderValidation(t *testing.T) {
	svc := service.NewService(helperOSS.NewMemoryStore(), nopRepo{}, 0, nil)
	app := newApp(svc)

	send := func(payload any) int {
		b, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/folders", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}
	assert.Equal(t, fiber.StatusUnprocessableEntity, send(map[string]string{}))
	assert.Equal(t, fiber.StatusBadRequest, send(map[string]string{"path": "a/../b"}))
	assert.Equal(t, fiber.StatusCreated, send(map[string]string{"path": "kelas/7a"}))
}
