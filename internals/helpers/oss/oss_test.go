package helper

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreListWithDelimiter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, k := range []string{
		"acme/files/",
		"acme/files/a.txt",
		"acme/files/docs/",
		"acme/files/docs/b.pdf",
		"acme/files/img/c.png",
		"other/files/d.txt",
	} {
		require.NoError(t, s.Put(ctx, k, strings.NewReader("x"), "text/plain"))
	}

	l, err := s.List(ctx, "acme/files/", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/files/docs/", "acme/files/img/"}, l.Prefixes)
	require.Len(t, l.Objects, 2)
	assert.Equal(t, "acme/files/", l.Objects[0].Key)
	assert.Equal(t, "acme/files/a.txt", l.Objects[1].Key)

	all, err := s.List(ctx, "acme/", "")
	require.NoError(t, err)
	assert.Len(t, all.Objects, 5)
	assert.Empty(t, all.Prefixes)
}

func TestMoveAndStat(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "a", strings.NewReader("hello"), "text/plain"))

	require.NoError(t, Move(ctx, s, "a", "b"))
	_, err := s.Stat(ctx, "a")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	info, err := s.Stat(ctx, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 5, info.Size)
	assert.Equal(t, "text/plain", info.ContentType)

	assert.ErrorIs(t, Move(ctx, s, "missing", "c"), ErrObjectNotFound)
	assert.NoError(t, Move(ctx, s, "b", "b"))
}

func TestSignURL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, err := s.SignURL(ctx, "nope", time.Minute)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, s.Put(ctx, "k/x.txt", strings.NewReader("x"), ""))
	u, err := s.SignURL(ctx, "k/x.txt", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "memory://bucket/k/x.txt?expires="))
}

func TestReapPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	s.Now = func() time.Time { return now.AddDate(0, 0, -40) }
	require.NoError(t, s.Put(ctx, "acme/trash/2026/04/22/old.txt", strings.NewReader("x"), ""))
	s.Now = func() time.Time { return now.AddDate(0, 0, -1) }
	require.NoError(t, s.Put(ctx, "acme/trash/2026/05/31/new.txt", strings.NewReader("x"), ""))
	require.NoError(t, s.Put(ctx, "acme/files/keep.txt", strings.NewReader("x"), ""))

	cutoff := now.AddDate(0, 0, -30)
	res, err := ReapPrefix(ctx, s, "acme/trash/", cutoff, true, nil)
	require.NoError(t, err)
	assert.Equal(t, ReapResult{Scanned: 2, Deleted: 0}, res)

	res, err = ReapPrefix(ctx, s, "acme/trash/", cutoff, false, nil)
	require.NoError(t, err)
	assert.Equal(t, ReapResult{Scanned: 2, Deleted: 1}, res)
	_, ok := s.Read("acme/trash/2026/04/22/old.txt")
	assert.False(t, ok)
	_, ok = s.Read("acme/files/keep.txt")
	assert.True(t, ok)
}

func TestChunks(t *testing.T) {
	keys := make([]string, 2500)
	c := chunks(keys, deleteBatch)
	require.Len(t, c, 3)
	assert.Len(t, c[2], 500)
	assert.Nil(t, chunks(nil, deleteBatch))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebPResizes(t *testing.T) {
	data := pngBytes(t, 400, 200)
	assert.Equal(t, "image/png", SniffContentType(data, "foto.png"))
	assert.True(t, IsOptimizable("image/png"))

	out, err := ToWebP(data, "foto.png", WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)
	assert.Equal(t, "image/webp", SniffContentType(out, "foto.webp"))

	cfg, err := decodeImage(out, "image/webp")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Bounds().Dx())
	assert.Equal(t, 50, cfg.Bounds().Dy())
	assert.Equal(t, "foto.webp", WebPName("foto.png"))
}

func TestToWebPRejectsNonImage(t *testing.T) {
	_, err := ToWebP([]byte("%PDF-1.4 not an image"), "doc.pdf", DefaultWebPOptions())
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.False(t, IsOptimizable("application/pdf"))
}

func TestCollectUploadFiles(t *testing.T) {
	form := &multipart.Form{File: map[string][]*multipart.FileHeader{
		"zzz":     {{Filename: "z.txt"}},
		"file":    {{Filename: "b.txt"}},
		"files[]": {{Filename: "a.txt"}, {Filename: ""}},
		"aaa":     {{Filename: "y.txt"}},
	}}
	got := CollectUploadFiles(form)
	names := make([]string, 0, len(got))
	for _, fh := range got {
		names = append(names, fh.Filename)
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "y.txt", "z.txt"}, names)
	assert.Nil(t, CollectUploadFiles(nil))
}
