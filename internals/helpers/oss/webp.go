package helper

import (
	"bytes"
	"errors"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = errors.New("format gambar tidak didukung (pakai jpg/png/webp)")

type WebPOptions struct {
	MaxW     int // batas lebar (resize keep-aspect)
	MaxH     int // batas tinggi
	Quality  float32
	Lossless bool
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}
}

// SniffContentType: sniff 512B, dengan override untuk ekstensi modern yang sering salah terdeteksi.
func SniffContentType(data []byte, filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".avif":
		return "image/avif"
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if len(head) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(head)
}

// IsOptimizable: hanya jpeg/png/webp yang di-encode ulang.
func IsOptimizable(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

func decodeImage(data []byte, contentType string) (image.Image, error) {
	switch contentType {
	case "image/webp":
		return webp.Decode(bytes.NewReader(data))
	case "image/jpeg", "image/png":
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	return nil, ErrUnsupportedImage
}

// ToWebP: decode → resize (Fit, Lanczos) bila melebihi batas → encode webp.
func ToWebP(data []byte, filename string, opt WebPOptions) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	img, err := decodeImage(data, SniffContentType(data, filename))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		w, h := opt.MaxW, opt.MaxH
		if w <= 0 {
			w = b.Dx()
		}
		if h <= 0 {
			h = b.Dy()
		}
		img = imaging.Fit(img, w, h, imaging.Lanczos)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: opt.Lossless, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WebPName: ganti ekstensi jadi .webp.
func WebPName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
}
