package helper

import (
	"mime/multipart"
	"sort"
)

// Kandidat nama field file yang umum dipakai FE/Postman, urut preferensi.
var defaultFileFields = []string{"files[]", "files", "file"}

// CollectUploadFiles mengumpulkan semua *FileHeader dari form multipart:
// field kandidat dulu, lalu sisa field lain (urut nama).
func CollectUploadFiles(form *multipart.Form, fields ...string) []*multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	if len(fields) == 0 {
		fields = defaultFileFields
	}

	var out []*multipart.FileHeader
	seen := map[string]bool{}
	add := func(key string) {
		seen[key] = true
		for _, fh := range form.File[key] {
			if fh != nil && fh.Filename != "" {
				out = append(out, fh)
			}
		}
	}
	for _, key := range fields {
		add(key)
	}

	rest := make([]string, 0, len(form.File))
	for key := range form.File {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		add(key)
	}
	return out
}
