package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/features/storage/model"
	"schoolhub_backend/internals/features/storage/service"
)

type CreateFolderRequest struct {
	Path string `json:"path" validate:"required,max=1024"`
}

// MoveFileRequest: minimal salah satu diisi.
type MoveFileRequest struct {
	Folder *string `json:"folder" validate:"omitempty,max=1024"`
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
}

type DeleteFolderQuery struct {
	Path string `query:"path"`
}

type FileResponse struct {
	ID          uuid.UUID  `json:"id"`
	Key         string     `json:"key"`
	Folder      string     `json:"folder"`
	Name        string     `json:"name"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	Kind        string     `json:"kind"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	IsDeleted   bool       `json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	URL         string     `json:"url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromFile(m model.StorageFileModel) FileResponse {
	return FileResponse{
		ID:          m.StorageFileID,
		Key:         m.StorageFileObjectKey,
		Folder:      m.StorageFileFolderPath,
		Name:        m.StorageFileName,
		Size:        m.StorageFileSize,
		ContentType: m.StorageFileContentType,
		Kind:        constants.DetectFileKind(m.StorageFileName, m.StorageFileContentType),
		UploadedBy:  m.StorageFileUploadedBy,
		IsDeleted:   m.StorageFileIsDeleted,
		DeletedAt:   m.StorageFileDeletedAt,
		CreatedAt:   m.StorageFileCreatedAt,
		UpdatedAt:   m.StorageFileUpdatedAt,
	}
}

type FolderResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// EntryFileResponse: objek di folder; ID nil untuk objek yang tidak tercatat.
type EntryFileResponse struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	Key          string     `json:"key"`
	Name         string     `json:"name"`
	Size         int64      `json:"size"`
	ContentType  string     `json:"content_type,omitempty"`
	Kind         string     `json:"kind"`
	LastModified time.Time  `json:"last_modified"`
}

type ListingResponse struct {
	Path    string              `json:"path"`
	Folders []FolderResponse    `json:"folders"`
	Files   []EntryFileResponse `json:"files"`
}

func FromEntry(path string, e service.Entry) ListingResponse {
	out := ListingResponse{
		Path:    path,
		Folders: make([]FolderResponse, 0, len(e.Folders)),
		Files:   make([]EntryFileResponse, 0, len(e.Files)),
	}
	for _, f := range e.Folders {
		out.Folders = append(out.Folders, FolderResponse{Name: f.Name, Path: f.Path})
	}
	for _, f := range e.Files {
		r := EntryFileResponse{Key: f.Key, Name: f.Name, Size: f.Size, LastModified: f.LastModified}
		if f.File != nil {
			id := f.File.StorageFileID
			r.ID = &id
			r.ContentType = f.File.StorageFileContentType
		}
		r.Kind = constants.DetectFileKind(r.Name, r.ContentType)
		out.Files = append(out.Files, r)
	}
	return out
}

// UploadFailure: satu file gagal di upload multi-file.
type UploadFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type UploadResponse struct {
	Uploaded []FileResponse  `json:"uploaded"`
	Failed   []UploadFailure `json:"failed,omitempty"`
}
