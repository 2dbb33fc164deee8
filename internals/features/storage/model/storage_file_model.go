package model

import (
	"time"

	"github.com/google/uuid"
)

// StorageFileModel: cermin metadata objek yang di-upload lewat API.
type StorageFileModel struct {
	StorageFileID          uuid.UUID  `gorm:"column:storage_file_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"storage_file_id"`
	StorageFileObjectKey   string     `gorm:"column:storage_file_object_key;type:text;not null;uniqueIndex:uq_storage_files_key_live,where:storage_file_is_deleted = false" json:"storage_file_object_key"`
	StorageFileFolderPath  string     `gorm:"column:storage_file_folder_path;type:text;not null;default:'';index" json:"storage_file_folder_path"`
	StorageFileName        string     `gorm:"column:storage_file_name;type:varchar(255);not null" json:"storage_file_name"`
	StorageFileSize        int64      `gorm:"column:storage_file_size;not null;default:0" json:"storage_file_size"`
	StorageFileContentType string     `gorm:"column:storage_file_content_type;type:varchar(120);not null" json:"storage_file_content_type"`
	StorageFileUploadedBy  *uuid.UUID `gorm:"column:storage_file_uploaded_by;type:uuid" json:"storage_file_uploaded_by,omitempty"`
	StorageFileIsDeleted   bool       `gorm:"column:storage_file_is_deleted;not null;default:false;index" json:"storage_file_is_deleted"`
	StorageFileDeletedAt   *time.Time `gorm:"column:storage_file_deleted_at;type:timestamptz" json:"storage_file_deleted_at,omitempty"`
	StorageFileTrashKey    *string    `gorm:"column:storage_file_trash_key;type:text" json:"storage_file_trash_key,omitempty"`

	StorageFileCreatedAt time.Time `gorm:"column:storage_file_created_at;type:timestamptz;not null;autoCreateTime" json:"storage_file_created_at"`
	StorageFileUpdatedAt time.Time `gorm:"column:storage_file_updated_at;type:timestamptz;not null;autoUpdateTime" json:"storage_file_updated_at"`
}

func (StorageFileModel) TableName() string { return "storage_files" }
