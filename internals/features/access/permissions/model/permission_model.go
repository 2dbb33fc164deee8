package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PermissionModel struct {
	PermissionID          uuid.UUID `gorm:"column:permission_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"permission_id"`
	PermissionKey         string    `gorm:"column:permission_key;type:varchar(80);not null;uniqueIndex:uq_permissions_key" json:"permission_key"`
	PermissionResource    string    `gorm:"column:permission_resource;type:varchar(40);not null;index" json:"permission_resource"`
	PermissionAction      string    `gorm:"column:permission_action;type:varchar(40);not null" json:"permission_action"`
	PermissionDescription *string   `gorm:"column:permission_description;type:text" json:"permission_description,omitempty"`
	PermissionIsSystem    bool      `gorm:"column:permission_is_system;not null;default:false" json:"permission_is_system"`

	PermissionCreatedAt time.Time `gorm:"column:permission_created_at;type:timestamptz;not null;autoCreateTime" json:"permission_created_at"`
	PermissionUpdatedAt time.Time `gorm:"column:permission_updated_at;type:timestamptz;not null;autoUpdateTime" json:"permission_updated_at"`
}

func (PermissionModel) TableName() string { return "permissions" }

// WildcardAll memberi semua akses (dipakai role admin).
const WildcardAll = "*"

type SystemPermission struct {
	Key         string
	Description string
}

// SystemPermissions: katalog bawaan tiap tenant, tidak bisa dihapus.
var SystemPermissions = []SystemPermission{
	{"permissions:read", "Lihat katalog permission"},
	{"permissions:write", "Kelola permission kustom"},
	{"roles:read", "Lihat role"},
	{"roles:write", "Kelola role dan permission-nya"},
	{"academics:read", "Lihat cabang, kelas, periode akademik"},
	{"academics:write", "Kelola cabang, kelas, periode akademik"},
	{"staff:read", "Lihat data staf"},
	{"staff:write", "Kelola data staf"},
	{"staff_assignments:read", "Lihat sinkronisasi penugasan akademik staf"},
	{"staff_assignments:sync", "Jalankan resync penugasan akademik staf"},
	{"assignments:read", "Lihat tugas staf & siswa"},
	{"assignments:write", "Kelola tugas staf & siswa"},
	{"notifications:write", "Kirim dan hapus notifikasi"},
	{"moods:read", "Lihat rekap mood"},
	{"storage:read", "Lihat file storage"},
	{"storage:write", "Upload, pindah, hapus file storage"},
}

// SplitKey: "roles:write" → ("roles", "write").
func SplitKey(key string) (resource, action string, ok bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	parts := strings.Split(key, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func IsSystemKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range SystemPermissions {
		if p.Key == key {
			return true
		}
	}
	return false
}
