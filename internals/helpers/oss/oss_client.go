package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"
)

type OSSOptions struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
}

type OSSStore struct {
	Bucket *oss.Bucket
	log    *zap.Logger
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" || strings.HasPrefix(ep, "http://") || strings.HasPrefix(ep, "https://") {
		return ep
	}
	return "https://" + ep
}

func NewOSSStore(o OSSOptions, log *zap.Logger) (*OSSStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("oss")
	if o.Endpoint == "" || o.AccessKey == "" || o.SecretKey == "" || o.Bucket == "" {
		return nil, errors.New("oss: endpoint/access key/secret key/bucket wajib diisi")
	}

	var opts []oss.ClientOption
	if o.SecurityToken != "" {
		opts = append(opts, oss.SecurityToken(o.SecurityToken))
	}
	client, err := oss.New(normalizeEndpoint(o.Endpoint), o.AccessKey, o.SecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(o.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(o.Bucket); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 {
			log.Warn("skip bucket location check", zap.String("bucket", o.Bucket), zap.String("code", se.Code))
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Info("bucket ready", zap.String("bucket", o.Bucket), zap.String("location", loc))
	}
	return &OSSStore{Bucket: bkt, log: log}, nil
}

func isNotFound(err error) bool {
	var se oss.ServiceError
	return errors.As(err, &se) && se.StatusCode == 404
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return errors.New("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	)
}

func (s *OSSStore) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	hdr, err := s.Bucket.GetObjectDetailedMeta(key, oss.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return ObjectInfo{}, ErrObjectNotFound
		}
		return ObjectInfo{}, err
	}
	info := ObjectInfo{Key: key, ContentType: hdr.Get(oss.HTTPHeaderContentType)}
	if n, err := strconv.ParseInt(hdr.Get(oss.HTTPHeaderContentLength), 10, 64); err == nil {
		info.Size = n
	}
	if t, err := time.Parse(time.RFC1123, hdr.Get(oss.HTTPHeaderLastModified)); err == nil {
		info.LastModified = t
	}
	return info, nil
}

func (s *OSSStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	if _, err := s.Bucket.CopyObject(srcKey, dstKey, oss.WithContext(ctx)); err != nil {
		if isNotFound(err) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("copy %q -> %q: %w", srcKey, dstKey, err)
	}
	return nil
}

func (s *OSSStore) Delete(ctx context.Context, keys ...string) error {
	for _, batch := range chunks(keys, deleteBatch) {
		if _, err := s.Bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			return fmt.Errorf("delete %d objects: %w", len(batch), err)
		}
	}
	return nil
}

func (s *OSSStore) List(ctx context.Context, prefix, delimiter string) (Listing, error) {
	var out Listing
	marker := oss.Marker("")
	for {
		opts := []oss.Option{oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx)}
		if delimiter != "" {
			opts = append(opts, oss.Delimiter(delimiter))
		}
		lor, err := s.Bucket.ListObjects(opts...)
		if err != nil {
			return out, err
		}
		for _, obj := range lor.Objects {
			out.Objects = append(out.Objects, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
		}
		out.Prefixes = append(out.Prefixes, lor.CommonPrefixes...)
		if !lor.IsTruncated {
			return out, nil
		}
		marker = oss.Marker(lor.NextMarker)
	}
}

func (s *OSSStore) SignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return s.Bucket.SignURL(key, oss.HTTPGet, int64(ttl.Seconds()), oss.WithContext(ctx))
}
