package filestorage

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentStore archives uploaded source documents under generated keys.
type DocumentStore interface {
	// Save stores data and returns the key it was stored under
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)

	// Delete removes the object; a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// NewKey builds a collision-free key such as "syllabi/2024/01/<uuid>.pdf",
// keeping only the extension of the client-supplied filename.
func NewKey(prefix, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if len(ext) > 10 || strings.ContainsAny(ext, " /") {
		ext = ""
	}
	return path.Join(prefix, now.Format("2006/01"), uuid.NewString()+ext)
}
