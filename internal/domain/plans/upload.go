package plans

import (
	"fmt"
	"strings"
)

// MaxFileSize is the default upload ceiling when no limit is configured.
const MaxFileSize = 50 * 1024 * 1024

// UploadRequest describes a file a client wants to upload. It is validated
// before a presigned upload URL is issued.
type UploadRequest struct {
	FileName string
	MimeType string
	FileSize int64
}

var windowsReservedNames = func() map[string]struct{} {
	names := []string{"CON", "PRN", "AUX", "NUL"}
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("COM%d", i), fmt.Sprintf("LPT%d", i))
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}()

// Characters the object store cannot take in a key without URL encoding.
const s3UnsafeChars = "&$@=;/:+ ,?"

// Validate checks the upload descriptor against the rules for stored plan
// files: PDF only, bounded size, and a file name safe for object-store keys.
func (r *UploadRequest) Validate(maxSize int64) error {
	if err := validateFileName(r.FileName); err != nil {
		return err
	}

	if strings.ToLower(r.MimeType) != "application/pdf" {
		return fmt.Errorf("unsupported mime type %q: only application/pdf is allowed", r.MimeType)
	}

	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if r.FileSize <= 0 {
		return fmt.Errorf("file size must be greater than zero")
	}
	if r.FileSize > maxSize {
		return fmt.Errorf("file size %d exceeds the %d MB limit", r.FileSize, maxSize/(1024*1024))
	}

	return nil
}

func validateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name is required")
	}

	if strings.ContainsAny(name, `/\:*?"<>|`) {
		return fmt.Errorf("file name %q contains forbidden characters", name)
	}

	for _, c := range name {
		if c < 32 || c == 127 {
			return fmt.Errorf("file name must not contain ASCII control characters")
		}
	}

	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return fmt.Errorf("file name must end with .pdf")
	}

	base := strings.ToUpper(strings.SplitN(name, ".", 2)[0])
	if _, reserved := windowsReservedNames[base]; reserved {
		return fmt.Errorf("file name uses the reserved name %s", base)
	}

	if strings.ContainsAny(name, s3UnsafeChars) {
		return fmt.Errorf("file name %q contains characters that require URL encoding in object keys", name)
	}

	return nil
}
