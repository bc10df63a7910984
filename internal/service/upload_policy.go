package service

import (
	"mime"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"file-sharing-server/internal/model"
)

const genericContentType = "application/octet-stream"

// UploadPolicy : проверка загрузки до любой работы с хранилищем и БД
type UploadPolicy struct {
	maxBytes int64
	allowed  map[string]struct{}
}

func NewUploadPolicy(maxBytes int64, allowedTypes []string) *UploadPolicy {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, contentType := range allowedTypes {
		allowed[normalizeContentType(contentType)] = struct{}{}
	}
	return &UploadPolicy{maxBytes: maxBytes, allowed: allowed}
}

func (p *UploadPolicy) MaxBytes() int64 {
	return p.maxBytes
}

// Check : возвращает нормализованный заявленный тип.
// Заявленный тип обязан быть в списке разрешённых, содержимое не должно ему противоречить.
func (p *UploadPolicy) Check(declaredType string, size int64, head []byte) (string, error) {
	if size > p.maxBytes {
		return "", model.NewValidationError(model.CodeFileTooLarge, "size",
			strconv.FormatInt(size, 10), strconv.FormatInt(p.maxBytes, 10))
	}

	contentType := normalizeContentType(declaredType)
	if _, ok := p.allowed[contentType]; !ok {
		return "", model.NewValidationError(model.CodeUnsupportedContentType, "content_type", contentType)
	}

	if sniffed, ok := contradicts(contentType, head); ok {
		return "", model.NewValidationError(model.CodeUnsupportedContentType, "content_type", contentType, sniffed)
	}
	return contentType, nil
}

// contradicts : тип, определённый по содержимому, если он конкретный и не родственен заявленному.
// Неизвестные байты и текст противоречием не считаются.
func contradicts(declared string, head []byte) (string, bool) {
	if len(head) == 0 {
		return "", false
	}
	detected := mimetype.Detect(head)
	if detected.Is(genericContentType) || isText(detected) {
		return "", false
	}
	if related(detected, declared) {
		return "", false
	}
	if expected := mimetype.Lookup(declared); expected != nil && related(expected, detected.String()) {
		return "", false
	}
	return normalizeContentType(detected.String()), true
}

// related : target совпадает с mt или с одним из его предков, кроме корня
func related(mt *mimetype.MIME, target string) bool {
	for ; mt != nil && !mt.Is(genericContentType); mt = mt.Parent() {
		if mt.Is(target) {
			return true
		}
	}
	return false
}

func isText(mt *mimetype.MIME) bool {
	for ; mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}

// normalizeContentType : без параметров и в нижнем регистре
func normalizeContentType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		base, _, _ := strings.Cut(value, ";")
		return strings.ToLower(strings.TrimSpace(base))
	}
	return mediaType
}
