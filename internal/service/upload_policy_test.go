package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/service"
)

func TestUploadPolicy_Check(t *testing.T) {
	policy := service.NewUploadPolicy(1024, config.DefaultAllowedTypes)
	pdf := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name         string
		declaredType string
		size         int64
		head         []byte
		wantType     string
		wantCode     string
	}{
		{name: "declared pdf", declaredType: "application/pdf", size: 100, head: pdf, wantType: "application/pdf"},
		{name: "declared type with parameters", declaredType: "Text/Plain; charset=utf-8", size: 5, head: []byte("hello"), wantType: "text/plain"},
		{name: "declared png", declaredType: "image/png", size: 16, head: png, wantType: "image/png"},
		{name: "declared type with unknown bytes", declaredType: "image/jpeg", size: 4, head: []byte{0x00, 0x01, 0x02, 0x03}, wantType: "image/jpeg"},
		{name: "generic type is not replaced by content", declaredType: "application/octet-stream", size: 40, head: pdf, wantCode: model.CodeUnsupportedContentType},
		{name: "missing type is not replaced by content", declaredType: "", size: 40, head: pdf, wantCode: model.CodeUnsupportedContentType},
		{name: "content contradicts declared type", declaredType: "image/png", size: 40, head: pdf, wantCode: model.CodeUnsupportedContentType},
		{name: "exactly at the ceiling", declaredType: "text/csv", size: 1024, head: []byte("a,b\n"), wantType: "text/csv"},
		{name: "one byte over the ceiling", declaredType: "text/csv", size: 1025, wantCode: model.CodeFileTooLarge},
		{name: "size checked before type", declaredType: "application/zip", size: 4096, wantCode: model.CodeFileTooLarge},
		{name: "unsupported type", declaredType: "application/zip", size: 10, wantCode: model.CodeUnsupportedContentType},
		{name: "unknown bytes", declaredType: "", size: 4, head: []byte{0x00, 0x01, 0x02, 0x03}, wantCode: model.CodeUnsupportedContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Check(tt.declaredType, tt.size, tt.head)

			if tt.wantCode != "" {
				var verr *model.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantCode, verr.Code)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got)
		})
	}
}

func TestUploadPolicy_MaxBytes(t *testing.T) {
	assert.EqualValues(t, 2048, service.NewUploadPolicy(2048, nil).MaxBytes())
}
