package cdn

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidType Kind = "invalid_type"
	KindTooLarge    Kind = "too_large"
	// KindRemoteTooLarge: CDN menjawab 413 walau cek lokal lolos.
	KindRemoteTooLarge Kind = "remote_too_large"
	KindNotConfigured  Kind = "not_configured"
	KindNetwork        Kind = "network"
	KindUnauthorized   Kind = "unauthorized"
	KindRejected       Kind = "rejected"
	KindFailed         Kind = "failed"
)

// Pesan yang ditampilkan ke pengguna.
const (
	MsgInvalidType    = "Tipe file tidak didukung. Gunakan JPEG, PNG, atau WebP."
	MsgTooLarge       = "Ukuran file terlalu besar. Maksimal 5MB."
	MsgNoUploadURL    = "CDN upload URL tidak dikonfigurasi. Hubungi administrator."
	MsgNoToken        = "CDN token tidak dikonfigurasi. Hubungi administrator."
	MsgNetwork        = "Tidak dapat terhubung ke server upload. Periksa koneksi internet Anda."
	MsgUnauthorized   = "Token CDN tidak valid. Hubungi administrator."
	MsgRemoteTooLarge = "File terlalu besar. Maksimal 5MB."
	MsgUploadFailed   = "Upload gagal"
	MsgNoFile         = "File tidak ditemukan"
)

// UploadError is every failure of Upload. Message is already localized.
type UploadError struct {
	Kind    Kind
	Message string
	// Status is the CDN response status, 0 when no response was received.
	Status int
	Err    error
}

func (e *UploadError) Error() string { return e.Message }

func (e *UploadError) Unwrap() error { return e.Err }

// ClientSide reports failures detected before anything was sent.
func (e *UploadError) ClientSide() bool {
	return e.Kind == KindInvalidType || e.Kind == KindTooLarge
}

// HTTPStatus maps the failure onto the status our own API answers with.
func (e *UploadError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidType, KindTooLarge:
		return http.StatusBadRequest
	case KindNotConfigured:
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func AsUploadError(err error) (*UploadError, bool) {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

func newErr(kind Kind, msg string, status int, err error) *UploadError {
	return &UploadError{Kind: kind, Message: msg, Status: status, Err: err}
}
