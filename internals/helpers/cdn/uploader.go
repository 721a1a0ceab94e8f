// Package cdn posts images to the external CDN and returns their public URL.
//
// Uploading is decoupled from record persistence: the caller attaches the
// returned URL to a berita or UMKM record with a separate update. When that
// second step fails the CDN object stays orphaned; nothing here cleans it up.
package cdn

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const MaxFileSize int64 = 5 * 1024 * 1024

type Config struct {
	UploadURL string
	Token     string
	// MaxSize defaults to MaxFileSize.
	MaxSize int64
	// MaxWidth > 0 downscales wider JPEG/PNG images before sending.
	MaxWidth   int
	HTTPClient *http.Client
}

// File is an image held in memory (bounded by MaxSize).
type File struct {
	Name string
	// Type is the declared content type; empty means sniff from Data.
	Type string
	Data []byte
}

type Result struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

type cdnResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
	File     *struct {
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
		Type         string `json:"type"`
	} `json:"file"`
}

type Uploader struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Uploader {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = MaxFileSize
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{cfg: cfg, client: client, log: log.Named("cdn")}
}

// Validate runs the checks done before anything is sent: content type
// (declared and sniffed) against the allow-list, then size.
func (u *Uploader) Validate(f File) error {
	if len(f.Data) == 0 {
		return newErr(KindInvalidType, MsgNoFile, 0, nil)
	}
	declared := f.Type
	sniffed := SniffType(f.Data)
	if declared == "" {
		declared = sniffed
	}
	if !IsAllowedType(declared) || !IsAllowedType(sniffed) {
		return newErr(KindInvalidType, MsgInvalidType, 0,
			fmt.Errorf("declared %q, detected %q", f.Type, sniffed))
	}
	if int64(len(f.Data)) > u.cfg.MaxSize {
		return newErr(KindTooLarge, MsgTooLarge, 0,
			fmt.Errorf("%d bytes exceeds %d", len(f.Data), u.cfg.MaxSize))
	}
	return nil
}

// Upload validates f, posts it as multipart field "file" with the bearer
// token and returns the CDN's description of the stored object.
func (u *Uploader) Upload(ctx context.Context, f File) (*Result, error) {
	if err := u.Validate(f); err != nil {
		return nil, err
	}
	if strings.TrimSpace(u.cfg.UploadURL) == "" {
		return nil, newErr(KindNotConfigured, MsgNoUploadURL, 0, nil)
	}
	if strings.TrimSpace(u.cfg.Token) == "" {
		return nil, newErr(KindNotConfigured, MsgNoToken, 0, nil)
	}

	contentType := f.Type
	if contentType == "" {
		contentType = SniffType(f.Data)
	}
	data, resized, err := downscale(f.Data, contentType, u.cfg.MaxWidth)
	if err != nil {
		// keep the original bytes, the CDN accepts them as they are
		u.log.Warn("downscale failed, sending original", zap.String("file", f.Name), zap.Error(err))
		data = f.Data
	}

	body, formType, err := buildForm(f.Name, contentType, data)
	if err != nil {
		return nil, newErr(KindFailed, MsgUploadFailed, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.UploadURL, body)
	if err != nil {
		return nil, newErr(KindNotConfigured, MsgNoUploadURL, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+u.cfg.Token)
	req.Header.Set("Content-Type", formType)

	u.log.Info("uploading",
		zap.String("file", f.Name),
		zap.Int("size", len(data)),
		zap.String("type", contentType),
		zap.Bool("resized", resized),
	)

	resp, err := u.client.Do(req)
	if err != nil {
		u.log.Warn("upload request failed", zap.Error(err))
		return nil, newErr(KindNetwork, MsgNetwork, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, newErr(KindNetwork, MsgNetwork, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, newErr(KindUnauthorized, MsgUnauthorized, resp.StatusCode, nil)
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return nil, newErr(KindRemoteTooLarge, MsgRemoteTooLarge, resp.StatusCode, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		text := strings.TrimSpace(string(raw))
		if len(text) > 300 {
			text = text[:300]
		}
		u.log.Warn("upload rejected", zap.Int("status", resp.StatusCode), zap.String("body", text))
		return nil, newErr(KindRejected,
			fmt.Sprintf("Upload failed: %d - %s", resp.StatusCode, text), resp.StatusCode, nil)
	}

	var out cdnResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, newErr(KindFailed, MsgUploadFailed, resp.StatusCode, err)
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = MsgUploadFailed
		}
		return nil, newErr(KindFailed, msg, resp.StatusCode, nil)
	}

	res := &Result{
		URL:          out.URL,
		Filename:     out.Filename,
		OriginalName: f.Name,
		Size:         int64(len(data)),
		Type:         contentType,
	}
	if out.File != nil {
		res.OriginalName = out.File.OriginalName
		res.Size = out.File.Size
		res.Type = out.File.Type
	}
	u.log.Info("upload success", zap.String("url", res.URL))
	return res, nil
}

func buildForm(name, contentType string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
