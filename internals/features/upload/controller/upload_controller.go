package controller

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
)

const formField = "file"

type UploadController struct {
	Uploader *cdn.Uploader
	Log      *zap.Logger
}

func NewUploadController(u *cdn.Uploader, log *zap.Logger) *UploadController {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadController{Uploader: u, Log: log.Named("upload")}
}

// =============================
// 🖼️ Upload gambar ke CDN
// =============================
// POST /api/upload (multipart, field "file") → {url, filename, originalName, size, type}
func (ctrl *UploadController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile(formField)
	if err != nil || fh == nil || fh.Size == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, cdn.MsgNoFile)
	}
	// tolak sebelum dibaca penuh ke memori
	if fh.Size > cdn.MaxFileSize {
		return helper.JsonError(c, fiber.StatusBadRequest, cdn.MsgTooLarge)
	}

	data, err := readFile(fh)
	if err != nil {
		ctrl.Log.Error("read multipart file", zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadRequest, cdn.MsgNoFile)
	}

	res, err := ctrl.Uploader.Upload(c.UserContext(), cdn.File{
		Name: fh.Filename,
		Type: fh.Header.Get(fiber.HeaderContentType),
		Data: data,
	})
	if err != nil {
		if ue, ok := cdn.AsUploadError(err); ok {
			if !ue.ClientSide() {
				ctrl.Log.Warn("cdn upload failed",
					zap.String("kind", string(ue.Kind)),
					zap.Int("status", ue.Status),
					zap.Error(ue.Err))
			}
			return helper.JsonError(c, ue.HTTPStatus(), ue.Message)
		}
		ctrl.Log.Error("cdn upload failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadGateway, cdn.MsgUploadFailed)
	}
	return helper.JsonOK(c, res)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, cdn.MaxFileSize+1))
}
