package http_handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
)

const uploadField = "file"

func (s *Server) handleListFiles(c *fiber.Ctx) error {
	files, err := s.service.ListFiles(c.UserContext(), currentUser(c), c.Params("folderId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(files)
}

// handleUpload reads the multipart body as a stream and hands the file part to the
// service without buffering it.
func (s *Server) handleUpload(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return sendError(c, fiber.StatusBadRequest, "Content-Type must be multipart/form-data")
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "Invalid Content-Type")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return sendError(c, fiber.StatusBadRequest, "Missing boundary in Content-Type")
	}

	bodyStream := c.Context().RequestBodyStream()
	if bodyStream == nil {
		bodyStream = bytes.NewReader(c.Body())
	}
	mr := multipart.NewReader(bodyStream, boundary)

	var part *multipart.Part
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warnw("Malformed multipart upload", "folder_id", c.Params("folderId"), "error", err.Error())
			return sendError(c, fiber.StatusBadRequest, "Malformed multipart body")
		}
		if p.FormName() == uploadField && p.FileName() != "" {
			part = p
			break
		}
		_ = p.Close()
	}
	if part == nil {
		return sendError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	defer func() { _ = part.Close() }()

	file, err := s.service.UploadFile(c.UserContext(), currentUser(c), c.Params("folderId"), domain.Upload{
		Name:        part.FileName(),
		ContentType: part.Header.Get(fiber.HeaderContentType),
		Body:        part,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

func (s *Server) handleGetFile(c *fiber.Ctx) error {
	file, err := s.service.GetFile(c.UserContext(), currentUser(c), c.Params("fileId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(file)
}

func (s *Server) handleRenameFile(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	file, err := s.service.RenameFile(c.UserContext(), currentUser(c), c.Params("fileId"), req.Name)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(file)
}

func (s *Server) handleTrashFile(c *fiber.Ctx) error {
	if err := s.service.TrashFile(c.UserContext(), currentUser(c), c.Params("fileId")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "File moved to trash"})
}

func (s *Server) handleShareFile(c *fiber.Ctx) error {
	link, err := s.service.ShareFile(c.UserContext(), currentUser(c), c.Params("fileId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(link)
}
