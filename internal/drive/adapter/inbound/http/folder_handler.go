package http_handler

import (
	"github.com/gofiber/fiber/v2"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	folders, err := s.service.ListFolders(c.UserContext(), currentUser(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(folders)
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	folder, err := s.service.CreateFolder(c.UserContext(), currentUser(c), req.Name)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (s *Server) handleRenameFolder(c *fiber.Ctx) error {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	folder, err := s.service.RenameFolder(c.UserContext(), currentUser(c), c.Params("folderId"), req.Name)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(folder)
}

func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	if err := s.service.DeleteFolder(c.UserContext(), currentUser(c), c.Params("folderId")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Folder deleted"})
}
