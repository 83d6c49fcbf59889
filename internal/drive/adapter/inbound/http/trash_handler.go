package http_handler

import "github.com/gofiber/fiber/v2"

func (s *Server) handleListTrash(c *fiber.Ctx) error {
	files, err := s.service.ListTrash(c.UserContext(), currentUser(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(files)
}

func (s *Server) handleRestore(c *fiber.Ctx) error {
	if err := s.service.RestoreFile(c.UserContext(), currentUser(c), c.Params("fileId")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "File restored"})
}

func (s *Server) handlePurge(c *fiber.Ctx) error {
	if err := s.service.PurgeFile(c.UserContext(), currentUser(c), c.Params("fileId")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "File permanently deleted"})
}

func (s *Server) handleRecent(c *fiber.Ctx) error {
	files, err := s.service.ListRecent(c.UserContext(), currentUser(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(files)
}
