package document

import (
	"strconv"
	"strings"

	"union-backend/internal/apperr"
	"union-backend/internal/models"
	"union-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type FileResponse struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

type DocumentResponse struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Target    string       `json:"target"`
	File      FileResponse `json:"file"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

func newDocumentResponse(d *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:     d.ID,
		Title:  d.Title,
		Target: string(d.Target),
		File: FileResponse{
			Name:     d.FileName,
			MimeType: d.FileMimeType,
			URL:      d.FileURL,
			Size:     d.FileSize,
		},
		CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: d.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateDocumentHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		target := c.FormValue("target")

		if title == "" || target == "" {
			return apperr.Validation("title, target and a file are required")
		}
		if !models.ValidTarget(target) {
			return apperr.Validation("target must be EMPLOYEE or STUDENT")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return apperr.Validation("A file must be uploaded")
		}

		saved, err := store.SaveDocument(fh)
		if err != nil {
			return err
		}

		doc, err := repo.Create(title, models.Target(target), saved)
		if err != nil {
			store.Reclaim(saved.URL)
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":  true,
			"message":  "Document created",
			"document": newDocumentResponse(doc),
		})
	}
}

func GetAllDocumentsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var target *models.Target
		raw := c.Query("target")
		if raw != "" {
			if !models.ValidTarget(raw) {
				return apperr.Validation("target must be EMPLOYEE or STUDENT")
			}
			t := models.Target(raw)
			target = &t
		}

		docs, err := repo.GetAll(target)
		if err != nil {
			return err
		}

		res := make([]DocumentResponse, 0, len(docs))
		for i := range docs {
			res = append(res, newDocumentResponse(&docs[i]))
		}

		var filterValue interface{}
		if raw != "" {
			filterValue = raw
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"documents": res,
			"filters":   fiber.Map{"target": filterValue},
		})
	}
}

func GetDocumentHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		doc, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return apperr.NotFound("Document not found")
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"document": newDocumentResponse(doc),
		})
	}
}

func UpdateDocumentHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var fields UpdateFields

		if title := strings.TrimSpace(c.FormValue("title")); title != "" {
			fields.Title = &title
		}
		if target := c.FormValue("target"); target != "" {
			if !models.ValidTarget(target) {
				return apperr.Validation("target must be EMPLOYEE or STUDENT")
			}
			t := models.Target(target)
			fields.Target = &t
		}
		if fh, err := c.FormFile("file"); err == nil {
			saved, err := store.SaveDocument(fh)
			if err != nil {
				return err
			}
			fields.File = saved
		}

		if fields.Title == nil && fields.Target == nil && fields.File == nil {
			return apperr.Validation("Nothing to update")
		}

		doc, priorURL, err := repo.Update(id, fields)
		if err != nil {
			if fields.File != nil {
				store.Reclaim(fields.File.URL)
			}
			return err
		}

		// The replaced file is reclaimed only after the update committed.
		if priorURL != "" && priorURL != doc.FileURL {
			store.Reclaim(priorURL)
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"message":  "Document updated",
			"document": newDocumentResponse(doc),
		})
	}
}

func DeleteDocumentHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		fileURL, err := repo.Delete(id)
		if err != nil {
			return err
		}

		store.Reclaim(fileURL)

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Document deleted",
		})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperr.Validation("ID must be a number")
	}
	return uint(id), nil
}
