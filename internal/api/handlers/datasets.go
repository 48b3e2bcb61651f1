package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/gabai/gabai-backend/internal/api/middleware"
	"github.com/gabai/gabai-backend/internal/dataset"
)

// DatasetHandlers groups the admin knowledge-base endpoints.
type DatasetHandlers struct {
	store *dataset.Store
}

// NewDatasetHandlers creates the dataset handler group.
func NewDatasetHandlers(store *dataset.Store) *DatasetHandlers {
	return &DatasetHandlers{store: store}
}

// ListDatasets returns the uploaded files plus the virtual folder summary.
func (h *DatasetHandlers) ListDatasets(c *fiber.Ctx) error {
	datasets, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"datasets": datasets,
		"folders":  dataset.FoldersOf(datasets),
	})
}

// UploadDataset ingests one multipart file into the knowledge base.
func (h *DatasetHandlers) UploadDataset(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read file"})
	}

	uploadedBy := ""
	if userContext := middleware.GetUserContext(c); userContext != nil {
		uploadedBy = userContext.Email
	}

	d := dataset.Ingest(fh.Filename, fh.Header.Get("Content-Type"), data, uploadedBy)
	if err := h.store.Add(c.Context(), d); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// DeleteDataset removes one dataset by id.
func (h *DatasetHandlers) DeleteDataset(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), c.Params("id")); err != nil {
		if err == dataset.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Dataset not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Dataset deleted"})
}
